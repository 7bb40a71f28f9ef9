package cli

// ScriptedPrompter replays canned answers in order; it is the test double
// for Prompter. When a queue runs out the default answer is returned, so
// tests only script the prompts they care about.
type ScriptedPrompter struct {
	// Confirms are consumed front to back by Confirm.
	Confirms []bool
	// Answers are consumed front to back by Ask.
	Answers []string
	// Asked records every question in order.
	Asked []string
}

func (p *ScriptedPrompter) Confirm(question string, def bool) bool {
	p.Asked = append(p.Asked, question)
	if len(p.Confirms) == 0 {
		return def
	}
	v := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return v
}

func (p *ScriptedPrompter) Ask(question, def string) string {
	p.Asked = append(p.Asked, question)
	if len(p.Answers) == 0 {
		return def
	}
	v := p.Answers[0]
	p.Answers = p.Answers[1:]
	return v
}
