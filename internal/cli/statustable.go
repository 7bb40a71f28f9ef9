package cli

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// State classifies a status cell for coloring.
type State int

const (
	// StateOK renders green.
	StateOK State = iota
	// StateWarn renders yellow.
	StateWarn
	// StateBad renders red.
	StateBad
	// StateNone renders uncolored.
	StateNone
)

// StatusRow is one line of a status table.
type StatusRow struct {
	Component string
	State     State
	Status    string
	// Action is the remediation hint or note, empty when none.
	Action string
}

// RenderStatusTable renders rows as a rounded table with a colored status
// column. actionHeader names the third column ("Action Needed" for the
// client check, "Notes" for the server check).
func RenderStatusTable(out io.Writer, actionHeader string, rows []StatusRow) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("COMPONENT"),
		text.FgHiCyan.Sprint("STATUS"),
		text.FgHiCyan.Sprint(strings.ToUpper(actionHeader)),
	})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Component, colorStatus(r.State, r.Status), r.Action})
	}
	t.Render()
}

func colorStatus(s State, status string) string {
	switch s {
	case StateOK:
		return text.FgGreen.Sprint(status)
	case StateWarn:
		return text.FgYellow.Sprint(status)
	case StateBad:
		return text.FgRed.Sprint(status)
	default:
		return status
	}
}
