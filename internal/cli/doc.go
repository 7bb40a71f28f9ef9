// Package cli holds the shared building blocks of the interactive surface:
// the console output sink, the question prompter, status table rendering,
// and the error types that map to exit codes.
//
// All user-facing output flows through an injected *Console and all
// questions through an injected Prompter, so flows stay scriptable in tests
// without a terminal.
package cli
