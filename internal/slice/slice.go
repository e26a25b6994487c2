// Package slice implements the bulk operations over slice worktrees:
// create-all, sync, and clean. Every operation walks the configured slice
// set (or the on-disk directories matching the slice pattern) and returns
// one Result per slice rather than aborting on the first hard failure, so
// callers can render an actionable partial-success report.
package slice

import "fmt"

// Outcome classifies what happened to one slice during a bulk operation.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeSynced   Outcome = "synced"
	OutcomeConflict Outcome = "conflict"
	OutcomeRemoved  Outcome = "removed"
	OutcomeFailed   Outcome = "failed"
)

// Result is the per-slice record of a bulk operation.
type Result struct {
	Name    string
	Outcome Outcome
	Detail  string
	Err     error
}

// Failed reports whether the slice ended in a hard failure or a conflict.
func (r Result) Failed() bool {
	return r.Outcome == OutcomeFailed || r.Outcome == OutcomeConflict
}

// CountFailed returns how many results ended badly.
func CountFailed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}

// NoteFileName is the fixed name of the per-slice note file written into
// each worktree root at creation time.
const NoteFileName = "SLICE.md"

// NoteContent renders the note file for a slice. The file is write-once
// boilerplate for agents working inside the worktree; nothing reads it back.
func NoteContent(name string) string {
	return fmt.Sprintf(`# Slice: %s

You are working in the %s slice.

Rules:
- Only modify files inside this directory slice.
- Shared types from the contracts slice are read-only imports; never edit them here.
`, name, name)
}
