package domain

// CommandResult captures the outcome of one external process invocation.
// Failure to launch is encoded here, never surfaced as a Go error: the
// pipeline must keep going regardless of any single command's outcome.
type CommandResult struct {
	Success bool
	Stdout  string
	Stderr  string
}
