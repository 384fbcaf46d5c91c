package domain

import "time"

type StepStatus string

const (
	StepStatusOK       StepStatus = "OK"
	StepStatusDegraded StepStatus = "DEGRADED"
	StepStatusSkipped  StepStatus = "SKIPPED"
	StepStatusFailed   StepStatus = "FAILED"
)

// StepResult is the typed outcome of one pipeline step. Degraded means the
// step completed with some of its commands failing; the run carries on.
type StepResult struct {
	Step   string
	Status StepStatus
	Detail string
	Err    error
}

// RunReport accumulates everything one orchestrator pass produced. It is
// assembled by the engine and rendered exactly once by a reporter.
type RunReport struct {
	RunID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	ProjectRoot string
	DeployUser  string
	WebUser     string
	Steps       []StepResult
	Findings    []AuditFinding
	Deployment  *ToolDeployment
}

func (r *RunReport) Append(res StepResult) {
	r.Steps = append(r.Steps, res)
}

func (r *RunReport) CountByStatus(status StepStatus) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}
