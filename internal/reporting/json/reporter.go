package json

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

type jsonReport struct {
	RunID       string           `json:"run_id"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	ProjectRoot string           `json:"project_root"`
	DeployUser  string           `json:"deploy_user"`
	WebUser     string           `json:"web_user"`
	Summary     jsonSummary      `json:"summary"`
	Steps       []jsonStepResult `json:"steps"`
	Findings    []jsonFinding    `json:"findings,omitempty"`
	Deployment  *jsonDeployment  `json:"deployment,omitempty"`
}

type jsonSummary struct {
	OK       int `json:"ok"`
	Degraded int `json:"degraded"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
	Findings int `json:"findings"`
}

type jsonStepResult struct {
	Step         string            `json:"step"`
	Status       domain.StepStatus `json:"status"`
	Detail       string            `json:"detail,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
}

type jsonFinding struct {
	Rule       domain.AuditRule `json:"rule"`
	Keys       []string         `json:"keys"`
	Observed   string           `json:"observed"`
	Suggestion string           `json:"suggestion"`
	Extra      string           `json:"extra,omitempty"`
}

// jsonDeployment never carries an inherited database password; the password
// field is populated only for credentials generated this run.
type jsonDeployment struct {
	DirName              string `json:"dir_name"`
	AdminerURLPath       string `json:"adminer_url_path,omitempty"`
	FileManagerURLPath   string `json:"file_manager_url_path,omitempty"`
	Username             string `json:"username"`
	GeneratedCredentials bool   `json:"generated_credentials"`
	GeneratedPassword    string `json:"generated_password,omitempty"`
	ProjectRoot          string `json:"project_root"`
	DBHost               string `json:"db_host"`
	DBDatabase           string `json:"db_database,omitempty"`
	Patched              bool   `json:"patched"`
}

func (r *Reporter) Report(ctx context.Context, report *domain.RunReport) error {
	out := jsonReport{
		RunID:       report.RunID,
		StartedAt:   report.StartedAt,
		FinishedAt:  report.FinishedAt,
		ProjectRoot: report.ProjectRoot,
		DeployUser:  report.DeployUser,
		WebUser:     report.WebUser,
		Summary: jsonSummary{
			OK:       report.CountByStatus(domain.StepStatusOK),
			Degraded: report.CountByStatus(domain.StepStatusDegraded),
			Skipped:  report.CountByStatus(domain.StepStatusSkipped),
			Failed:   report.CountByStatus(domain.StepStatusFailed),
			Findings: len(report.Findings),
		},
		Steps: make([]jsonStepResult, 0, len(report.Steps)),
	}

	for _, res := range report.Steps {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled.")
			return ctx.Err()
		}
		item := jsonStepResult{
			Step:   res.Step,
			Status: res.Status,
			Detail: res.Detail,
		}
		if res.Err != nil {
			item.ErrorMessage = res.Err.Error()
		}
		out.Steps = append(out.Steps, item)
	}

	for _, f := range report.Findings {
		out.Findings = append(out.Findings, jsonFinding{
			Rule:       f.Rule,
			Keys:       f.Keys,
			Observed:   f.Observed,
			Suggestion: f.Suggestion,
			Extra:      f.Extra,
		})
	}

	if dep := report.Deployment; dep != nil {
		jd := &jsonDeployment{
			DirName:              dep.DirName,
			Username:             dep.Username,
			GeneratedCredentials: dep.GeneratedCredentials,
			ProjectRoot:          dep.ProjectRoot,
			DBHost:               dep.DBHost,
			DBDatabase:           dep.DBDatabase,
			Patched:              dep.Patched,
		}
		if dep.AdminerFetched {
			jd.AdminerURLPath = fmt.Sprintf("/%s/adminer.php", dep.DirName)
		}
		if dep.FileManagerFetched {
			jd.FileManagerURLPath = fmt.Sprintf("/%s/filemanager.php", dep.DirName)
		}
		if dep.GeneratedCredentials {
			jd.GeneratedPassword = dep.Password
		}
		out.Deployment = jd
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(out); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}

	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}
