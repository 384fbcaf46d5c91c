package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
)

const ReporterTypeText = "text"

const (
	banner          = "=================================================================="
	separator       = "----------------------------------------------------------------"
	placeholderHost = "https://your-site-url"
)

type Config struct {
	NoColor bool `mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, report *domain.RunReport) error {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintln(r.writer, "Deploy Finisher Report")
	fmt.Fprintln(r.writer, "======================")
	fmt.Fprintf(r.writer, "Run:     %s\n", report.RunID)
	fmt.Fprintf(r.writer, "Root:    %s\n", report.ProjectRoot)
	fmt.Fprintf(r.writer, "Users:   %s (deploy), %s (web)\n", report.DeployUser, report.WebUser)
	fmt.Fprintln(r.writer)

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Status\tStep\tDetails")
	fmt.Fprintln(tw, "------\t----\t-------")
	for _, res := range report.Steps {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		statusStr := ""
		switch res.Status {
		case domain.StepStatusOK:
			statusStr = green("[OK]")
		case domain.StepStatusDegraded:
			statusStr = yellow("[DEGRADED]")
		case domain.StepStatusSkipped:
			statusStr = cyan("[SKIPPED]")
		case domain.StepStatusFailed:
			statusStr = red("[FAILED]")
		default:
			statusStr = "[UNKNOWN]"
		}
		detail := res.Detail
		if res.Err != nil {
			detail = fmt.Sprintf("%s: %v", detail, res.Err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", statusStr, res.Step, detail)
	}
	tw.Flush()

	for _, finding := range report.Findings {
		r.renderFinding(finding, yellow, green)
	}

	if report.Deployment != nil {
		r.renderDeployment(report.Deployment, yellow, green)
	}

	return nil
}

func (r *Reporter) renderFinding(f domain.AuditFinding, yellow, green func(a ...interface{}) string) {
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, yellow(separator))
	fmt.Fprintf(r.writer, "%s %s\n", yellow("[ATTENTION]"), strings.Join(f.Keys, ", "))
	fmt.Fprintf(r.writer, "Current value: %s\n", f.Observed)
	fmt.Fprintln(r.writer, yellow(f.Suggestion))
	if f.Extra != "" {
		fmt.Fprintln(r.writer, yellow("Copy the following line into your .env file:"))
		fmt.Fprintln(r.writer, green(f.Extra))
	}
	fmt.Fprintln(r.writer, yellow(separator))
}

// renderDeployment echoes connection info for the provisioned tools. A
// generated file-manager password is printed in full exactly once here;
// inherited database passwords are never printed, only pointed at.
func (r *Reporter) renderDeployment(dep *domain.ToolDeployment, yellow, green func(a ...interface{}) string) {
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, green(banner))
	fmt.Fprintln(r.writer, green(" PROJECT MANAGEMENT TOOLS INSTALLED"))
	fmt.Fprintln(r.writer, green(banner))
	fmt.Fprintf(r.writer, " Directory: public/%s\n", dep.DirName)
	fmt.Fprintln(r.writer)

	fmt.Fprintln(r.writer, " [DATABASE - ADMINER]")
	if dep.AdminerFetched {
		fmt.Fprintf(r.writer, " URL:  %s\n", green(fmt.Sprintf("%s/%s/adminer.php", placeholderHost, dep.DirName)))
	} else {
		fmt.Fprintln(r.writer, yellow(" (download failed; not installed)"))
	}
	fmt.Fprintf(r.writer, " Host: %s\n", yellow(dep.DBHost))
	fmt.Fprintf(r.writer, " Name: %s\n", yellow(dep.DBDatabase))
	fmt.Fprintln(r.writer, yellow(" Pass: (check your .env file)"))
	fmt.Fprintln(r.writer)

	fmt.Fprintln(r.writer, " [FILE MANAGER]")
	if dep.FileManagerFetched {
		fmt.Fprintf(r.writer, " URL:  %s\n", green(fmt.Sprintf("%s/%s/filemanager.php", placeholderHost, dep.DirName)))
	} else {
		fmt.Fprintln(r.writer, yellow(" (download failed; not installed)"))
	}
	if dep.GeneratedCredentials {
		fmt.Fprintf(r.writer, " User: %s\n", yellow(dep.Username))
		fmt.Fprintf(r.writer, " Pass: %s %s\n", yellow(dep.Password), yellow("(auto-generated - save this!)"))
	} else {
		fmt.Fprintf(r.writer, " User: %s (DB credentials)\n", yellow(dep.Username))
		fmt.Fprintln(r.writer, yellow(" Pass: (use your DB password)"))
	}
	fmt.Fprintln(r.writer, green(banner))
}
