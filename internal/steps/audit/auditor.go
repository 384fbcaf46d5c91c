package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
)

const StepName = "environment-audit"

// Step evaluates the advisory .env rules. All findings are suggestions only;
// the single side effect is invoking the framework's key generator when
// APP_KEY is absent, so the operator gets a copy-paste line.
type Step struct {
	phpBinary string
	runner    ports.CommandRunner
	logger    ports.Logger
}

func NewStep(phpBinary string, runner ports.CommandRunner, logger ports.Logger) *Step {
	return &Step{phpBinary: phpBinary, runner: runner, logger: logger}
}

func (s *Step) Name() string {
	return StepName
}

func (s *Step) Run(ctx context.Context, env *domain.EnvSettings, report *domain.RunReport) domain.StepResult {
	s.logger.Infof(ctx, "Checking environment configuration")

	degraded := false
	appendFinding := func(f *domain.AuditFinding) {
		if f != nil {
			report.Findings = append(report.Findings, *f)
		}
	}

	finding, ok := s.checkAppKey(ctx, env)
	appendFinding(finding)
	if !ok {
		degraded = true
	}
	appendFinding(checkAppDebug(env))
	appendFinding(checkAppEnv(env))
	appendFinding(checkAppURL(env))
	appendFinding(checkQueueConnection(env))
	appendFinding(checkDriver(domain.KeySessionDriver, env.SessionDriver))
	appendFinding(checkDriver(domain.KeyCacheDriver, env.CacheDriver))

	result := domain.StepResult{
		Step:   StepName,
		Status: domain.StepStatusOK,
		Detail: fmt.Sprintf("%d finding(s)", len(report.Findings)),
	}
	if degraded {
		result.Status = domain.StepStatusDegraded
		result.Detail += "; key generation command failed"
	}
	return result
}

// checkAppKey is the only rule with a side effect: it asks artisan for a
// fresh key so the finding can carry a ready-to-paste APP_KEY line. A failed
// generation still yields the finding, just without the suggestion payload.
func (s *Step) checkAppKey(ctx context.Context, env *domain.EnvSettings) (*domain.AuditFinding, bool) {
	if env.AppKey != "" {
		return nil, true
	}

	finding := &domain.AuditFinding{
		Rule:       domain.RuleAppKeyMissing,
		Keys:       []string{domain.KeyAppKey},
		Observed:   "not set",
		Suggestion: "Generate an application key and add it to your .env file.",
	}

	res := s.runner.Run(ctx, true, s.phpBinary, "artisan", "key:generate", "--show")
	if !res.Success || res.Stdout == "" {
		s.logger.Warnf(ctx, "key:generate failed: %s", res.Stderr)
		return finding, false
	}
	finding.Extra = "APP_KEY=" + res.Stdout
	return finding, true
}

func checkAppDebug(env *domain.EnvSettings) *domain.AuditFinding {
	if !env.DebugEnabled() {
		return nil
	}
	return &domain.AuditFinding{
		Rule:       domain.RuleDebugEnabled,
		Keys:       []string{domain.KeyAppDebug},
		Observed:   env.AppDebug,
		Suggestion: "Set APP_DEBUG=false for production environments.",
	}
}

func checkAppEnv(env *domain.EnvSettings) *domain.AuditFinding {
	if env.IsProduction() {
		return nil
	}
	observed := env.AppEnv
	if observed == "" {
		observed = "not set"
	}
	return &domain.AuditFinding{
		Rule:       domain.RuleEnvNotProduction,
		Keys:       []string{domain.KeyAppEnv},
		Observed:   observed,
		Suggestion: "Set APP_ENV=production on a live server.",
	}
}

func checkAppURL(env *domain.EnvSettings) *domain.AuditFinding {
	// An unset URL is not judged; only a present-but-suspect one is.
	if env.AppURL == "" {
		return nil
	}
	if !strings.Contains(env.AppURL, "localhost") && strings.HasPrefix(env.AppURL, "http") {
		return nil
	}
	return &domain.AuditFinding{
		Rule:       domain.RuleURLSuspect,
		Keys:       []string{domain.KeyAppURL},
		Observed:   env.AppURL,
		Suggestion: "Ensure APP_URL matches your actual domain, including https://.",
	}
}

func checkQueueConnection(env *domain.EnvSettings) *domain.AuditFinding {
	if env.QueueConnection != "sync" {
		return nil
	}
	return &domain.AuditFinding{
		Rule:       domain.RuleQueueSync,
		Keys:       []string{domain.KeyQueueConnection},
		Observed:   env.QueueConnection,
		Suggestion: "Jobs run in the foreground with 'sync'; consider 'database' or 'redis'.",
	}
}

func checkDriver(key, value string) *domain.AuditFinding {
	if value != "array" {
		return nil
	}
	return &domain.AuditFinding{
		Rule:       domain.RuleDriverArray,
		Keys:       []string{key},
		Observed:   value,
		Suggestion: "The 'array' driver does not persist between requests; use 'file', 'database', or 'redis'.",
	}
}
