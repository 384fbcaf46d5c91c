package permissions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olusolaa/forge-deploy-automator/internal/config"
	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
)

const StepName = "permission-remediation"

// Step normalizes ownership and modes on the writable state directories and
// the public web root. Every target is best effort: a failed command or an
// uncreatable directory degrades the result but never stops the pass, and
// re-running converges on the same end state.
type Step struct {
	project config.ProjectConfig
	runner  ports.CommandRunner
	logger  ports.Logger
}

func NewStep(project config.ProjectConfig, runner ports.CommandRunner, logger ports.Logger) *Step {
	return &Step{project: project, runner: runner, logger: logger}
}

func (s *Step) Name() string {
	return StepName
}

func (s *Step) targets() []domain.RemediationTarget {
	var targets []domain.RemediationTarget
	for _, dir := range s.project.WritableDirs {
		targets = append(targets, domain.RemediationTarget{
			RelPath:  dir,
			DirMode:  "775",
			FileMode: "664",
			Create:   true,
		})
	}
	// The public root is narrowed, never created: a deploy without one has
	// nothing to serve and nothing for us to fix.
	targets = append(targets, domain.RemediationTarget{
		RelPath:  s.project.PublicDir,
		DirMode:  "755",
		FileMode: "644",
	})
	return targets
}

func (s *Step) Run(ctx context.Context, _ *domain.EnvSettings, _ *domain.RunReport) domain.StepResult {
	s.logger.Infof(ctx, "Running permission fixes (owner %s:%s)", s.project.DeployUser, s.project.WebUser)

	fixed := 0
	skipped := 0
	degraded := false

	for _, target := range s.targets() {
		absPath := filepath.Join(s.project.Root, target.RelPath)

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			if !target.Create {
				s.logger.Debugf(ctx, "Skipping %s: directory absent", target.RelPath)
				skipped++
				continue
			}
			if err := os.MkdirAll(absPath, 0o775); err != nil {
				s.logger.Warnf(ctx, "Could not create %s, skipping: %v", target.RelPath, err)
				skipped++
				degraded = true
				continue
			}
		}

		if !s.applyTarget(ctx, absPath, target) {
			degraded = true
		}
		fixed++
		s.logger.Infof(ctx, "Fixed permissions for %s", target.RelPath)
	}

	result := domain.StepResult{
		Step:   StepName,
		Status: domain.StepStatusOK,
		Detail: fmt.Sprintf("%d target(s) normalized, %d skipped", fixed, skipped),
	}
	if degraded {
		result.Status = domain.StepStatusDegraded
	}
	return result
}

// applyTarget runs the ownership change, the recursive mode set, and the
// file-only narrowing. Directories keep DirMode; only regular files get
// FileMode.
func (s *Step) applyTarget(ctx context.Context, absPath string, target domain.RemediationTarget) bool {
	ok := true
	cmds := []string{
		fmt.Sprintf("chown -R %s:%s %s", s.project.DeployUser, s.project.WebUser, absPath),
		fmt.Sprintf("chmod -R %s %s", target.DirMode, absPath),
		fmt.Sprintf("find %s -type f -exec chmod %s {} +", absPath, target.FileMode),
	}
	for _, cmdline := range cmds {
		res := s.runner.RunShell(ctx, true, cmdline)
		if !res.Success {
			s.logger.Warnf(ctx, "Permission command failed (%s): %s", cmdline, res.Stderr)
			ok = false
		}
	}
	return ok
}
