package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olusolaa/forge-deploy-automator/internal/config"
	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
)

const (
	StepName = "tool-provisioning"

	adminerFileName     = "adminer.php"
	fileManagerFileName = "filemanager.php"

	// Renders the file manager's login unusable when hashing fails; the
	// degraded install is accepted rather than blocking the deployment.
	placeholderHash = "$2y$10$MixedHashPlaceholder..."
)

// Step provisions the ephemeral admin tools (database browser + file
// manager) under the public web root: removes prior same-prefix
// directories, creates a randomly named one, fetches both payloads, and
// patches credentials and the root path into the file manager.
type Step struct {
	project config.ProjectConfig
	tools   config.ToolsConfig
	runner  ports.CommandRunner
	fetcher ports.PayloadFetcher
	logger  ports.Logger
}

func NewStep(project config.ProjectConfig, tools config.ToolsConfig, runner ports.CommandRunner, fetcher ports.PayloadFetcher, logger ports.Logger) *Step {
	return &Step{project: project, tools: tools, runner: runner, fetcher: fetcher, logger: logger}
}

func (s *Step) Name() string {
	return StepName
}

func (s *Step) Run(ctx context.Context, env *domain.EnvSettings, report *domain.RunReport) domain.StepResult {
	if !s.tools.Enabled {
		return domain.StepResult{Step: StepName, Status: domain.StepStatusSkipped, Detail: "disabled by configuration"}
	}

	s.logger.Infof(ctx, "Installing project management tools")
	publicPath := s.project.PublicPath()

	s.cleanupPrior(ctx, publicPath)

	suffix, err := randomSuffix()
	if err != nil {
		return domain.StepResult{Step: StepName, Status: domain.StepStatusFailed, Detail: "random name generation failed", Err: err}
	}
	dirName := s.tools.DirPrefix + suffix
	toolsPath := filepath.Join(publicPath, dirName)
	if err := os.MkdirAll(toolsPath, 0o755); err != nil {
		return domain.StepResult{Step: StepName, Status: domain.StepStatusFailed, Detail: "could not create tool directory", Err: err}
	}

	dep := &domain.ToolDeployment{
		DirName:         dirName,
		AdminerFile:     filepath.Join(toolsPath, adminerFileName),
		FileManagerFile: filepath.Join(toolsPath, fileManagerFileName),
		ProjectRoot:     serveRoot(s.project.Root),
		DBHost:          env.DBHost,
		DBDatabase:      env.DBDatabase,
	}
	report.Deployment = dep

	degraded := false

	if err := s.fetcher.Fetch(ctx, s.tools.AdminerURL, dep.AdminerFile); err != nil {
		s.logger.Warnf(ctx, "Adminer download failed: %v", err)
		degraded = true
	} else {
		dep.AdminerFetched = true
	}

	if err := s.fetcher.Fetch(ctx, s.tools.FileManagerURL, dep.FileManagerFile); err != nil {
		s.logger.Warnf(ctx, "File manager download failed: %v", err)
		degraded = true
	} else {
		dep.FileManagerFetched = true
	}

	if !s.resolveCredentials(ctx, env, dep) {
		degraded = true
	}

	if dep.FileManagerFetched {
		if !s.patch(ctx, dep) {
			degraded = true
		}
	}

	result := domain.StepResult{
		Step:   StepName,
		Status: domain.StepStatusOK,
		Detail: fmt.Sprintf("tools installed under %s/%s", s.project.PublicDir, dirName),
	}
	if degraded {
		result.Status = domain.StepStatusDegraded
		result.Detail += " (partial install)"
	}
	return result
}

// cleanupPrior removes earlier runs' tool directories, identified purely by
// the name prefix. Per-entry deletion errors are swallowed: a stale
// directory is preferable to a failed run.
func (s *Step) cleanupPrior(ctx context.Context, publicPath string) {
	entries, err := os.ReadDir(publicPath)
	if err != nil {
		s.logger.Debugf(ctx, "Could not scan %s for prior tool directories: %v", publicPath, err)
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), s.tools.DirPrefix) {
			continue
		}
		path := filepath.Join(publicPath, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			s.logger.Warnf(ctx, "Could not remove prior tool directory %s: %v", entry.Name(), err)
			continue
		}
		s.logger.Debugf(ctx, "Removed prior tool directory %s", entry.Name())
	}
}

// resolveCredentials prefers the database identity from .env; when either
// half is blank it falls back to a generated pair. Only a generated password
// is kept on the deployment record, so inherited secrets can never be
// echoed.
func (s *Step) resolveCredentials(ctx context.Context, env *domain.EnvSettings, dep *domain.ToolDeployment) bool {
	username := env.DBUsername
	password := env.DBPassword

	if username == "" || password == "" {
		generated, err := randomPassword()
		if err != nil {
			dep.Username = s.tools.FallbackUser
			dep.PasswordHash = placeholderHash
			s.logger.Errorf(ctx, err, "Password generation failed")
			return false
		}
		username = s.tools.FallbackUser
		password = generated
		dep.GeneratedCredentials = true
		dep.Password = generated
		s.logger.Warnf(ctx, "DB_USERNAME or DB_PASSWORD missing in .env; using generated credentials for the file manager")
	}
	dep.Username = username

	hash, ok := s.hashPassword(ctx, password)
	dep.PasswordHash = hash
	return ok
}

// hashPassword delegates to PHP so the hash matches what the file manager's
// own password_verify expects. Failure degrades to a placeholder that can
// never verify.
func (s *Step) hashPassword(ctx context.Context, password string) (string, bool) {
	safe := strings.ReplaceAll(password, `'`, `'\''`)
	cmdline := fmt.Sprintf(`%s -r "echo password_hash('%s', PASSWORD_DEFAULT);"`, s.project.PHPBinary, safe)

	res := s.runner.RunShell(ctx, true, cmdline)
	if !res.Success || res.Stdout == "" {
		s.logger.Warnf(ctx, "Password hashing failed, using placeholder hash: %s", res.Stderr)
		return placeholderHash, false
	}
	return res.Stdout, true
}

func (s *Step) patch(ctx context.Context, dep *domain.ToolDeployment) bool {
	content, err := os.ReadFile(dep.FileManagerFile)
	if err != nil {
		s.logger.Warnf(ctx, "Could not read file manager for patching: %v", err)
		return false
	}

	patched, err := patchFileManager(content, dep.Username, dep.PasswordHash, dep.ProjectRoot)
	if err != nil {
		s.logger.Warnf(ctx, "File manager patching incomplete: %v", err)
	}

	if err := os.WriteFile(dep.FileManagerFile, patched, 0o644); err != nil {
		s.logger.Warnf(ctx, "Could not write patched file manager: %v", err)
		return false
	}
	dep.Patched = err == nil
	return dep.Patched
}
