package permissions

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/olusolaa/forge-deploy-automator/internal/config"
	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls      []string
	failOn     string
	failResult domain.CommandResult
}

func (f *fakeRunner) Run(_ context.Context, _ bool, argv ...string) domain.CommandResult {
	return f.record(strings.Join(argv, " "))
}

func (f *fakeRunner) RunShell(_ context.Context, _ bool, cmdline string) domain.CommandResult {
	return f.record(cmdline)
}

func (f *fakeRunner) record(display string) domain.CommandResult {
	f.calls = append(f.calls, display)
	if f.failOn != "" && strings.Contains(display, f.failOn) {
		return f.failResult
	}
	return domain.CommandResult{Success: true}
}

func projectFor(t *testing.T, withPublic bool) config.ProjectConfig {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Project.Root = t.TempDir()
	cfg.Project.WebUser = "www-data"
	if withPublic {
		require.NoError(t, os.MkdirAll(filepath.Join(cfg.Project.Root, "public"), 0o755))
	}
	return cfg.Project
}

func TestRemediatorStep_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("creates writable dirs and issues the command triple", func(t *testing.T) {
		project := projectFor(t, true)
		runner := &fakeRunner{}
		res := NewStep(project, runner, NewTestLogger()).Run(ctx, nil, nil)

		assert.Equal(t, domain.StepStatusOK, res.Status)
		assert.DirExists(t, filepath.Join(project.Root, "storage"))
		assert.DirExists(t, filepath.Join(project.Root, "bootstrap", "cache"))

		// storage and bootstrap/cache get 775/664, public gets 755/644.
		require.Len(t, runner.calls, 9)
		storagePath := filepath.Join(project.Root, "storage")
		assert.Equal(t, "chown -R forge:www-data "+storagePath, runner.calls[0])
		assert.Equal(t, "chmod -R 775 "+storagePath, runner.calls[1])
		assert.Equal(t, "find "+storagePath+" -type f -exec chmod 664 {} +", runner.calls[2])

		publicPath := filepath.Join(project.Root, "public")
		assert.Equal(t, "chmod -R 755 "+publicPath, runner.calls[7])
		assert.Equal(t, "find "+publicPath+" -type f -exec chmod 644 {} +", runner.calls[8])
	})

	t.Run("repeated runs issue identical commands", func(t *testing.T) {
		project := projectFor(t, true)

		first := &fakeRunner{}
		NewStep(project, first, NewTestLogger()).Run(ctx, nil, nil)
		second := &fakeRunner{}
		NewStep(project, second, NewTestLogger()).Run(ctx, nil, nil)

		if diff := cmp.Diff(first.calls, second.calls); diff != "" {
			t.Fatalf("remediation not idempotent (-first +second):\n%s", diff)
		}
	})

	t.Run("missing public root is skipped, not created", func(t *testing.T) {
		project := projectFor(t, false)
		runner := &fakeRunner{}
		res := NewStep(project, runner, NewTestLogger()).Run(ctx, nil, nil)

		assert.Equal(t, domain.StepStatusOK, res.Status)
		assert.NoDirExists(t, filepath.Join(project.Root, "public"))
		for _, call := range runner.calls {
			assert.NotContains(t, call, filepath.Join(project.Root, "public"))
		}
	})

	t.Run("command failure degrades but does not stop later targets", func(t *testing.T) {
		project := projectFor(t, true)
		runner := &fakeRunner{failOn: "chown", failResult: domain.CommandResult{Success: false, Stderr: "denied"}}
		res := NewStep(project, runner, NewTestLogger()).Run(ctx, nil, nil)

		assert.Equal(t, domain.StepStatusDegraded, res.Status)
		// All three targets still processed.
		assert.Len(t, runner.calls, 9)
	})

	t.Run("uncreatable target is skipped without aborting", func(t *testing.T) {
		project := projectFor(t, true)
		// A file standing where bootstrap/ should be makes MkdirAll fail.
		require.NoError(t, os.WriteFile(filepath.Join(project.Root, "bootstrap"), []byte("x"), 0o644))

		runner := &fakeRunner{}
		res := NewStep(project, runner, NewTestLogger()).Run(ctx, nil, nil)

		assert.Equal(t, domain.StepStatusDegraded, res.Status)
		// bootstrap/cache and public still handled.
		assert.Len(t, runner.calls, 6)
	})
}
