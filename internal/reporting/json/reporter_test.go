package json

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReporter(t *testing.T) (*Reporter, *bytes.Buffer) {
	t.Helper()
	reporter, err := NewReporter(Config{}, NewTestLogger())
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	reporter.writer = buf
	return reporter, buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestReporter_Report(t *testing.T) {
	ctx := context.Background()

	t.Run("summary counts and step errors round-trip", func(t *testing.T) {
		reporter, buf := newTestReporter(t)
		report := &domain.RunReport{
			RunID: "run-1",
			Steps: []domain.StepResult{
				{Step: "environment-audit", Status: domain.StepStatusOK},
				{Step: "application-optimize", Status: domain.StepStatusDegraded,
					Detail: "2 of 6 commands failed", Err: errors.New("route:cache exited 1")},
			},
			Findings: []domain.AuditFinding{{
				Rule: domain.RuleDebugEnabled,
				Keys: []string{"APP_DEBUG"},
			}},
		}
		require.NoError(t, reporter.Report(ctx, report))

		out := decode(t, buf)
		assert.Equal(t, "run-1", out["run_id"])

		summary := out["summary"].(map[string]any)
		assert.Equal(t, float64(1), summary["ok"])
		assert.Equal(t, float64(1), summary["degraded"])
		assert.Equal(t, float64(1), summary["findings"])

		steps := out["steps"].([]any)
		require.Len(t, steps, 2)
		degraded := steps[1].(map[string]any)
		assert.Equal(t, "route:cache exited 1", degraded["error_message"])
	})

	t.Run("generated password is included", func(t *testing.T) {
		reporter, buf := newTestReporter(t)
		report := &domain.RunReport{
			Deployment: &domain.ToolDeployment{
				DirName:              "forge-tools-ab12cd",
				Username:             "forge_admin",
				Password:             "Xy9Kq2mPl3Az",
				GeneratedCredentials: true,
				AdminerFetched:       true,
				FileManagerFetched:   true,
			},
		}
		require.NoError(t, reporter.Report(ctx, report))

		dep := decode(t, buf)["deployment"].(map[string]any)
		assert.Equal(t, "Xy9Kq2mPl3Az", dep["generated_password"])
		assert.Equal(t, "/forge-tools-ab12cd/adminer.php", dep["adminer_url_path"])
		assert.Equal(t, "/forge-tools-ab12cd/filemanager.php", dep["file_manager_url_path"])
	})

	t.Run("inherited credentials never leak a password", func(t *testing.T) {
		reporter, buf := newTestReporter(t)
		report := &domain.RunReport{
			Deployment: &domain.ToolDeployment{
				DirName:              "forge-tools-ab12cd",
				Username:             "forge",
				GeneratedCredentials: false,
			},
		}
		require.NoError(t, reporter.Report(ctx, report))

		dep := decode(t, buf)["deployment"].(map[string]any)
		_, present := dep["generated_password"]
		assert.False(t, present)
	})

	t.Run("empty report omits findings and deployment", func(t *testing.T) {
		reporter, buf := newTestReporter(t)
		require.NoError(t, reporter.Report(ctx, &domain.RunReport{}))

		out := decode(t, buf)
		_, hasFindings := out["findings"]
		assert.False(t, hasFindings)
		_, hasDeployment := out["deployment"]
		assert.False(t, hasDeployment)
	})
}
