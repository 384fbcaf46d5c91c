package domain

type AuditRule string

const (
	RuleAppKeyMissing    AuditRule = "app-key-missing"
	RuleDebugEnabled     AuditRule = "app-debug-enabled"
	RuleEnvNotProduction AuditRule = "app-env-not-production"
	RuleURLSuspect       AuditRule = "app-url-suspect"
	RuleQueueSync        AuditRule = "queue-sync"
	RuleDriverArray      AuditRule = "driver-array"
)

// AuditFinding is an advisory configuration condition surfaced to the
// operator. Findings never mutate the .env file; Extra carries the
// copy-paste line for the app-key rule (the only rule with a side effect).
type AuditFinding struct {
	Rule       AuditRule
	Keys       []string
	Observed   string
	Suggestion string
	Extra      string
}
