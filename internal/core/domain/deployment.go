package domain

// ToolDeployment is the ephemeral record of one admin-tool provisioning
// pass. It is never persisted; prior runs' directories are found on disk by
// their name prefix, not through this record.
//
// Password holds a plaintext value only when the credentials were generated
// this run. Inherited database passwords are never stored here, so no
// reporter can leak them.
type ToolDeployment struct {
	DirName         string
	AdminerFile     string
	FileManagerFile string

	Username             string
	Password             string
	PasswordHash         string
	GeneratedCredentials bool

	ProjectRoot string
	DBHost      string
	DBDatabase  string

	AdminerFetched     bool
	FileManagerFetched bool
	Patched            bool
}

// RemediationTarget names a directory subtree to normalize, with the octal
// modes applied recursively (DirMode for everything, FileMode narrowing
// regular files afterwards).
type RemediationTarget struct {
	RelPath  string
	DirMode  string
	FileMode string
	// Create controls whether a missing directory is created first.
	Create bool
}
