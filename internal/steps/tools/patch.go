package tools

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/olusolaa/forge-deploy-automator/internal/errors"
)

// The file manager embeds its credentials and root path as PHP array
// literals. We rewrite those literals in place; the patterns tolerate
// literals spanning multiple lines. A pattern that stops matching upstream
// is reported, not silently ignored.
var (
	authUsersPattern      = regexp.MustCompile(`(?s)\$auth_users\s*=\s*array\([^)]*\);`)
	directoryUsersPattern = regexp.MustCompile(`(?s)\$directories_users\s*=\s*array\([^)]*\);`)
)

func patchFileManager(content []byte, username, passwordHash, projectRoot string) ([]byte, error) {
	var missing []string

	newAuth := fmt.Sprintf("$auth_users = array(\n    '%s' => '%s'\n);", username, passwordHash)
	if authUsersPattern.Match(content) {
		content = authUsersPattern.ReplaceAll(content, []byte(newAuth))
	} else {
		missing = append(missing, "$auth_users")
	}

	newDirs := fmt.Sprintf("$directories_users = array(\n    '%s' => '%s'\n);", username, projectRoot)
	if directoryUsersPattern.Match(content) {
		content = directoryUsersPattern.ReplaceAll(content, []byte(newDirs))
	} else {
		missing = append(missing, "$directories_users")
	}

	if len(missing) > 0 {
		return content, apperrors.New(apperrors.CodePatchFailed,
			fmt.Sprintf("literal(s) not found: %s", strings.Join(missing, ", ")))
	}
	return content, nil
}

// serveRoot resolves the directory the file manager should expose. In a
// timestamped-release layout (root/releases/TIMESTAMP) that is the directory
// above releases/, not the release itself.
func serveRoot(workDir string) string {
	if before, _, found := strings.Cut(workDir, "/releases/"); found {
		return before
	}
	return workDir
}
