package envfile

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/olusolaa/forge-deploy-automator/internal/core/domain"
	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
)

const SourceTypeEnvFile = "envfile"

// Source reads a flat KEY=value file (the Laravel .env format). It is the
// pipeline's only desired-state input and is strictly read-only.
type Source struct {
	path   string
	logger ports.Logger
}

func NewSource(path string, logger ports.Logger) *Source {
	return &Source{path: path, logger: logger}
}

func (s *Source) Type() string {
	return SourceTypeEnvFile
}

func (s *Source) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load parses the file into a fresh map. A missing or unreadable file yields
// an empty map; malformed lines are skipped silently. Lines are split on the
// first '=' only, and exactly one layer of matching quotes is stripped from
// the value. Later keys overwrite earlier ones.
func (s *Source) Load(ctx context.Context) domain.EnvMap {
	vars := make(domain.EnvMap)

	f, err := os.Open(s.path)
	if err != nil {
		if s.logger != nil && !os.IsNotExist(err) {
			s.logger.Warnf(ctx, "Could not open env file %s: %v", s.path, err)
		}
		return vars
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}

		vars[key] = unquote(value)
	}
	if err := scanner.Err(); err != nil && s.logger != nil {
		s.logger.Warnf(ctx, "Error reading env file %s: %v", s.path, err)
	}

	return vars
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
