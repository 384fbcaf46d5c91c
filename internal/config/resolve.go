package config

import (
	"os"
	"os/user"
)

// UserLookup reports whether a system account exists. Injectable so tests
// and non-Linux environments do not depend on real accounts.
type UserLookup func(name string) bool

func SystemUserLookup(name string) bool {
	_, err := user.Lookup(name)
	return err == nil
}

// Resolve fills the runtime-derived fields exactly once: the project root
// (working directory when unset) and the web-identity user, picked as the
// first candidate account that exists on the host. The resolved values are
// plain data from here on; nothing re-probes the system later in the run.
func (c *Config) Resolve(lookup UserLookup) error {
	if c.Project.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		c.Project.Root = wd
	}

	if c.Project.WebUser == "" {
		c.Project.WebUser = detectWebUser(c.Project.WebUserCandidates, lookup)
	}
	return nil
}

func detectWebUser(candidates []string, lookup UserLookup) string {
	for _, name := range candidates {
		if lookup(name) {
			return name
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return "www-data"
}
