// Package procutil reads process environment settings shared by the
// command line tools.
package procutil

import (
	"os"
	"strings"
)

type EnvVar string

const (
	// LogLevelEnv sets the default -log_level.
	LogLevelEnv EnvVar = "LAYERED_MAPPINGS_LOG_LEVEL"
	// OverrideDetailEnv sets the default -override_detail.
	OverrideDetailEnv EnvVar = "LAYERED_MAPPINGS_OVERRIDE_DETAIL"
)

func LookupBoolEnv(name EnvVar, defaultValue bool) bool {
	if val, ok := os.LookupEnv(string(name)); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultValue
}

// LookupStringEnv returns the value of name, or defaultValue when it is
// unset or blank.
func LookupStringEnv(name EnvVar, defaultValue string) string {
	if val, ok := os.LookupEnv(string(name)); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return defaultValue
}
