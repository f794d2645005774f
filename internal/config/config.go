// Package config handles application configuration and setup
package config

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// BuildInfo describes the binary version, set by the linker at release time.
type BuildInfo struct {
	Name    string
	Version string
	Commit  string
	Date    string
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// VersionString returns the version with the shortened commit hash.
func (b BuildInfo) VersionString() string {
	versionString := b.Version
	if b.Commit != "" {
		commit := b.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}
	return versionString
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, info BuildInfo, quiet bool) {
	if quiet {
		return
	}

	logger.Info(info.Name, log.String("version", info.VersionString()))

	if info.Date != "" && !strings.Contains(info.Date, "unknown") {
		logger.Info("Build", log.String("date", info.Date))
	}
}
