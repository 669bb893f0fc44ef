package cli

import (
	"context"
	"runtime"
)

// BuildInfo is stamped into the binary at link time
type BuildInfo struct {
	Version string
	Commit  string
}

// VersionCommand prints build information
type VersionCommand struct {
	app  *App
	info BuildInfo
}

// NewVersionCommand creates a new version command handler
func NewVersionCommand(app *App, info BuildInfo) *VersionCommand {
	return &VersionCommand{app: app, info: info}
}

// Execute prints the version line
func (c *VersionCommand) Execute(_ context.Context, _ []string) error {
	version := c.info.Version
	if version == "" {
		version = "dev"
	}
	commit := c.info.Commit
	if commit == "" {
		commit = "unknown"
	}
	c.app.printf("taskmanager %s (commit %s, %s)\n", version, commit, runtime.Version())
	return nil
}
