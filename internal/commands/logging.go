package commands

import (
	"strings"

	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

const commandModuleRoot = "site.commands"

// CommandLogger returns the logger for command handlers of module, e.g.
// "posts" logs under site.commands.posts.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
