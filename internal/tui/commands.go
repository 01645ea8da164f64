package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// slashCommand is a parsed "/name args" line typed into the input
type slashCommand struct {
	name string
	args string
}

const helpText = "/endpoint [url]  /status  /copy  /help  /quit"

var knownCommands = map[string]bool{
	"quit":     true,
	"exit":     true,
	"endpoint": true,
	"status":   true,
	"copy":     true,
	"help":     true,
}

// parseSlashCommand recognizes "/name args" for a known command name.
// Anything else, including paths like /etc/hosts, is a normal prompt.
func parseSlashCommand(input string) (slashCommand, bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || len(trimmed) == 1 {
		return slashCommand{}, false
	}
	name, args, _ := strings.Cut(trimmed[1:], " ")
	name = strings.ToLower(name)
	if !knownCommands[name] {
		return slashCommand{}, false
	}
	return slashCommand{
		name: name,
		args: strings.TrimSpace(args),
	}, true
}

// runCommand executes a parsed slash command
func (m Model) runCommand(cmd slashCommand) (tea.Model, tea.Cmd) {
	switch cmd.name {
	case "quit", "exit":
		return m, tea.Quit

	case "endpoint":
		if cmd.args == "" {
			return m.startEndpointEditor()
		}
		m = m.applyEndpoint(cmd.args)
		m.editingEndpoint = false
		return m, clearFeedback(4 * time.Second)

	case "status":
		m.feedback = "Checking " + m.session.StatusEndpoint() + "..."
		return m, m.checkStatus()

	case "copy":
		return m.copyLastReply()

	case "help":
		m.feedback = helpText
		return m, clearFeedback(8 * time.Second)
	}

	return m, nil
}
