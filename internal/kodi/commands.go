package kodi

import (
	"context"
	"sort"
	"strings"
)

// Chat command names accepted by Dispatch
const (
	CommandNotify  = "notify-message"
	CommandPlayURL = "play-url"
	CommandVolume  = "set-volume"
	CommandRun     = "run-command"
	CommandHTPC    = "htpc"
)

// Command describes one chat command for help output and routing
type Command struct {
	Name    string `json:"name"`
	Usage   string `json:"usage"`
	Help    string `json:"help"`
	AliasOf string `json:"alias_of,omitempty"`

	run func(h *Handlers, ctx context.Context, msg Message, args string) (any, error)
}

var commandTable = map[string]Command{
	CommandNotify: {
		Usage: CommandNotify + " <text>",
		Help:  "Send a message to be displayed on screen.",
		run:   (*Handlers).Notify,
	},
	CommandPlayURL: {
		Usage: CommandPlayURL + " <url>",
		Help:  "Play a given url on kodi.",
		run:   (*Handlers).PlayURL,
	},
	CommandVolume: {
		Usage: CommandVolume + " <0-100>",
		Help:  "Set the volume to a value from 0-100.",
		run:   (*Handlers).SetVolume,
	},
	CommandRun: {
		Usage: CommandRun + " <command>",
		Help:  "Run commands on the configured kodi instance: " + strings.Join(ActionNames(), ", ") + ".",
		run:   (*Handlers).RunCommand,
	},
	CommandHTPC: {
		Usage:   CommandHTPC + " <command>",
		Help:    "Just a symlink for " + CommandRun + ".",
		AliasOf: CommandRun,
		run:     (*Handlers).HTPC,
	},
}

func init() {
	for name, cmd := range commandTable {
		cmd.Name = name
		commandTable[name] = cmd
	}
}

// Commands returns the chat commands sorted by name
func Commands() []Command {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	sort.Strings(names)

	commands := make([]Command, 0, len(names))
	for _, name := range names {
		commands = append(commands, commandTable[name])
	}
	return commands
}

// LookupCommand returns the chat command registered under name
func LookupCommand(name string) (Command, bool) {
	cmd, ok := commandTable[name]
	return cmd, ok
}

// Dispatch routes a chat command to its handler and returns the unwrapped
// result. Unknown names fail with *UnknownCommandError.
func (h *Handlers) Dispatch(ctx context.Context, name string, msg Message, args string) (any, error) {
	cmd, ok := commandTable[name]
	if !ok {
		return nil, &UnknownCommandError{Name: name}
	}

	h.logger.Info().
		Str("command", name).
		Str("from", msg.From).
		Msg("Handling chat command")

	return cmd.run(h, ctx, msg, args)
}
