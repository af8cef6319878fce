package cmd

import (
	"fmt"
	"os/user"
	"strings"

	"github.com/spf13/cobra"
	"kodibot/internal/kodi"
)

var notifyFrom string

var notifyCmd = &cobra.Command{
	Use:   "notify [text...]",
	Short: "Show an on-screen notification",
	Long:  `Send a message to be displayed on screen, titled "<from> says:".`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChatCommand(cmd, kodi.CommandNotify, strings.Join(args, " "))
	},
}

var playCmd = &cobra.Command{
	Use:   "play [url]",
	Short: "Play a URL or media path",
	Long: `Play a given url on kodi. YouTube watch links are rewritten to the
YouTube addon; anything else is opened as-is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChatCommand(cmd, kodi.CommandPlayURL, args[0])
	},
}

var volumeCmd = &cobra.Command{
	Use:   "volume [level]",
	Short: "Set the volume (0-100)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChatCommand(cmd, kodi.CommandVolume, args[0])
	},
}

var runCmd = &cobra.Command{
	Use:   "run [command]",
	Short: "Run a remote command (ping, home, pause, ...)",
	Long: `Run commands on the configured kodi instance.
Available commands: ` + strings.Join(kodi.ActionNames(), ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: kodi.ActionNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChatCommand(cmd, kodi.CommandRun, args[0])
	},
}

var htpcCmd = &cobra.Command{
	Use:       "htpc [command]",
	Short:     "Alias for run",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kodi.ActionNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChatCommand(cmd, kodi.CommandHTPC, args[0])
	},
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List chat commands and remote command words",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Chat commands:")
		for _, c := range kodi.Commands() {
			fmt.Fprintf(out, "  %-28s %s\n", c.Usage, c.Help)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Remote command words:")
		for _, a := range kodi.Actions() {
			fmt.Fprintf(out, "  %-10s %-24s %s\n", a.Name, a.Method, a.Help)
		}
		return nil
	},
}

// runChatCommand executes one chat command the way a chat framework would
// and prints the rendered reply
func runChatCommand(cmd *cobra.Command, name, args string) error {
	handlers, err := newHandlers(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd.Context())
	defer cancel()

	msg := kodi.Message{
		From: senderName(),
		Body: strings.TrimSpace(cmd.CommandPath() + " " + args),
	}

	log.Info().
		Str("host", handlers.Config().Host).
		Str("command", name).
		Msg("Sending command")

	result, err := handlers.Dispatch(ctx, name, msg, args)
	if err != nil {
		log.Error().Err(err).Str("command", name).Msg("Command failed")
		return err
	}

	if reply := kodi.Render(result); reply != "" {
		fmt.Fprintln(cmd.OutOrStdout(), reply)
	}
	return nil
}

// senderName is the display name used as notification title
func senderName() string {
	if notifyFrom != "" {
		return notifyFrom
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "kodibot"
}

func init() {
	notifyCmd.Flags().StringVar(&notifyFrom, "from", "", "sender name shown in the notification title")

	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(htpcCmd)
	rootCmd.AddCommand(commandsCmd)
}
