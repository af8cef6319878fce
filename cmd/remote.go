package cmd

import (
	"github.com/spf13/cobra"
	"kodibot/cmd/cli"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Start the interactive Kodi remote",
	Long: `Launch a terminal remote for the configured Kodi instance. Each key press
runs one remote command word (up, select, pause, home, ...) on its own
connection, the same way the run command does.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handlers, err := newHandlers(cmd)
		if err != nil {
			return err
		}

		log.Info().
			Str("host", handlers.Config().Host).
			Bool("test", testMode).
			Msg("Starting Kodi remote")

		if err := cli.StartRemote(handlers, senderName(), callTimeout, testMode); err != nil {
			log.Error().Err(err).Msg("Failed to start remote")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(remoteCmd)
}
