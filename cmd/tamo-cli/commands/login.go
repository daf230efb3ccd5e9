package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Checks that the credentials in the config can log in.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(true)
		client := login(cmd.Context(), cfg)
		defer client.Close()

		fmt.Printf("Logged in to %s as %s.\n", client.BaseUrl.Host, cfg.Username)
	},
}
