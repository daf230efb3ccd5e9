package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"tamoassist-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	dumpHttp   string
)

var rootCmd = &cobra.Command{
	Use:   "tamo-cli",
	Short: "tamo-cli reads your weekly timetable from the TAMO school portal.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		telemetry.SetupOptional(cmd.Context(), "tamo-cli")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := telemetry.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "tamo.json5", "Path to the config file, a .local variant next to it overrides its values.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enables debug logging.")
	rootCmd.PersistentFlags().StringVar(&dumpHttp, "dump-http", "", "Writes every http exchange with the portal into this directory.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
