package cli

import (
	"fmt"
	"os"
	"time"

	"healthydev/internal/logging"

	"github.com/spf13/cobra"
)

const appName = "healthydev"

var (
	verbose    bool
	configPath string
	workFlag   time.Duration
	snoozeFlag time.Duration
	breakFlag  time.Duration
	version    = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A work/break reminder that lives in your system tray",
	Long: `healthydev tracks how long you have been focused and suggests a break
once the work interval has passed. Take the break and a countdown overlay
keeps you away from the keyboard; snooze it and you will be asked again later.

Quick Start:
  healthydev                      # run in the system tray
  healthydev tui                  # run in the terminal
  healthydev start-break          # start a break in the running instance
  healthydev --work 25m --break 5m`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(verbose)
	},
	RunE: runGUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&configPath, "config", "", "Settings file (default is <user config dir>/healthydev/config.yaml)")
	flags.DurationVar(&workFlag, "work", 0, "Work interval before a break is suggested (overrides config)")
	flags.DurationVar(&snoozeFlag, "snooze", 0, "How long \"Later\" postpones the break (overrides config)")
	flags.DurationVar(&breakFlag, "break", 0, "Break countdown length (overrides config)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.AddCommand(runCmd, tuiCmd, startBreakCmd, configCmd)
}
