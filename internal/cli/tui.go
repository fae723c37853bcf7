package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"healthydev/internal/logging"
	"healthydev/internal/tui"

	"github.com/spf13/cobra"
)

var logFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the reminder in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The alternate screen owns stderr, so logs go to a file.
		if logFile == "" {
			logFile = filepath.Join(os.TempDir(), appName+"-tui.log")
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer file.Close()

		previous := logging.Default()
		logging.SetDefault(logging.New(file, verbose))
		defer logging.SetDefault(previous)

		s, err := openSession(cmd, logging.Default())
		if err != nil {
			return err
		}
		defer s.Close()

		events := s.keeper.Subscribe(16)
		s.keeper.Start()
		return tui.Run(s.keeper, events, s.config.BreakDuration)
	},
}

func init() {
	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "Where to write logs while the terminal UI runs")
}
