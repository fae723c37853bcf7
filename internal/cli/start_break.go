package cli

import (
	"fmt"

	"healthydev/internal/platform"

	"github.com/spf13/cobra"
)

var startBreakCmd = &cobra.Command{
	Use:   "start-break",
	Short: "Start a break in the running instance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := platform.SendCommand(appName, platform.CommandStartBreak); err != nil {
			return fmt.Errorf("start break: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "break started")
		return nil
	},
}
