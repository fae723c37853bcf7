package cli

import (
	"fmt"

	"healthydev/internal/core/model"
	"healthydev/internal/storage"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or write the settings file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective timer settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, _, err := loadTimerConfig(cmd)
		if err != nil {
			return err
		}
		encoded, err := storage.EncodeSettings(config)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(encoded)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the effective settings, including flag overrides, to the settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, path, err := loadTimerConfig(cmd)
		if err != nil {
			return err
		}
		if err := storage.SaveSettings(path, config); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "settings written to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configPathCmd, configSaveCmd)
}

func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return storage.DefaultPath(appName)
}

// loadTimerConfig layers the settings file over the defaults and the duration
// flags over the file.
func loadTimerConfig(cmd *cobra.Command) (model.TimerConfig, string, error) {
	path, err := settingsPath()
	if err != nil {
		return model.TimerConfig{}, "", err
	}
	config, err := storage.LoadSettings(path)
	if err != nil {
		return model.TimerConfig{}, "", err
	}

	flags := cmd.Flags()
	if flags.Changed("work") {
		config.WorkInterval = workFlag
	}
	if flags.Changed("snooze") {
		config.SnoozeInterval = snoozeFlag
	}
	if flags.Changed("break") {
		config.BreakDuration = breakFlag
	}
	if err := config.Validate(); err != nil {
		return model.TimerConfig{}, "", err
	}
	return config, path, nil
}
