package cli

import (
	"healthydev/internal/logging"
	"healthydev/internal/ui/overlay"
	"healthydev/internal/ui/preferences"
	"healthydev/internal/ui/presenter"
	"healthydev/internal/ui/prompt"
	"healthydev/internal/ui/status"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"
)

var fullscreen bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reminder in the system tray (default)",
	Args:  cobra.NoArgs,
	RunE:  runGUI,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "Show the break overlay full screen")
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, logging.Default())
	if err != nil {
		return err
	}
	defer s.Close()

	fyneApp := app.NewWithID("dev.healthydev.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	overlayWindow := overlay.New(fyneApp, overlay.Config{Fullscreen: fullscreen})
	overlayWindow.SetOnClose(s.keeper.CloseBreak)

	prefsWindow := preferences.New(fyneApp, s.config, s.saveConfig)

	views := presenter.Views{
		Overlay: overlayWindow,
		Prompt:  prompt.New(fyneApp),
	}
	tray, err := status.New(fyneApp, status.Callbacks{
		OnStartBreak:  s.keeper.StartBreak,
		OnPreferences: prefsWindow.Show,
		OnQuit:        fyneApp.Quit,
	})
	if err != nil {
		s.logger.Warn("status display unavailable", "err", err)
	} else {
		views.Status = tray
	}

	events := s.keeper.Subscribe(16)
	go presenter.New(views, s.keeper, s.logger).Run(s.ctx, events)

	fyneApp.Lifecycle().SetOnStarted(s.keeper.Start)
	fyneApp.Run()
	return nil
}
