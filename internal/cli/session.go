package cli

import (
	"context"
	"fmt"
	"time"

	"healthydev/internal/core/model"
	"healthydev/internal/core/timekeeper"
	"healthydev/internal/logging"
	"healthydev/internal/platform"
	"healthydev/internal/storage"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// session is the running instance shared by the tray and terminal front-ends.
type session struct {
	ctx        context.Context
	cancel     context.CancelFunc
	guard      *platform.InstanceGuard
	keeper     *timekeeper.TimeKeeper
	config     model.TimerConfig
	configPath string
	logger     *log.Logger
}

func openSession(cmd *cobra.Command, logger *log.Logger) (*session, error) {
	config, path, err := loadTimerConfig(cmd)
	if err != nil {
		return nil, err
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return nil, fmt.Errorf("%w (use `%s start-break` to control it)", err, appName)
	}

	if logger == nil {
		logger = logging.Default()
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	s := &session{
		ctx:        ctx,
		cancel:     cancel,
		guard:      guard,
		config:     config,
		configPath: path,
		logger:     logger,
		keeper: timekeeper.New(config, timekeeper.Config{
			TickInterval: time.Second,
			Logger:       logger,
		}),
	}

	go func() {
		if err := guard.Serve(ctx, s.handleCommand); err != nil {
			logger.Error("control channel stopped", "err", err)
		}
	}()

	logger.Info("session ready",
		"work", config.WorkInterval,
		"snooze", config.SnoozeInterval,
		"break", config.BreakDuration,
		"control", guard.Address(),
	)
	return s, nil
}

func (s *session) handleCommand(command string) error {
	switch command {
	case platform.CommandStartBreak:
		s.logger.Info("break requested over control channel")
		s.keeper.StartBreak()
		return nil
	default:
		return platform.ErrUnknownCommand
	}
}

func (s *session) saveConfig(config model.TimerConfig) error {
	if err := storage.SaveSettings(s.configPath, config); err != nil {
		return err
	}
	s.keeper.UpdateConfig(config)
	s.logger.Info("settings saved", "path", s.configPath)
	return nil
}

func (s *session) Close() {
	s.cancel()
	s.keeper.Stop()
	if err := s.guard.Release(); err != nil {
		s.logger.Warn("release instance lock", "err", err)
	}
}
