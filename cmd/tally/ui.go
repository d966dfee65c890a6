package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/tui"
	"github.com/spf13/cobra"
)

func uiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logFile, err := a.redirectLogs()
			if err != nil {
				return err
			}
			defer func() { _ = logFile.Close() }()

			notices := &common.NoticeRecorder{}
			sess, err := a.openSession(cmd.Context(), notices)
			if err != nil {
				return err
			}
			defer sess.Close()

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			return tui.Run(cmd.Context(), tui.Config{
				Engine:    sess.engine,
				Notices:   notices,
				Formatter: sess.formatter,
				OutputDir: cwd,
			})
		},
	}
}

// redirectLogs sends logs to the configured file so they do not draw over
// the dashboard.
func (a *app) redirectLogs() (*os.File, error) {
	path := config.ExpandPath(a.v.GetString(config.KeyLogFile))
	if path == "" {
		path = filepath.Join(config.DataDir(), "tally.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := a.setupLogging(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}
