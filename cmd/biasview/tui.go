package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/biasaware/biasview/pkg/ui"
	"github.com/biasaware/biasview/pkg/watcher"
)

func runTUI(cmd *cobra.Command, a *app) error {
	m := ui.NewModel(a.loader, a.source(),
		ui.WithLogger(a.logger),
		ui.WithContext(cmd.Context()),
	)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if a.cfg.Watch && !a.sample {
		fw, err := watcher.NewFileWatcher(a.cfg.Data, func() {
			p.Send(ui.DatasetChangedMsg{})
		}, watcher.WithLogger(a.logger))
		if err != nil {
			return err
		}
		if err := fw.Start(); err != nil {
			return err
		}
		defer fw.Close()
	}

	a.logger.Info("starting viewer", zap.String("data", a.cfg.Data))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running biasview: %w", err)
	}
	return nil
}
