package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/recera/rbgview/cmd/rbgview/internal/ui"
	"github.com/recera/rbgview/pkg/debug"
)

func newViewCommand(flags *globalFlags) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "View an RBG file in the terminal",
		Long: `Draws the graph with box characters in the terminal. Drag with the mouse
or use the arrow keys to pan, scroll or press +/- to zoom, 0 to reset.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(flags)

			path, doc, err := openDocument(args)
			if err != nil {
				return err
			}

			if debug.Enabled() {
				// stderr belongs to the UI while it runs
				f, err := tea.LogToFile("rbgview-debug.log", "debug")
				if err != nil {
					return fmt.Errorf("failed to open debug log: %w", err)
				}
				defer f.Close()
			}

			model := ui.NewModel(path, doc, cfg.ViewerOptions(), cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if !noWatch {
				debounce := time.Duration(cfg.Preview.DebounceMS) * time.Millisecond
				go watchFile(ctx, path, debounce, func() {
					p.Send(reloadMessage(path))
				})
			}

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("terminal viewer failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the file changes")

	return cmd
}

// reloadMessage re-parses path into the message the UI expects
func reloadMessage(path string) tea.Msg {
	doc, err := loadDocument(path)
	if err != nil {
		return ui.ReloadErrorMsg{Err: err}
	}
	return ui.DocumentMsg{Doc: doc}
}
