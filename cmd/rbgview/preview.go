package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/recera/rbgview/cmd/rbgview/internal/ui"
	"github.com/recera/rbgview/pkg/live"
)

func newPreviewCommand(flags *globalFlags) *cobra.Command {
	var (
		port    int
		host    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Open a live browser preview of an RBG file",
		Long: `Serves an interactive preview of the file and pushes a new frame to
every open browser tab whenever the file changes on disk.

Without a file argument the single .rbg file in the working directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(flags)
			// CLI flags override config
			if cmd.Flags().Changed("port") {
				cfg.Preview.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Preview.Host = host
			}

			path, doc, err := openDocument(args)
			if err != nil {
				return err
			}

			server := live.NewServer(doc, live.Config{
				Viewer:     cfg.ViewerOptions(),
				Background: cfg.Theme.Background,
				Width:      cfg.Preview.Width,
				Height:     cfg.Preview.Height,
			})
			defer server.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !noWatch {
				debounce := time.Duration(cfg.Preview.DebounceMS) * time.Millisecond
				go func() {
					err := watchFile(ctx, path, debounce, func() { reloadPreview(server, path) })
					if err != nil {
						printWarning("File watching disabled: %v", err)
					}
				}()
			}

			addr := fmt.Sprintf("%s:%d", cfg.Preview.Host, cfg.Preview.Port)
			srv := &http.Server{
				Addr:    addr,
				Handler: server.Handler(filepath.Base(path)),
			}

			go func() {
				<-ctx.Done()
				log.Println("🛑 Shutting down preview server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			log.Printf("📄 Previewing %s (%s)\n", filepath.Base(path), doc.Info())
			log.Printf("✨ Preview running at http://%s\n", addr)

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 5173, "Port to run the preview server on")
	cmd.Flags().StringVar(&host, "host", "localhost", "Host to bind the preview server to")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the file changes")

	return cmd
}

// reloadPreview re-parses path and pushes the result to every session. A
// file that no longer parses leaves the sessions showing the old document.
func reloadPreview(server *live.Server, path string) {
	doc, err := loadDocument(path)
	if err != nil {
		log.Printf("❌ %s: %v\n", filepath.Base(path), err)
		server.ReportError(ui.ReloadErrorText)
		return
	}
	server.ReplaceDocument(doc)
	log.Printf("✅ Reloaded %s (%s)\n", filepath.Base(path), doc.Info())
}
