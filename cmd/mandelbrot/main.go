// Command mandelbrot explores the Mandelbrot set in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	tea "charm.land/bubbletea/v2"

	"github.com/idursun/mandelbrot/internal/browser"
	"github.com/idursun/mandelbrot/internal/config"
	"github.com/idursun/mandelbrot/internal/export"
	"github.com/idursun/mandelbrot/internal/landmark"
	"github.com/idursun/mandelbrot/internal/logging"
	"github.com/idursun/mandelbrot/internal/ui"
	"github.com/idursun/mandelbrot/internal/ui/common"
	"github.com/idursun/mandelbrot/internal/view"
	"github.com/idursun/mandelbrot/internal/worker"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		exportPath = flag.String("export", "", "render the saved view to a PNG file and exit")
		exportSize = flag.Int("size", export.DefaultSize, "side of the exported image in pixels")
		openAfter  = flag.Bool("open", false, "open the exported PNG in the default viewer")
		fresh      = flag.Bool("fresh", false, "start from the whole set instead of the saved view")
		version    = flag.Bool("version", false, "print the version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println(Version)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	closer, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()
	log := logging.Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	sessionPath := config.GetSessionFilePath()
	saved, restored := loadSession(sessionPath, *fresh)

	if *exportPath != "" {
		window := view.Default
		if restored {
			window = saved
		}
		if err := export.ToFile(ctx, *exportPath, export.Options{Size: *exportSize, Window: window}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if *openAfter {
			if err := browser.Open(*exportPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
		}
		return 0
	}

	w := worker.New(worker.Options{
		Budget:      cfg.Render.Budget,
		EventBuffer: cfg.Render.EventBuffer,
	})
	if restored {
		w.Restore(saved)
	}
	w.Start(ctx)

	uiCtx, stopUI := context.WithCancel(ctx)
	model := ui.New(w, ui.Options{
		Context:       uiCtx,
		Catalog:       landmark.NewCatalog(cfg.Landmarks),
		Palette:       common.NewPalette(cfg.UI.Colors),
		FrameInterval: config.GetFrameInterval(cfg),
		StatusTimeout: config.GetStatusMessageTimeout(cfg),
		SessionPath:   sessionPath,
		ExportDir:     config.GetConfigDir(),
	})
	_, runErr := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	stopUI()

	w.Stop()
	w.Join()

	if sessionPath != "" {
		if err := config.SaveSession(sessionPath, w.Save()); err != nil {
			log.Warn("saving session failed", "err", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}
	return 0
}

func loadSession(path string, fresh bool) (view.Window, bool) {
	if path == "" || fresh {
		return view.Window{}, false
	}
	w, ok, err := config.LoadSession(path)
	if err != nil {
		logging.Logger().Warn("ignoring unreadable session", "path", path, "err", err)
		return view.Window{}, false
	}
	return w, ok
}
