// cmd/patchwork/main.go
//
// This is the entry point for the Patchwork studio.
// Run `patchwork` in a project directory to open the TUI, or
// `patchwork serve` to expose the design library over HTTP.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"patchwork/internal/config"
	"patchwork/internal/logbook"
	"patchwork/internal/server"
	"patchwork/internal/store"
	"patchwork/internal/tui"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		runServe(os.Args[2:])
		return
	}
	runStudio()
}

func runStudio() {
	cwd, err := os.Getwd()
	if err != nil {
		die("determine working directory: %v", err)
	}

	// Create the .patchwork folder (config, drafts, logs) before anything
	// touches it.
	if err := config.InitStudioDir(cwd); err != nil {
		die("init .patchwork: %v", err)
	}

	app, err := tui.NewApp(cwd)
	if err != nil {
		die("start studio: %v", err)
	}
	defer app.Close()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
	)
	if _, err := p.Run(); err != nil {
		die("run studio: %v", err)
	}
}

func runServe(args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	projectDir := flags.String("project", "", "path to the project directory (defaults to cwd)")
	listen := flags.String("listen", "", "listen address override (defaults to config)")
	_ = flags.Parse(args)

	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
	}
	project, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}
	if err := config.InitStudioDir(project); err != nil {
		die("init .patchwork: %v", err)
	}
	cfg, err := config.NewConfig(project)
	if err != nil {
		die("load config: %v", err)
	}

	library, err := store.Open(cfg.LibraryPath())
	if err != nil {
		die("open library: %v", err)
	}
	defer library.Close()

	book, err := logbook.New(filepath.Join(cfg.LogsDir(), "server.log"))
	if err != nil {
		die("open logbook: %v", err)
	}

	addr := cfg.ListenAddr()
	if *listen != "" {
		addr = *listen
	}
	fmt.Printf("Serving the design library on http://%s\n", addr)
	if err := server.New(library, book).Run(addr); err != nil {
		die("serve: %v", err)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "patchwork: "+format+"\n", args...)
	os.Exit(1)
}
