// Command debias-tui runs the debiasing tool in a terminal.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"dh-debias/internal/config"
	"dh-debias/internal/debias"
	"dh-debias/internal/job"
	"dh-debias/internal/uiloop"
	"dh-debias/internal/version"
	"dh-debias/ui/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	// The screen belongs to bubbletea, so the log goes to a file.
	logPath := filepath.Join(os.TempDir(), "debias-tui.log")
	logFile, err := tea.LogToFile(logPath, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log %s: %v\n", logPath, err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", version.String())

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(1)
	}
	runner, err := debias.NewRunner(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var p *tea.Program
	queue := uiloop.New(func(drain func()) { tui.Wake(p)(drain) })
	model := tui.New(queue, func(j *job.Job, n job.Notifier) { job.Start(runner, j, n) })
	p = tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
