package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"blockfall/terminal"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[28;0H\n\r\033[?25h"
)

func main() {
	logPath := flag.String("log", "", "append diagnostics to this file")
	savePath := flag.String("save", "", "save the game here on quit and resume from it on start")
	flag.Parse()

	logger, closeLog := newLogger(*logPath)
	defer closeLog()

	restore := startRawConsole()
	defer restore()

	t, err := terminal.New(&terminal.Options{Logger: logger, SavePath: *savePath})
	if err != nil {
		restore()
		log.Fatalf("unable to start terminal: %v", err)
	}
	t.Start()
}

func newLogger(path string) (*slog.Logger, func()) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("unable to open log file: %v", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() } //nolint: errcheck
}

func startRawConsole() func() {
	fmt.Print(hideCursor)
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("Error setting terminal to raw mode: %v", err)
	}

	return func() {
		if err := term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
			log.Fatalf("unable to restore the terminal original state: %v", err)
		}
		fmt.Print(showCursor)
	}
}
