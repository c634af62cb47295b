package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/aimtrainer/internal/audio"
	"github.com/tomz197/aimtrainer/internal/config"
	"github.com/tomz197/aimtrainer/internal/draw"
	"github.com/tomz197/aimtrainer/internal/game"
	"github.com/tomz197/aimtrainer/internal/loop/client"
	"github.com/tomz197/aimtrainer/internal/loop/server"
	"golang.org/x/term"
)

func main() {
	settings := config.Load()

	logger, closeLog, err := newLogger(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	var sounder game.Sounder = audio.Nop{}
	if settings.AudioEnabled {
		spk := audio.NewSpeaker(settings.SampleRate, logger)
		if err := spk.Initialize(); err != nil {
			logger.Warn("audio unavailable, falling back to terminal bell", "err", err)
			sounder = audio.NewBell(os.Stdout)
		} else {
			defer spk.Cleanup()
			sounder = spk
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gameServer := server.NewServer(logger)
	go gameServer.Run(ctx)

	c := client.NewClient(gameServer, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username:    config.GetEnv("USER", "player"),
		Profile:     draw.LocalProfile(),
		Sounder:     sounder,
		Sensitivity: settings.Sensitivity,
		Volume:      settings.Volume,
		Logger:      logger,
	})
	if err := c.Run(); err != nil {
		logger.Error("game error", "err", err)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured log file. The terminal belongs to the
// game, so without a file logs are discarded.
func newLogger(s config.Settings) (*log.Logger, func(), error) {
	if s.LogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "aimtrainer",
	})
	if level, err := log.ParseLevel(s.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger, func() { _ = f.Close() }, nil
}
