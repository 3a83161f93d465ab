package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"swipe/assets"
	"swipe/internal/config"
	"swipe/internal/game"
	"swipe/internal/logging"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log, restore, err := logging.Install(cfg.Log)
	if err != nil {
		return err
	}
	defer restore()
	defer func() { _ = log.Sync() }()

	atlas, err := assets.Open(cfg.Atlas)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Restore the terminal before a panic is printed.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			log.Error("panic", zap.Any("value", r), zap.Stack("stack"))
			panic(r)
		}
		screen.Fini()
	}()

	g, err := game.New(screen, cfg, atlas, log)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Run(ctx)
}
