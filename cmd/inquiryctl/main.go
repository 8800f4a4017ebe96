// Package main provides the inquiryctl command line client.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/config"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/linkopen"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/logger"
)

func main() {
	os.Exit(run(context.Background(), linkopen.System{}, os.Args[1:]))
}

// run executes one command and returns the process exit code once logs are
// flushed and signal handling is released.
func run(ctx context.Context, opener linkopen.Opener, args []string) int {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(cfg, log, opener)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
