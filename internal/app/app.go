package app

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"npmfootprint/internal/config"
	"npmfootprint/internal/env"

	"github.com/rs/zerolog/log"
)

const (
	successCode = 0
	failureCode = 1
	// partialCode is returned by `report --strict` when some packages failed
	partialCode = 2
)

type App struct {
	out      io.Writer
	errOut   io.Writer
	settings config.Settings
}

func New() *App {
	return &App{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

func (a *App) Run() (exitCode int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env.LoadEnv()
	return a.run(ctx, os.Args[1:])
}

func (a *App) run(ctx context.Context, args []string) int {
	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		log.Error().Err(err).Msg("footprint failed")
		return failureCode
	}
	return successCode
}

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }
