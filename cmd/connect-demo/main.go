// Command connect-demo drives the SDK against a console-backed host
// environment, replaying a scripted message sequence the way an embedded page
// would produce it.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	connectsdk "github.com/connectxyz/connect-sdk-go"
	"github.com/connectxyz/connect-sdk-go/events"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running demo: %s\n", err)
	}
	log.Printf("Demo stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := loadConfig(configPath())
	if err != nil {
		return fmt.Errorf("loadConfig %w", err)
	}
	displayAppname(cfg.AppName)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	flow := connectsdk.ConfigureAuth(cfg.JWT,
		connectsdk.WithEnvironment(connectsdk.Environment(cfg.Environment)),
		connectsdk.WithTheme(connectsdk.Theme(cfg.Theme)),
		connectsdk.WithLogger(logger),
		connectsdk.WithCallbacks(events.AuthCallbacks{
			OnClose: func() {
				logger.Info().Msg("flow closed")
			},
			OnError: func(e events.ErrorEvent) {
				logger.Warn().Str("code", e.Code).Str("message", e.Message).Msg("flow error")
			},
			OnEvent: func(e events.GenericEvent) {
				logger.Info().Str("eventType", e.Type).Msg("flow event")
			},
			OnDeposit: func(e events.DepositEvent) {
				id, _ := e.DepositID()
				logger.Info().Str("depositId", id).Bool("success", e.Success()).Msg("deposit")
			},
		}),
	)

	env := newConsoleEnvironment(logger)
	sess := flow.Present(env)
	if sess == nil {
		return errors.New("flow did not present")
	}
	logger.Info().Str("sessionID", sess.ID()).Msg("session presented")

	go env.replay(cfg.Messages, cfg.MessageOrigin)

	waitForEnd(env)
	flow.Cancel()
	return nil
}

func configPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return ""
}

// waitForEnd returns when the session is dismissed or the process is told to
// stop.
func waitForEnd(env *consoleEnvironment) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-env.dismissed:
	case <-stop:
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
