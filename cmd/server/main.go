package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/binaahub/authcore/accounts"
	"github.com/binaahub/authcore/accounts/sqliterepo"
	"github.com/binaahub/authcore/identity"
	"github.com/binaahub/authcore/internal/config"
	"github.com/binaahub/authcore/server"
	"github.com/binaahub/authcore/session"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	accountRepo, err := sqliterepo.New(filepath.Join(c.GetDataFolder(), "accounts.db"))
	if err != nil {
		return fmt.Errorf("sqliterepo.New: %w", err)
	}
	defer accountRepo.Close()

	srv := &http.Server{
		Addr:    c.GetPort(),
		Handler: server.New(c, newVerifier(c, accountRepo), accounts.NewResolver(accountRepo), session.NewStore(c)),
	}
	go listenAndServe(srv)
	waitForStopSignal()
	returnError = shutdown(srv)
	return returnError
}

func newVerifier(c config.Config, repo accounts.Repo) identity.Verifier {
	if c.GetAuthStrategy() == config.StrategyLocal {
		log.Warn().Msg("Using local credential verifier - development only")
		return identity.NewLocalVerifier(repo)
	}
	return identity.NewProviderVerifier(c)
}

func setupLogging(c config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func listenAndServe(srv *http.Server) error {
	log.Info().Str("addr", srv.Addr).Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
