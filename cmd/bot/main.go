// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/arianlotfi/crypto-locker/internal/adapter"
	"github.com/arianlotfi/crypto-locker/internal/config"
	"github.com/arianlotfi/crypto-locker/internal/crypto"
	"github.com/arianlotfi/crypto-locker/internal/logger"
	"github.com/arianlotfi/crypto-locker/internal/service"
	"github.com/arianlotfi/crypto-locker/internal/session"
	"github.com/arianlotfi/crypto-locker/internal/store"
	"github.com/arianlotfi/crypto-locker/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("crypto-locker")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	// installation helper: write a fresh salt file and exit
	if config.GenerateSaltPath != "" {
		if err = crypto.WriteSaltFile(config.GenerateSaltPath); err != nil {
			log.Fatal().Err(err).Msg("error generating salt file")
		}
		log.Info().Str("path", config.GenerateSaltPath).Msg("salt file generated")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing database")
		}
	}()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	salt, err := crypto.LoadSalt(cfg.Encryption.SaltFile)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading salt file")
	}
	key, err := crypto.DeriveKey(cfg.Encryption.Passphrase, salt, cfg.Encryption.Iterations)
	if err != nil {
		log.Fatal().Err(err).Msg("error deriving vault key")
	}
	cipher, err := crypto.NewCipher(key)
	if err != nil {
		log.Fatal().Err(err).Msg("error constructing cipher")
	}

	repos := store.NewRepositories(db, log)
	states := session.NewTable(cfg.Session.TTL)

	api, err := adapter.NewTelegramClient(adapter.TelegramConfig{Token: cfg.Bot.Token})
	if err != nil {
		log.Fatal().Err(err).Msg("error constructing telegram client")
	}

	controller := service.NewController(
		repos.Users,
		repos.Credentials,
		cipher,
		states,
		adapter.NewResponder(api),
		cfg.Bot.AdminID,
		log,
	)

	sweeper := workers.NewSessionSweeper(states, cfg.Session.SweepInterval, log)
	go workers.NewWorkers(sweeper).Run(ctx)

	dispatcher := adapter.NewDispatcher(api, controller, cfg.Bot.PollTimeout, log)
	if err = dispatcher.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("update dispatcher failed")
	}

	log.Info().Msg("shutdown complete")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
