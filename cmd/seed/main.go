// Command seed provisions the default staff accounts: one administrator with
// cross-branch visibility and one front-office account per branch. Existing
// accounts are left untouched, so the command is safe to re-run.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/domain"
	"github.com/chamathdew/hiruayurvedaresorts/internal/core/service"
	"github.com/chamathdew/hiruayurvedaresorts/internal/infrastructure/config"
	mongodb "github.com/chamathdew/hiruayurvedaresorts/internal/infrastructure/db/mongo"
	"github.com/chamathdew/hiruayurvedaresorts/pkg/logger"
)

type seedAccount struct {
	username string
	password string
	role     string
	branch   string
}

var defaults = []seedAccount{
	{"admin", "admin123", domain.RoleAdmin, domain.BranchAll},
	{"villa", "password", domain.RoleFrontOffice, domain.BranchHiruVilla},
	{"om", "password", domain.RoleFrontOffice, domain.BranchHiruOm},
	{"mudhra", "password", domain.RoleFrontOffice, domain.BranchHiruMudhra},
	{"aadya", "password", domain.RoleFrontOffice, domain.BranchHiruAadya},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := mongodb.NewAuthRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	auth := service.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL)

	for _, acc := range defaults {
		if _, err := repo.FindByUsername(ctx, acc.username); err == nil {
			log.Info().Str("username", acc.username).Msg("account already exists")
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			log.Fatal().Err(err).Str("username", acc.username).Msg("lookup failed")
		}

		if _, err := auth.Register(ctx, acc.username, acc.password, acc.role, acc.branch); err != nil {
			log.Fatal().Err(err).Str("username", acc.username).Msg("account creation failed")
		}
		log.Info().Str("username", acc.username).Str("branch", acc.branch).Msg("account created")
	}

	log.Info().Msg("seed complete")
}
