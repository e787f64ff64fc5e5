package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Yonajim/NPUPlatform/internal/auth"
	"github.com/Yonajim/NPUPlatform/internal/config"
	"github.com/Yonajim/NPUPlatform/internal/httpapi"
	"github.com/Yonajim/NPUPlatform/internal/migrate"
	"github.com/Yonajim/NPUPlatform/internal/obs"
	"github.com/Yonajim/NPUPlatform/internal/server"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()
	obs.Init()
	log := obs.NewLogger("npu-auth", slog.LevelInfo)

	cfg, err := config.LoadAuth()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	db, err := server.OpenDB(cfg.Database.DSN)
	if err != nil {
		log.Error("open db", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		if err := migrate.Up(context.Background(), db); err != nil {
			log.Error("migrate", "error", err)
			os.Exit(1)
		}
	}

	var store auth.Store = auth.NewInMemory()
	if db != nil {
		store = auth.NewPGStore(db)
	}

	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Lifetime)
	revoked := auth.NewRevocationList()
	verifier := auth.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, auth.WithRevocations(revoked))
	svc := auth.NewService(store, issuer, verifier, revoked)

	api := httpapi.NewAuthAPI(svc, httpapi.ReadyProbe{DB: db}, log, version)
	if err := server.Run(log, cfg.Addr, api.Handler()); err != nil {
		log.Error("server", "error", err)
		os.Exit(1)
	}
}
