package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Yonajim/NPUPlatform/internal/config"
	"github.com/Yonajim/NPUPlatform/internal/creation"
	"github.com/Yonajim/NPUPlatform/internal/httpapi"
	"github.com/Yonajim/NPUPlatform/internal/imagestore"
	"github.com/Yonajim/NPUPlatform/internal/migrate"
	"github.com/Yonajim/NPUPlatform/internal/obs"
	"github.com/Yonajim/NPUPlatform/internal/server"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()
	obs.Init()
	log := obs.NewLogger("npu-creations", slog.LevelInfo)

	cfg, err := config.LoadCreations()
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

	images, err := imagestore.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Error("image store", "error", err)
		os.Exit(1)
	}

	var store creation.Store = creation.NewInMemory()
	if db != nil {
		store = creation.NewPGStore(db)
	}

	svc := creation.NewService(store, images)
	api := httpapi.NewCreationAPI(svc, httpapi.ReadyProbe{DB: db}, log, version)
	if err := server.Run(log, cfg.Addr, api.Handler()); err != nil {
		log.Error("server", "error", err)
		os.Exit(1)
	}
}
