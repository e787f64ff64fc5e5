package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Yonajim/NPUPlatform/internal/config"
	"github.com/Yonajim/NPUPlatform/internal/creation/remote"
	"github.com/Yonajim/NPUPlatform/internal/httpapi"
	"github.com/Yonajim/NPUPlatform/internal/migrate"
	"github.com/Yonajim/NPUPlatform/internal/obs"
	"github.com/Yonajim/NPUPlatform/internal/score"
	"github.com/Yonajim/NPUPlatform/internal/server"
)

var version = "0.1.0"

// registryAdapter turns the remote registry client into the ledger's
// existence check.
type registryAdapter struct {
	client *remote.Client
}

func (a registryAdapter) Exists(ctx context.Context, creationID string) error {
	_, err := a.client.Get(ctx, creationID)
	return err
}

func main() {
	_ = godotenv.Load()
	obs.Init()
	log := obs.NewLogger("npu-scores", slog.LevelInfo)

	cfg, err := config.LoadScores()
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

	var store score.Store = score.NewInMemory()
	if db != nil {
		store = score.NewPGStore(db)
	}

	registry := registryAdapter{client: remote.New(cfg.CreationsURL, remote.WithTimeout(cfg.RequestTimeout))}
	svc := score.NewService(store, registry)

	api := httpapi.NewScoreAPI(svc, httpapi.ReadyProbe{DB: db}, log, version)
	if err := server.Run(log, cfg.Addr, api.Handler()); err != nil {
		log.Error("server", "error", err)
		os.Exit(1)
	}
}
