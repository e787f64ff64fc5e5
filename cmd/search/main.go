package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Yonajim/NPUPlatform/internal/config"
	"github.com/Yonajim/NPUPlatform/internal/creation/remote"
	"github.com/Yonajim/NPUPlatform/internal/httpapi"
	"github.com/Yonajim/NPUPlatform/internal/obs"
	"github.com/Yonajim/NPUPlatform/internal/search"
	"github.com/Yonajim/NPUPlatform/internal/server"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()
	obs.Init()
	log := obs.NewLogger("npu-search", slog.LevelInfo)

	cfg, err := config.LoadSearch()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	registry := remote.New(cfg.CreationsURL, remote.WithTimeout(cfg.RequestTimeout))
	svc := search.NewService(registry)

	api := httpapi.NewSearchAPI(svc, httpapi.ReadyProbe{}, log, version)
	if err := server.Run(log, cfg.Addr, api.Handler()); err != nil {
		log.Error("server", "error", err)
		os.Exit(1)
	}
}
