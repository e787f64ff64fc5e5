package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Yonajim/NPUPlatform/internal/auth"
	"github.com/Yonajim/NPUPlatform/internal/config"
	"github.com/Yonajim/NPUPlatform/internal/gateway"
	"github.com/Yonajim/NPUPlatform/internal/obs"
	"github.com/Yonajim/NPUPlatform/internal/server"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()
	obs.Init()
	log := obs.NewLogger("npu-gateway", slog.LevelInfo)

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	verifier := auth.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	gw, err := gateway.New(gateway.Rules(cfg), gateway.NewTokenAuthenticator(verifier), log, version, cfg.RateBurst, cfg.RatePerSec)
	if err != nil {
		log.Error("build gateway", "error", err)
		os.Exit(1)
	}

	if err := server.Run(log, cfg.Addr, gw.Handler()); err != nil {
		log.Error("server", "error", err)
		os.Exit(1)
	}
}
