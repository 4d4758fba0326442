package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rogue-server/internal/config"
	"rogue-server/internal/domain"
	"rogue-server/internal/engine"
	"rogue-server/internal/infrastructure/storage"
	"rogue-server/internal/server"
	"rogue-server/internal/systems"
	"rogue-server/internal/version"
	"rogue-server/pkg/logger"
)

func main() {
	// 1. Парсинг конфигурации
	var configPath string
	var seed int64
	var replayPath string
	flag.StringVar(&configPath, "config", "", "Path to TOML config file")
	flag.Int64Var(&seed, "seed", 0, "World seed override (0 = use config/random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .rgrp replay file to inspect")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Log.Info("Starting Rogue Server...")
	logger.Log.Info(version.String())

	// РЕЖИМ ИНСПЕКЦИИ РЕПЛЕЯ
	if replayPath != "" {
		inspectReplay(cfg, replayPath)
		return
	}

	// Сид: флаг > конфиг > случайный
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Log.Infof("🎲 Using random world seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using explicit world seed: %d", seed)
	}
	rng := rand.New(rand.NewSource(seed))

	if addr := os.Getenv("RS_ADDR"); addr != "" {
		cfg.Server.BindAddress = addr
	}

	// 2. Инициализация ядра
	eng := buildWorld(cfg, rng)

	replayLog := &domain.ReplayLog{Seed: seed, Timestamp: time.Now().Unix()}
	eng.SetRecorder(replayLog)

	host := server.NewHost(eng, cfg, rng)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(host, cfg.Server.BindAddress)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Сохраняем ленту ходов
	replays := storage.NewReplayService(cfg.Server.ReplayDir)
	if path, err := replays.Save(replayLog); err != nil {
		logger.Log.WithError(err).Error("Failed to save replay")
	} else {
		logger.Log.Infof("💿 Replay saved: %s (%d turns)", path, len(replayLog.Records))
	}

	logger.Log.Info("Done.")
}

// buildWorld собирает движок: карта, политика стоимости, AI и стартовые NPC
func buildWorld(cfg *config.Config, rng *rand.Rand) *engine.Engine {
	m := domain.NewBorderedMap(cfg.Game.MapWidth, cfg.Game.MapHeight)

	policy := engine.CostPolicy{WaitDivisor: cfg.Timing.WaitDivisor}
	eng := engine.NewEngine(m, policy)
	eng.SetDecisionSource(systems.NewChaseDecider(m, eng.Occupancy, eng.Registry))

	for i := 0; i < cfg.Game.NPCCount; i++ {
		pos, ok := systems.FindFreeTile(m, eng.Occupancy, rng)
		if !ok {
			logger.Log.Warn("No free tiles left for NPC spawn")
			break
		}
		name := fmt.Sprintf("goblin-%d", i+1)
		if _, err := eng.Spawn(name, domain.RoleNonPlayerActor, cfg.Game.NPCSpeed, pos); err != nil {
			logger.Log.WithError(err).Error("NPC spawn failed")
		}
	}

	return eng
}

// inspectReplay печатает сводку по сохраненной ленте ходов
func inspectReplay(cfg *config.Config, path string) {
	logger.Log.Info("💿 Mode: Replay Inspection")

	replays := storage.NewReplayService(cfg.Server.ReplayDir)
	log, err := replays.Load(path)
	if err != nil {
		logger.Log.Fatal("Failed to load replay:", err)
	}

	var lastTick uint64
	if n := len(log.Records); n > 0 {
		lastTick = log.Records[n-1].Tick
	}
	logger.Log.Infof("Replay seed=%d recorded=%s turns=%d duration=%d ticks",
		log.Seed, time.Unix(log.Timestamp, 0).UTC().Format(time.RFC3339),
		len(log.Records), lastTick)

	for _, rec := range log.Records {
		logger.Log.Debugf("tick=%d actor=%s action=%s dir=%s", rec.Tick, rec.Actor, rec.Action, rec.Dir)
	}
}
