package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deepfall-server/internal/agent"
	"deepfall-server/internal/engine"
	"deepfall-server/internal/server"
	"deepfall-server/internal/version"
	"deepfall-server/pkg/logger"
	"deepfall-server/pkg/utils"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var worldName string
	var tickMs int
	var withBot bool
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&worldName, "world", "", "Named world: master seed derived from this string")
	flag.IntVar(&tickMs, "tick", 100, "Tick interval, milliseconds")
	flag.BoolVar(&withBot, "bot", false, "Attach a headless soak agent")
	flag.Parse()

	logger.Log.Info("Starting Deepfall...")
	logger.Log.Info(version.String())

	// Формируем конфиг
	cfg := engine.NewConfig()
	switch {
	case worldName != "":
		// Именованный мир: одно и то же имя - одно и то же подземелье.
		cfg.Seed = utils.StringToSeed(worldName)
		logger.Log.Infof("🎲 World %q -> Master Seed: %d", worldName, cfg.Seed)
	case seed != 0:
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	default:
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}
	if tickMs > 0 {
		cfg.TickInterval = time.Duration(tickMs) * time.Millisecond
	}

	port := os.Getenv("DF_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра с конфигом
	sim := engine.NewService(cfg)
	sim.Start()

	if withBot {
		bot := agent.NewBot("soak_bot", sim)
		go bot.Run()
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(sim, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	sim.Stop()
	logger.Log.Info("Done.")
}
