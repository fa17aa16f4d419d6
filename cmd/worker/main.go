package main

import (
	"github.com/hibiken/asynq"

	"github.com/chcomputer/almacen-api/internal/infrastructure/tasks"
	"github.com/chcomputer/almacen-api/internal/workers"
	"github.com/chcomputer/almacen-api/pkg/config"
	"github.com/chcomputer/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("redis", cfg.Redis.Addr).
		Msg("iniciando worker de alertas")

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"alerts":  3,
				"default": 1,
			},
		},
	)

	processor := workers.NewLowStockProcessor(cfg, log.Zerolog())

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeLowStockAlert, processor.ProcessAlert)

	// Run bloquea y maneja SIGINT/SIGTERM con apagado limpio.
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("worker detenido con error")
	}
}
