package worker

import (
	"log"
	"time"

	"planforge/internal/config"
	"planforge/internal/service/plan"
)

// StartPlanPersistenceWorkers starts the workers that flush generated plans
// to Redis and PostgreSQL
func StartPlanPersistenceWorkers() {
	planService := plan.GetPlanService()

	redisTicker := time.NewTicker(config.RedisBackupInterval)
	go func() {
		for range redisTicker.C {
			if err := planService.SaveDirtyPlansToRedis(); err != nil {
				log.Printf("Error saving plans to Redis: %v", err)
			}
		}
	}()

	pgTicker := time.NewTicker(config.PostgresBackupInterval)
	go func() {
		for range pgTicker.C {
			if err := planService.SaveAllPlansToPG(); err != nil {
				log.Printf("Error saving plans to PostgreSQL: %v", err)
			}
		}
	}()

	log.Println("Plan persistence workers started with intervals:",
		config.RedisBackupInterval, config.PostgresBackupInterval)
}
