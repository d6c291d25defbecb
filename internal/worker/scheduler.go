package worker

import (
	"log"
)

// StartAllWorkers initializes and starts all background workers
func StartAllWorkers() {
	log.Println("Starting all workers...")

	StartPlanPersistenceWorkers()

	log.Println("All workers started")
}
