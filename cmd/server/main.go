package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jcheng-dev/sportlog/internal/api"
	"github.com/jcheng-dev/sportlog/internal/config"
	"github.com/jcheng-dev/sportlog/internal/repositories"
)

func main() {
	repositories.ConnectDatabase()

	if config.Envs.SeedDemo {
		if err := repositories.SeedDemoData(); err != nil {
			log.Fatalf("Seeding demo data failed: %v", err)
		}
	}

	mux := api.SetupRouter()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients. The
		// write timeout leaves room for the weather provider's 5s budget.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting SportLog server on port: %s", config.Envs.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", config.Envs.Port, err)
	}
}
