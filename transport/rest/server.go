package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/playrooms/tictactoe-server/internal/repository"
)

// Start - starts the HTTP server with the health and stats endpoints.
func Start(logger *slog.Logger, statsRepo repository.StatsRepository, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/stats", statsHandler(logger, statsRepo))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func statsHandler(logger *slog.Logger, statsRepo repository.StatsRepository) http.HandlerFunc {
	log := logger.With("method", "statsHandler")

	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := statsRepo.GetSummary(r.Context())
		if err != nil {
			log.Error("failed to get stats summary", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(summary); err != nil {
			log.Error("failed to write stats summary", "error", err)
		}
	}
}
