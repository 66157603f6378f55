package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
)

var servePort int

type queryRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Question  string `json:"question"`
}

type queryResponse struct {
	SessionID string                  `json:"session_id"`
	Message   string                  `json:"message"`
	Data      *model.ObservationTable `json:"data,omitempty"`
	Intent    *model.Intent           `json:"intent,omitempty"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP query server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p := newPipeline()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})

		r.Post("/v1/query", func(w http.ResponseWriter, req *http.Request) {
			var in queryRequest
			if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
			if in.Question == "" {
				http.Error(w, `{"error":"question is required"}`, http.StatusBadRequest)
				return
			}

			sessionID := in.SessionID
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			prior, err := appStore.GetTranscript(req.Context(), sessionID)
			if err != nil {
				zap.L().Warn("could not load session, starting fresh",
					zap.String("session_id", sessionID), zap.Error(err))
			}

			result, transcript := p.ProcessQuery(req.Context(), in.Question, prior)

			if err := appStore.SaveTranscript(req.Context(), sessionID, transcript); err != nil {
				zap.L().Warn("could not persist session",
					zap.String("session_id", sessionID), zap.Error(err))
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(queryResponse{
				SessionID: sessionID,
				Message:   result.Message,
				Data:      result.Data,
				Intent:    result.Intent,
			})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
