package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/storefront-cli/internal/discovery"
	"github.com/sells-group/storefront-cli/internal/extract"
	"github.com/sells-group/storefront-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		fetcher := initFetcher()
		api := &apiServer{
			store:     st,
			extractor: initExtractor(fetcher),
			analyzer:  initAnalyzer(st, fetcher),
			// Batches outlive the request that started them; they stop
			// with the server, not with the client connection.
			batchCtx: ctx,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.routes(),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

type apiServer struct {
	store     store.Store
	extractor *extract.Extractor
	analyzer  *discovery.Analyzer
	batchCtx  context.Context
}

func (s *apiServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/scrape", s.handleScrape)
		r.Post("/scrape-with-competitors", s.handleScrapeWithCompetitors)
		r.Post("/competitors/{id}", s.handleAnalyzeCompetitors)
		r.Get("/competitors/{id}", s.handleListCompetitors)
		r.Get("/brands", s.handleListBrands)
		r.Get("/brands/{id}", s.handleGetBrand)
		r.Get("/jobs/{id}", s.handleGetJob)
	})

	return r
}

type scrapeRequest struct {
	WebsiteURL string `json:"website_url"`
}

func (s *apiServer) handleScrape(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScrapeRequest(w, r)
	if !ok {
		return
	}

	profile, err := s.extractor.Profile(r.Context(), req.WebsiteURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	profile, err = s.store.SaveProfile(r.Context(), profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (s *apiServer) handleScrapeWithCompetitors(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScrapeRequest(w, r)
	if !ok {
		return
	}

	profile, err := s.extractor.Profile(r.Context(), req.WebsiteURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	profile, err = s.store.SaveProfile(r.Context(), profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.launchBatch(profile.ID)

	writeJSON(w, http.StatusOK, map[string]any{
		"profile":                     profile,
		"competitor_analysis_started": true,
	})
}

func (s *apiServer) handleAnalyzeCompetitors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.store.GetProfile(r.Context(), id); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	s.launchBatch(id)

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":     "started",
		"profile_id": id,
	})
}

// launchBatch starts a competitor batch off the request path. Progress is
// tracked through the job record, polled via GET /api/jobs/{id}.
func (s *apiServer) launchBatch(profileID string) {
	go func() {
		if _, err := s.analyzer.Run(s.batchCtx, profileID); err != nil {
			zap.L().Error("competitor batch failed",
				zap.String("profile_id", profileID),
				zap.Error(err))
		}
	}()
}

func (s *apiServer) handleListCompetitors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.store.GetProfile(r.Context(), id); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	competitors, err := s.store.ListCompetitors(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile_id":  id,
		"competitors": competitors,
	})
}

func (s *apiServer) handleListBrands(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.ListProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"brands": summaries,
		"count":  len(summaries),
	})
}

func (s *apiServer) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *apiServer) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func decodeScrapeRequest(w http.ResponseWriter, r *http.Request) (scrapeRequest, bool) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, eris.New("invalid request body"))
		return req, false
	}
	if req.WebsiteURL == "" {
		writeError(w, http.StatusBadRequest, eris.New("website_url is required"))
		return req, false
	}
	return req, true
}

func statusFor(err error) int {
	if eris.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
