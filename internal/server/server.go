package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/renatomh/gorestaurant-web/internal/database/repository"
	"github.com/renatomh/gorestaurant-web/internal/food"
)

// Store is the persistence the /foods resource is served from.
type Store interface {
	List(ctx context.Context) ([]food.Food, error)
	Get(ctx context.Context, id int64) (food.Food, error)
	Insert(ctx context.Context, f food.Food) (food.Food, error)
	Update(ctx context.Context, id int64, f food.Food) (food.Food, error)
	Delete(ctx context.Context, id int64) error
}

// Server exposes a Store as the json /foods resource the dashboard talks to.
type Server struct {
	store   Store
	log     *slog.Logger
	timeout time.Duration
}

func New(store Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{store: store, log: log, timeout: 5 * time.Second}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/foods", func(r chi.Router) {
		r.Get("/", s.listFoods)
		r.Post("/", s.createFood)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getFood)
			r.Put("/", s.updateFood)
			r.Delete("/", s.deleteFood)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("serving foods", "addr", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.log.Info("server stopped")
		return nil
	}
}

func (s *Server) listFoods(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	foods, err := s.store.List(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, foods)
}

func (s *Server) getFood(w http.ResponseWriter, r *http.Request) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	f, err := s.store.Get(ctx, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, f)
}

func (s *Server) createFood(w http.ResponseWriter, r *http.Request) {
	f, ok := s.decode(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	stored, err := s.store.Insert(ctx, f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("food created", "id", stored.ID, "name", stored.Name)
	s.respond(w, http.StatusCreated, stored)
}

func (s *Server) updateFood(w http.ResponseWriter, r *http.Request) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}
	f, ok := s.decode(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	stored, err := s.store.Update(ctx, id, f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("food updated", "id", id)
	s.respond(w, http.StatusOK, stored)
}

func (s *Server) deleteFood(w http.ResponseWriter, r *http.Request) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	if err := s.store.Delete(ctx, id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("food deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.respondError(w, "invalid id "+strconv.Quote(raw), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decode reads and validates a food payload, answering 400/422 itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (food.Food, bool) {
	var f food.Food
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&f); err != nil {
		s.log.Warn("food payload rejected", "err", err)
		s.respondError(w, "invalid JSON", http.StatusBadRequest)
		return food.Food{}, false
	}
	if err := f.Validate(); err != nil {
		s.log.Warn("food payload rejected", "err", err)
		s.respondError(w, err.Error(), http.StatusUnprocessableEntity)
		return food.Food{}, false
	}
	return f, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		s.respondError(w, err.Error(), http.StatusNotFound)
		return
	}
	s.log.Error("store failure", "method", r.Method, "path", r.URL.Path, "err", err)
	s.respondError(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, message string, status int) {
	s.respond(w, status, map[string]string{"error": message})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start),
		)
	})
}
