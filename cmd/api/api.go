package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/logger"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/store"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/study"
)

type application struct {
	config    config
	store     store.Storage
	studies   *study.Service
	appLogger *logger.Logger
}

type config struct {
	addr string
	db   dbConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/studies/{id}", func(r chi.Router) {
			r.Get("/result", app.handleGetStudyResult)
			r.Post("/recompute", app.handleRecomputeStudy)
			r.Get("/line-items", app.handleListLineItems)
			r.Post("/line-items", app.handleCreateLineItem)
			r.Route("/schedule", func(r chi.Router) {
				r.Get("/", app.handleGetSchedule)
				r.Post("/sync", app.handleSyncSchedule)
			})
		})
		r.Route("/line-items/{id}", func(r chi.Router) {
			r.Patch("/", app.handleUpdateLineItem)
			r.Delete("/", app.handleDeleteLineItem)
		})
		r.Route("/settings", func(r chi.Router) {
			r.Get("/thresholds", app.handleGetThresholds)
			r.Put("/thresholds", app.handleUpdateThresholds)
		})
		r.Get("/portfolio/summary", app.handleGetPortfolioSummary)
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	log.Printf("Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
