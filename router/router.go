// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/ihamedr/meni-server/cliparse"
	"github.com/ihamedr/meni-server/handlers"
	"github.com/ihamedr/meni-server/meme"
	"github.com/ihamedr/meni-server/middleware"
	"github.com/ihamedr/meni-server/store"
)

func NewRouter(st store.Store, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize services and handlers
	engine := meme.NewEngine(st, cfg.StoreTimeout)
	lister := meme.NewLister(st, cfg.ListLimit, cfg.StoreTimeout)
	registrar := meme.NewRegistrar(st, cfg.StoreTimeout)

	memeHandler := handlers.NewMemeHandler(lister, registrar)
	interactionHandler := handlers.NewInteractionHandler(engine)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Listing and registration (public)
	mux.HandleFunc("GET /memes", middleware.WithLogging(memeHandler.List))
	mux.HandleFunc("POST /memes", middleware.WithLogging(memeHandler.Create))
	mux.HandleFunc("GET /memes/owners/{ownerID}/exists", middleware.WithLogging(memeHandler.OwnerExists))
	mux.HandleFunc("GET /memes/{id}/voters/{voterID}", middleware.WithLogging(memeHandler.VoterStatus))

	// Counters (public, idempotent per voter)
	mux.HandleFunc("POST /memes/{id}/like", middleware.WithLogging(interactionHandler.Like))
	mux.HandleFunc("POST /memes/{id}/vote", middleware.WithLogging(interactionHandler.Vote))
	mux.HandleFunc("DELETE /memes/{id}/like", middleware.WithLogging(interactionHandler.Unlike))
	mux.HandleFunc("DELETE /memes/{id}/vote", middleware.WithLogging(interactionHandler.Unvote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("MENI Server is running..."))
	})

	return middleware.CORS(cfg.AllowedOrigin, mux)
}
