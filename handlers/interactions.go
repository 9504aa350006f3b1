// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ihamedr/meni-server/meme"
	"github.com/ihamedr/meni-server/middleware"
	"github.com/ihamedr/meni-server/models"
	"github.com/ihamedr/meni-server/store"
)

// commitAttempts bounds how often a handler re-runs an interaction whose
// commit lost a race. The engine makes single attempts; retry policy
// lives here at the transport layer.
const commitAttempts = 3

type InteractionHandler struct {
	engine *meme.Engine
}

func NewInteractionHandler(engine *meme.Engine) *InteractionHandler {
	return &InteractionHandler{engine: engine}
}

// Like handles POST /memes/{id}/like
func (h *InteractionHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, meme.KindLike, h.engine.Register, "You have already liked this meme")
}

// Vote handles POST /memes/{id}/vote
func (h *InteractionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, meme.KindVote, h.engine.Register, "You have already voted for this meme")
}

// Unlike handles DELETE /memes/{id}/like
func (h *InteractionHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, meme.KindLike, h.engine.Unregister, "You have not liked this meme")
}

// Unvote handles DELETE /memes/{id}/vote
func (h *InteractionHandler) Unvote(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, meme.KindVote, h.engine.Unregister, "You have not voted for this meme")
}

type engineOp func(ctx context.Context, memeID, voterID string, kind meme.Kind) (int, error)

func (h *InteractionHandler) mutate(w http.ResponseWriter, r *http.Request, kind meme.Kind, op engineOp, rejectMsg string) {
	memeID := r.PathValue("id")
	if memeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "meme id is required")
		return
	}

	var req models.InteractionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.VoterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voterId is required")
		return
	}

	var count int
	var err error
	for attempt := 1; attempt <= commitAttempts; attempt++ {
		count, err = op(r.Context(), memeID, req.VoterID, kind)
		if !errors.Is(err, store.ErrConflict) {
			break
		}
		// Lost the read-modify-write race; re-running from the fetch is
		// safe and converges (dedup short-circuits a repeated voter).
		slog.Warn("commit conflict, retrying",
			"meme_id", memeID,
			"kind", string(kind),
			"attempt", attempt,
		)
	}

	switch {
	case errors.Is(err, meme.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, meme.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Meme not found")
		return
	case errors.Is(err, meme.ErrAlreadyRegistered), errors.Is(err, meme.ErrNotRegistered):
		middleware.ErrorResponse(w, http.StatusConflict, rejectMsg)
		return
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusBadGateway, "Store conflict, please retry")
		return
	case err != nil:
		slog.Error("interaction failed", "error", err, "meme_id", memeID, "kind", string(kind))
		middleware.ErrorResponse(w, http.StatusBadGateway, "Store error")
		return
	}

	slog.Info("interaction registered",
		"meme_id", memeID,
		"kind", string(kind),
		"count", count,
	)

	resp := models.InteractionResponse{}
	if kind == meme.KindLike {
		resp.Likes = &count
	} else {
		resp.Votes = &count
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
