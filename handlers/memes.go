// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ihamedr/meni-server/meme"
	"github.com/ihamedr/meni-server/middleware"
	"github.com/ihamedr/meni-server/models"
)

type MemeHandler struct {
	lister    *meme.Lister
	registrar *meme.Registrar
}

func NewMemeHandler(lister *meme.Lister, registrar *meme.Registrar) *MemeHandler {
	return &MemeHandler{lister: lister, registrar: registrar}
}

// List handles GET /memes
func (h *MemeHandler) List(w http.ResponseWriter, r *http.Request) {
	memes, err := h.lister.List(r.Context())
	if err != nil {
		slog.Error("failed to list memes", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Store error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, memes)
}

// Create handles POST /memes
func (h *MemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.registrar.Register(r.Context(), req.MemeURL, req.OwnerID, req.OwnerName, req.Title)
	switch {
	case errors.Is(err, meme.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, meme.ErrDuplicateOwner):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already submitted a meme")
		return
	case err != nil:
		slog.Error("failed to register meme", "error", err, "owner_id", req.OwnerID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Store error")
		return
	}

	slog.Info("meme registered", "meme_id", id, "owner_id", req.OwnerID)
	middleware.JSONResponse(w, http.StatusCreated, models.CreateMemeResponse{ID: id})
}

// OwnerExists handles GET /memes/owners/{ownerID}/exists
func (h *MemeHandler) OwnerExists(w http.ResponseWriter, r *http.Request) {
	ownerID := r.PathValue("ownerID")
	if ownerID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "owner id is required")
		return
	}

	exists, err := h.registrar.OwnerExists(r.Context(), ownerID)
	if err != nil {
		slog.Error("failed to check owner", "error", err, "owner_id", ownerID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Store error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OwnerExistsResponse{Exists: exists})
}

// VoterStatus handles GET /memes/{id}/voters/{voterID}
func (h *MemeHandler) VoterStatus(w http.ResponseWriter, r *http.Request) {
	memeID := r.PathValue("id")
	voterID := r.PathValue("voterID")

	liked, voted, err := h.lister.HasVoted(r.Context(), memeID, voterID)
	switch {
	case errors.Is(err, meme.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, meme.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Meme not found")
		return
	case err != nil:
		slog.Error("failed to check voter", "error", err, "meme_id", memeID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Store error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoterStatusResponse{Liked: liked, Voted: voted})
}
