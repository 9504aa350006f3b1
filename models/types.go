// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreateMemeRequest struct {
	MemeURL   string `json:"memeUrl"`
	OwnerID   string `json:"ownerId"`
	OwnerName string `json:"ownerName"`
	Title     string `json:"title"`
}

type InteractionRequest struct {
	VoterID string `json:"voterId"`
}

// Response types

type CreateMemeResponse struct {
	ID string `json:"id"`
}

type InteractionResponse struct {
	Likes *int `json:"likes,omitempty"`
	Votes *int `json:"votes,omitempty"`
}

type OwnerExistsResponse struct {
	Exists bool `json:"exists"`
}

type VoterStatusResponse struct {
	Liked bool `json:"liked"`
	Voted bool `json:"voted"`
}

// MemeSummary is the public listing projection. It carries the counters
// but never the voter sets: who liked or voted stays private at this
// boundary.
type MemeSummary struct {
	ID        string    `json:"id"`
	MemeURL   string    `json:"memeUrl"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"ownerId"`
	OwnerName string    `json:"ownerName"`
	Likes     int       `json:"likes"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
