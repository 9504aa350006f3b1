// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the MENI API.

# Handler Types

Each handler is a struct constructed with its domain-service dependencies:

  - MemeHandler: listing, registration, owner and voter lookups
  - InteractionHandler: like/vote registration and undo

# Routes

	GET    /memes                          -> List
	POST   /memes                          -> Create
	GET    /memes/owners/{ownerID}/exists  -> OwnerExists
	GET    /memes/{id}/voters/{voterID}    -> VoterStatus
	POST   /memes/{id}/like                -> Like
	POST   /memes/{id}/vote                -> Vote
	DELETE /memes/{id}/like                -> Unlike
	DELETE /memes/{id}/vote                -> Unvote

# Status Mapping

Domain errors map onto HTTP statuses here and nowhere else:

	meme.ErrValidation        -> 400
	meme.ErrNotFound          -> 404
	meme.ErrAlreadyRegistered -> 409 (count unchanged)
	meme.ErrNotRegistered     -> 409
	meme.ErrDuplicateOwner    -> 409
	store conflicts/failures  -> 502 (after retries)

# Conflict Retries

The counter engine performs exactly one read-modify-write per call and
reports a lost race as store.ErrConflict. InteractionHandler re-runs the
whole operation up to commitAttempts times. Keeping the loop here, not in
the engine, lets tests observe single-attempt behavior and multi-attempt
convergence separately.
*/
package handlers
