// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the MENI API.

# Route Registration

NewRouter creates a configured handler with all endpoints, wrapped in the
CORS middleware:

	handler := router.NewRouter(st, cfg)

# Endpoints

Health:

	GET /health
	GET /

Listing and registration:

	GET  /memes                         - Newest-first listing
	POST /memes                         - Register a submitted meme
	GET  /memes/owners/{ownerID}/exists - Has this owner submitted?
	GET  /memes/{id}/voters/{voterID}   - Has this voter liked/voted?

Counters:

	POST   /memes/{id}/like - Like once per voter
	POST   /memes/{id}/vote - Vote once per voter
	DELETE /memes/{id}/like - Undo a like
	DELETE /memes/{id}/vote - Undo a vote

# Handler Initialization

The router builds the domain services from the injected store and wires
them into the handlers:

	engine := meme.NewEngine(st, cfg.StoreTimeout)
	lister := meme.NewLister(st, cfg.ListLimit, cfg.StoreTimeout)
	registrar := meme.NewRegistrar(st, cfg.StoreTimeout)

Nothing below the router reaches for ambient state; every component gets
its store handle at construction.
*/
package router
