// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the MENI meme contest server.

MENI lets users submit memes and lets every other user like and vote for
each meme at most once. Counters live in the asset store's per-image
context metadata, not in a database of our own, which makes the
idempotent counting protocol the heart of the server (see package meme).

# Starting the Server

The server reads a .env file if present, then environment variables,
then CLI flags:

	STORE_BACKEND=memory go run main.go

With a local database:

	go run main.go -s sqlite -d meni.db
	go run main.go -s postgres -d "postgres://..."

Against the hosted asset store:

	CLOUDINARY_CLOUD_NAME=... CLOUDINARY_API_KEY=... CLOUDINARY_API_SECRET=... \
		go run main.go -s cloud

# Configuration

Optional settings:

  - PORT (-p): server port (default: 3000)
  - STORE_BACKEND (-s): memory, sqlite, postgres, or cloud (default: memory)
  - DATABASE_URL (-d): sqlite path or postgres DSN (sql backends)
  - ALLOWED_ORIGIN (-origin): CORS origin (default: *)
  - LIST_LIMIT (-limit): max memes per listing (default: 50)
  - STORE_TIMEOUT (-store-timeout): per-call store timeout (default: 10s)

Cloud backend secrets: CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY,
CLOUDINARY_API_SECRET.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - meme: the domain core (aggregate codec, counter engine, listing,
    registration)
  - store: metadata store adapters (memory, sqlite/postgres, cloud)
  - handlers: HTTP request handlers and the conflict retry policy
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
