// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing.

# Configuration

ParseFlags loads the environment (via envconfig), applies CLI overrides,
and validates the combination:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: server listen port (default: 3000)
  - StoreBackend: memory, sqlite, postgres, or cloud (default: memory)
  - DatabaseURL: sqlite path or postgres DSN (sql backends only)
  - CloudBaseURL/CloudName/CloudKey/CloudSecret: remote store access
  - AllowedOrigin: CORS origin (default: *)
  - ListLimit: max memes per listing (default: 50)
  - StoreTimeout: per-call store timeout (default: 10s)

# Environment Variables

	PORT                  → -p
	STORE_BACKEND         → -s
	DATABASE_URL          → -d
	ALLOWED_ORIGIN        → -origin
	LIST_LIMIT            → -limit
	STORE_TIMEOUT         → -store-timeout
	CLOUDINARY_BASE_URL
	CLOUDINARY_CLOUD_NAME → -cloud-name
	CLOUDINARY_API_KEY    → -cloud-key
	CLOUDINARY_API_SECRET → -cloud-secret

CLI flags take precedence over environment variables. main loads a .env
file first (godotenv), so local development needs neither flags nor an
exported environment.

# Validation

ParseFlags returns an error if the backend's required values are missing:

  - sqlite/postgres: DATABASE_URL
  - cloud: CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET
*/
package cliparse
