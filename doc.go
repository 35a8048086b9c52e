// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the propbowl API server.

propbowl runs a prop bet contest for a group of friends: an admin posts
prop bets, players pick answers until the contest locks, the admin posts
results, and the server ranks players and proposes how the pot is split.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... JWT_SECRET=... go run .

Or with flags, against a local sqlite file:

	go run . -d "file:propbowl.db" -jwt-secret dev-secret

Values in .env (or -env-file) are loaded first and never override the
real environment.

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string
  - JWT_SECRET (-jwt-secret): HS256 secret for bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - REDIS_URL (-redis): Publish the change feed to redis
  - FEED_CHANNEL (-feed-channel): Channel prefix (default: propbowl:changes)
  - ADMIN_PHONE, ADMIN_NAME (-admin-phone, -admin-name): Bootstrap an admin

# Bootstrapping

An empty database has no admin. Start once with -admin-phone to create one,
then mint a token for it:

	go run . -admin-phone 3125550100 -admin-name Commish -mint-token 3125550100

# Architecture

  - scoring: Grading, leaderboard and payout rules
  - store: Entity store over database/sql (postgres or sqlite)
  - feed: Change notifications (log or redis pub/sub)
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: Bearer auth, validation, CORS, logging, JSON helpers
  - models: Request, response and domain types
  - auth: JWT and phone number helpers
  - db: Connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
