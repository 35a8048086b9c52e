// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL or SQLite connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Secret shared with the identity provider (required)
  - RedisURL: Enables the Redis change feed when set
  - FeedChannel: Channel prefix for change events (default: propbowl:changes)
  - AdminPhone, AdminName: Bootstrap administrator
  - MintToken: Phone number to mint a bearer token for, then exit

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-jwt-secret    Bearer token secret
	-redis         Redis URL
	-feed-channel  Change feed channel prefix
	-env-file      Dotenv file (default .env)
	-admin-phone   Bootstrap admin phone
	-admin-name    Bootstrap admin display name
	-mint-token    Print a token for this phone and exit

# Environment Variables

The dotenv file is loaded first; it never overrides variables already in
the environment. Flags then fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	JWT_SECRET    → -jwt-secret
	REDIS_URL     → -redis
	FEED_CHANNEL  → -feed-channel
	ADMIN_PHONE   → -admin-phone
	ADMIN_NAME    → -admin-name

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
