// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connections

Open accepts TypePostgres (lib/pq) or TypeSQLite (modernc.org/sqlite):

	conn, err := db.Open(db.TypeSQLite, "file:propbowl.db")

SQLite connections are limited to one so pragmas and transactions behave.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is written to run unchanged on both databases.

# Tables

  - profile: Players, unique by phone
  - contest: One row per season; at most one is active
  - prop_bet: Questions in display order
  - pick: One per (user_id, prop_bet_id)
  - chat_message: Contest chat
  - invite: Phone numbers waiting to sign up

# Relationships

	contest 1──* prop_bet 1──* pick *──1 profile
	contest 1──* chat_message *──1 profile

Picks and chat messages cascade when their prop bet, contest or profile
is deleted.

# Indexes

  - contest.is_active (unique, partial): single active contest
  - prop_bet.(contest_id, sort_order)
  - pick.(user_id, prop_bet_id) (unique)
  - pick.prop_bet_id
  - chat_message.(contest_id, created_at)
*/
package db
