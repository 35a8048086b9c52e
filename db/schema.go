// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is shared by the postgres and sqlite drivers.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Profiles (pre-provisioned by an admin, keyed by phone)
CREATE TABLE IF NOT EXISTS profile (
    id TEXT PRIMARY KEY,
    phone TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    has_paid_entry BOOLEAN NOT NULL DEFAULT FALSE,
    has_received_payout BOOLEAN NOT NULL DEFAULT FALSE,
    payout_place TEXT CHECK (payout_place IN ('first', 'second', 'third', 'last')),
    payout_amount NUMERIC(10, 2) NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Contests
CREATE TABLE IF NOT EXISTS contest (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    year INTEGER NOT NULL,
    entry_fee NUMERIC(10, 2) NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT FALSE,
    picks_locked BOOLEAN NOT NULL DEFAULT FALSE,
    picks_lock_time TIMESTAMP,
    payout_first INTEGER NOT NULL DEFAULT 0,
    payout_second INTEGER NOT NULL DEFAULT 0,
    payout_third INTEGER NOT NULL DEFAULT 0,
    payout_last NUMERIC(10, 2),
    venmo_username TEXT,
    paypal_username TEXT,
    landing_message TEXT,
    previous_winners TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- At most one active contest
CREATE UNIQUE INDEX IF NOT EXISTS idx_contest_single_active ON contest(is_active) WHERE is_active;

-- Prop bets
CREATE TABLE IF NOT EXISTS prop_bet (
    id TEXT PRIMARY KEY,
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    question TEXT NOT NULL,
    option_a TEXT NOT NULL DEFAULT '',
    option_b TEXT NOT NULL DEFAULT '',
    category TEXT,
    correct_answer TEXT CHECK (correct_answer IN ('A', 'B')),
    image_url TEXT,
    source_url TEXT,
    is_tiebreaker BOOLEAN NOT NULL DEFAULT FALSE,
    is_open_ended BOOLEAN NOT NULL DEFAULT FALSE,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_prop_bet_contest_id ON prop_bet(contest_id, sort_order);

-- Picks (one per user per prop bet)
CREATE TABLE IF NOT EXISTS pick (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES profile(id) ON DELETE CASCADE,
    prop_bet_id TEXT NOT NULL REFERENCES prop_bet(id) ON DELETE CASCADE,
    selected_option TEXT CHECK (selected_option IN ('A', 'B')),
    value_response TEXT,
    is_correct BOOLEAN,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (user_id, prop_bet_id)
);

CREATE INDEX IF NOT EXISTS idx_pick_prop_bet_id ON pick(prop_bet_id);

-- Chat
CREATE TABLE IF NOT EXISTS chat_message (
    id TEXT PRIMARY KEY,
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES profile(id) ON DELETE CASCADE,
    kind TEXT NOT NULL DEFAULT 'text' CHECK (kind IN ('text', 'gif')),
    message TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_chat_message_contest_id ON chat_message(contest_id, created_at);

-- Invites
CREATE TABLE IF NOT EXISTS invite (
    id TEXT PRIMARY KEY,
    phone TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    invited_by TEXT,
    is_claimed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
