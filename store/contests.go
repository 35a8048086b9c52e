// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/propbowl/models"
)

const contestColumns = `id, name, year, entry_fee, is_active, picks_locked, picks_lock_time,
	payout_first, payout_second, payout_third, payout_last, venmo_username, paypal_username,
	landing_message, previous_winners, created_at`

func scanContest(row rowScanner) (models.Contest, error) {
	var c models.Contest
	var payoutLast decimal.NullDecimal
	err := row.Scan(
		&c.ID, &c.Name, &c.Year, &c.EntryFee, &c.IsActive, &c.PicksLocked, &c.PicksLockTime,
		&c.PayoutFirst, &c.PayoutSecond, &c.PayoutThird, &payoutLast, &c.VenmoUsername,
		&c.PaypalUsername, &c.LandingMessage, &c.PreviousWinners, &c.CreatedAt,
	)
	if err != nil {
		return models.Contest{}, wrap(err)
	}
	if payoutLast.Valid {
		c.PayoutLast = &payoutLast.Decimal
	}
	return c, nil
}

// CreateContest inserts an inactive, unlocked contest.
func (s *Store) CreateContest(ctx context.Context, name string, year int, entryFee decimal.Decimal) (models.Contest, error) {
	c := models.Contest{
		ID:        newID(),
		Name:      name,
		Year:      year,
		EntryFee:  entryFee,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.exec(ctx, `
		INSERT INTO contest (id, name, year, entry_fee, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Name, c.Year, c.EntryFee, c.CreatedAt)
	if err != nil {
		return models.Contest{}, err
	}
	return c, nil
}

func (s *Store) GetContest(ctx context.Context, id string) (models.Contest, error) {
	return scanContest(s.queryRow(ctx, `SELECT `+contestColumns+` FROM contest WHERE id = $1`, id))
}

// GetContestForShare reads a contest and, on postgres inside InTx, holds a
// share lock on its row until the transaction ends. Lock changes wait for it.
func (s *Store) GetContestForShare(ctx context.Context, id string) (models.Contest, error) {
	return scanContest(s.queryRow(ctx, `SELECT `+contestColumns+` FROM contest WHERE id = $1`+s.forShare(), id))
}

// GetActiveContest returns the contest with is_active set, or ErrNotFound.
func (s *Store) GetActiveContest(ctx context.Context) (models.Contest, error) {
	return scanContest(s.queryRow(ctx, `SELECT `+contestColumns+` FROM contest WHERE is_active = TRUE`))
}

// SetContestActive flips the active flag. Activating while another contest
// is active violates idx_contest_single_active and yields ErrConflict.
func (s *Store) SetContestActive(ctx context.Context, id string, active bool) error {
	return s.execOne(ctx, `UPDATE contest SET is_active = $1 WHERE id = $2`, active, id)
}

// SetContestLocked sets the lock flag. lockTime is cleared on unlock.
func (s *Store) SetContestLocked(ctx context.Context, id string, locked bool, lockTime *time.Time) error {
	return s.execOne(ctx, `
		UPDATE contest SET picks_locked = $1, picks_lock_time = $2 WHERE id = $3
	`, locked, lockTime, id)
}

// UpdateContestSettings writes the admin-editable settings of c.
func (s *Store) UpdateContestSettings(ctx context.Context, c models.Contest) error {
	var payoutLast decimal.NullDecimal
	if c.PayoutLast != nil {
		payoutLast = decimal.NewNullDecimal(*c.PayoutLast)
	}

	return s.execOne(ctx, `
		UPDATE contest
		SET entry_fee = $1, payout_first = $2, payout_second = $3, payout_third = $4,
		    payout_last = $5, venmo_username = $6, paypal_username = $7,
		    landing_message = $8, previous_winners = $9
		WHERE id = $10
	`, c.EntryFee, c.PayoutFirst, c.PayoutSecond, c.PayoutThird, payoutLast,
		c.VenmoUsername, c.PaypalUsername, c.LandingMessage, c.PreviousWinners, c.ID)
}
