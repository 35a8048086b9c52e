// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"time"

	"github.com/danielhkuo/propbowl/models"
)

const pickColumns = `id, user_id, prop_bet_id, selected_option, value_response, is_correct, created_at, updated_at`

func scanPick(row rowScanner) (models.Pick, error) {
	var p models.Pick
	err := row.Scan(
		&p.ID, &p.UserID, &p.PropBetID, &p.SelectedOption, &p.ValueResponse,
		&p.IsCorrect, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, wrap(err)
}

// UpsertPick creates or overwrites the pick for (userID, propBetID) in one
// statement. Exactly one of selected and value must be non-nil. The stored
// correctness survives only when the answer is unchanged.
func (s *Store) UpsertPick(ctx context.Context, userID, propBetID string, selected, value *string) (models.Pick, error) {
	now := time.Now().UTC()
	return scanPick(s.queryRow(ctx, `
		INSERT INTO pick (id, user_id, prop_bet_id, selected_option, value_response, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, prop_bet_id) DO UPDATE SET
			is_correct = CASE
				WHEN COALESCE(pick.selected_option, '') = COALESCE(excluded.selected_option, '')
				 AND COALESCE(pick.value_response, '') = COALESCE(excluded.value_response, '')
				THEN pick.is_correct
				ELSE NULL
			END,
			selected_option = excluded.selected_option,
			value_response = excluded.value_response,
			updated_at = excluded.updated_at
		RETURNING `+pickColumns+`
	`, newID(), userID, propBetID, selected, value, now, now))
}

func (s *Store) GetPick(ctx context.Context, id string) (models.Pick, error) {
	return scanPick(s.queryRow(ctx, `SELECT `+pickColumns+` FROM pick WHERE id = $1`, id))
}

// GetUserPick returns userID's pick on a prop bet, or ErrNotFound.
func (s *Store) GetUserPick(ctx context.Context, userID, propBetID string) (models.Pick, error) {
	return scanPick(s.queryRow(ctx, `
		SELECT `+pickColumns+` FROM pick WHERE user_id = $1 AND prop_bet_id = $2
	`, userID, propBetID))
}

// ListUserPicks returns a user's picks within one contest.
func (s *Store) ListUserPicks(ctx context.Context, userID, contestID string) ([]models.Pick, error) {
	rows, err := s.query(ctx, `
		SELECT p.id, p.user_id, p.prop_bet_id, p.selected_option, p.value_response,
		       p.is_correct, p.created_at, p.updated_at
		FROM pick p
		JOIN prop_bet b ON p.prop_bet_id = b.id
		WHERE p.user_id = $1 AND b.contest_id = $2
		ORDER BY b.sort_order, p.created_at
	`, userID, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	picks := []models.Pick{}
	for rows.Next() {
		p, err := scanPick(rows)
		if err != nil {
			return nil, err
		}
		picks = append(picks, p)
	}
	return picks, wrap(rows.Err())
}

// RegradePicks derives correctness for every pick on a binary prop bet from
// answer. A nil answer resets all of them to unknown. Returns the number of
// picks touched.
func (s *Store) RegradePicks(ctx context.Context, propBetID string, answer *string) (int, error) {
	var query string
	var args []any
	if answer == nil {
		query = `UPDATE pick SET is_correct = NULL WHERE prop_bet_id = $1`
		args = []any{propBetID}
	} else {
		query = `
			UPDATE pick
			SET is_correct = CASE WHEN selected_option = $1 THEN TRUE ELSE FALSE END
			WHERE prop_bet_id = $2
		`
		args = []any{*answer, propBetID}
	}

	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap(err)
	}
	return int(n), nil
}

// SetPickCorrect records a manual grade on a single pick.
func (s *Store) SetPickCorrect(ctx context.Context, id string, correct *bool) error {
	return s.execOne(ctx, `UPDATE pick SET is_correct = $1 WHERE id = $2`, correct, id)
}

// ListScoredPicks returns every pick in a contest joined with its prop
// bet's grading state.
func (s *Store) ListScoredPicks(ctx context.Context, contestID string) ([]models.ScoredPick, error) {
	rows, err := s.query(ctx, `
		SELECT p.user_id, p.prop_bet_id, p.selected_option, p.is_correct,
		       b.is_open_ended, b.correct_answer
		FROM pick p
		JOIN prop_bet b ON p.prop_bet_id = b.id
		WHERE b.contest_id = $1
	`, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	picks := []models.ScoredPick{}
	for rows.Next() {
		var p models.ScoredPick
		if err := rows.Scan(&p.UserID, &p.PropBetID, &p.SelectedOption, &p.IsCorrect,
			&p.IsOpenEnded, &p.CorrectAnswer); err != nil {
			return nil, wrap(err)
		}
		picks = append(picks, p)
	}
	return picks, wrap(rows.Err())
}
