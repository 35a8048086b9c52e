// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"time"

	"github.com/danielhkuo/propbowl/models"
)

const propBetColumns = `id, contest_id, question, option_a, option_b, category, correct_answer,
	image_url, source_url, is_tiebreaker, is_open_ended, sort_order, created_at, updated_at`

func scanPropBet(row rowScanner) (models.PropBet, error) {
	var b models.PropBet
	err := row.Scan(
		&b.ID, &b.ContestID, &b.Question, &b.OptionA, &b.OptionB, &b.Category, &b.CorrectAnswer,
		&b.ImageURL, &b.SourceURL, &b.IsTiebreaker, &b.IsOpenEnded, &b.SortOrder,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, wrap(err)
}

// CreatePropBet appends a prop bet at the end of the contest's ordering.
func (s *Store) CreatePropBet(ctx context.Context, contestID string, req models.PropBetRequest) (models.PropBet, error) {
	var count int
	err := s.queryRow(ctx, `SELECT COUNT(*) FROM prop_bet WHERE contest_id = $1`, contestID).Scan(&count)
	if err != nil {
		return models.PropBet{}, wrap(err)
	}

	now := time.Now().UTC()
	b := models.PropBet{
		ID:           newID(),
		ContestID:    contestID,
		Question:     req.Question,
		OptionA:      req.OptionA,
		OptionB:      req.OptionB,
		Category:     nullString(req.Category),
		ImageURL:     nullString(req.ImageURL),
		SourceURL:    nullString(req.SourceURL),
		IsTiebreaker: req.IsTiebreaker,
		IsOpenEnded:  req.IsOpenEnded,
		SortOrder:    count,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.exec(ctx, `
		INSERT INTO prop_bet (id, contest_id, question, option_a, option_b, category, image_url,
		                      source_url, is_tiebreaker, is_open_ended, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, b.ID, b.ContestID, b.Question, b.OptionA, b.OptionB, b.Category, b.ImageURL,
		b.SourceURL, b.IsTiebreaker, b.IsOpenEnded, b.SortOrder, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return models.PropBet{}, err
	}
	return b, nil
}

func (s *Store) GetPropBet(ctx context.Context, id string) (models.PropBet, error) {
	return scanPropBet(s.queryRow(ctx, `SELECT `+propBetColumns+` FROM prop_bet WHERE id = $1`, id))
}

// ListPropBets returns a contest's prop bets in display order.
func (s *Store) ListPropBets(ctx context.Context, contestID string) ([]models.PropBet, error) {
	rows, err := s.query(ctx, `
		SELECT `+propBetColumns+`
		FROM prop_bet
		WHERE contest_id = $1
		ORDER BY sort_order, created_at, id
	`, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bets := []models.PropBet{}
	for rows.Next() {
		b, err := scanPropBet(rows)
		if err != nil {
			return nil, err
		}
		bets = append(bets, b)
	}
	return bets, wrap(rows.Err())
}

// UpdatePropBet rewrites the editable fields. The result and the sort
// position are owned by grading and MovePropBet.
func (s *Store) UpdatePropBet(ctx context.Context, id string, req models.PropBetRequest) error {
	return s.execOne(ctx, `
		UPDATE prop_bet
		SET question = $1, option_a = $2, option_b = $3, category = $4, image_url = $5,
		    source_url = $6, is_tiebreaker = $7, updated_at = $8
		WHERE id = $9
	`, req.Question, req.OptionA, req.OptionB, nullString(req.Category), nullString(req.ImageURL),
		nullString(req.SourceURL), req.IsTiebreaker, time.Now().UTC(), id)
}

// DeletePropBet removes a prop bet; its picks cascade.
func (s *Store) DeletePropBet(ctx context.Context, id string) error {
	return s.execOne(ctx, `DELETE FROM prop_bet WHERE id = $1`, id)
}

func (s *Store) SetSortOrder(ctx context.Context, id string, order int) error {
	return s.execOne(ctx, `UPDATE prop_bet SET sort_order = $1 WHERE id = $2`, order, id)
}

// SetCorrectAnswer records (or clears, with nil) a prop bet's result.
func (s *Store) SetCorrectAnswer(ctx context.Context, id string, answer *string) error {
	return s.execOne(ctx, `
		UPDATE prop_bet SET correct_answer = $1, updated_at = $2 WHERE id = $3
	`, answer, time.Now().UTC(), id)
}
