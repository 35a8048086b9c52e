// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielhkuo/propbowl/feed"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/store"
)

// ListPropBets returns a contest's prop bets in display order.
func (s *Service) ListPropBets(ctx context.Context, contestID string) ([]models.PropBet, error) {
	if _, err := s.store.GetContest(ctx, contestID); err != nil {
		return nil, fromStore(err, "contest")
	}
	bets, err := s.store.ListPropBets(ctx, contestID)
	return bets, fromStore(err, "prop bets")
}

func normalizePropBet(req models.PropBetRequest, openEnded bool) (models.PropBetRequest, error) {
	req.Question = strings.TrimSpace(req.Question)
	req.OptionA = strings.TrimSpace(req.OptionA)
	req.OptionB = strings.TrimSpace(req.OptionB)
	req.Category = strings.TrimSpace(req.Category)
	req.IsOpenEnded = openEnded

	if req.Question == "" {
		return req, invalid("question is required")
	}
	if !openEnded && (req.OptionA == "" || req.OptionB == "") {
		return req, invalid("binary prop bets need both option labels")
	}
	return req, nil
}

// CreatePropBet appends a prop bet to the end of the contest.
func (s *Service) CreatePropBet(ctx context.Context, actorID, contestID string, req models.PropBetRequest) (models.PropBet, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.PropBet{}, err
	}
	req, err := normalizePropBet(req, req.IsOpenEnded)
	if err != nil {
		return models.PropBet{}, err
	}

	var bet models.PropBet
	err = s.store.InTx(ctx, func(tx *store.Store) error {
		if _, err := tx.GetContest(ctx, contestID); err != nil {
			return fromStore(err, "contest")
		}
		b, err := tx.CreatePropBet(ctx, contestID, req)
		if err != nil {
			return fromStore(err, "prop bet")
		}
		bet = b
		return nil
	})
	if err != nil {
		return models.PropBet{}, err
	}

	s.notify(ctx, feed.TablePropBet, feed.ActionInsert, contestID, bet.ID)
	slog.Info("prop bet created", "contest_id", contestID, "prop_bet_id", bet.ID, "open_ended", bet.IsOpenEnded)
	return bet, nil
}

// UpdatePropBet edits a prop bet's text and flags. The answer mode is fixed
// at creation so existing picks stay well formed.
func (s *Service) UpdatePropBet(ctx context.Context, actorID, propBetID string, req models.PropBetRequest) (models.PropBet, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.PropBet{}, err
	}

	var bet models.PropBet
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		existing, err := tx.GetPropBet(ctx, propBetID)
		if err != nil {
			return fromStore(err, "prop bet")
		}
		req, err := normalizePropBet(req, existing.IsOpenEnded)
		if err != nil {
			return err
		}
		if err := tx.UpdatePropBet(ctx, propBetID, req); err != nil {
			return fromStore(err, "prop bet")
		}
		bet, err = tx.GetPropBet(ctx, propBetID)
		return fromStore(err, "prop bet")
	})
	if err != nil {
		return models.PropBet{}, err
	}

	s.notify(ctx, feed.TablePropBet, feed.ActionUpdate, bet.ContestID, bet.ID)
	return bet, nil
}

// DeletePropBet removes a prop bet and every pick on it, then closes the
// gap in the ordering.
func (s *Service) DeletePropBet(ctx context.Context, actorID, propBetID string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	var contestID string
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		bet, err := tx.GetPropBet(ctx, propBetID)
		if err != nil {
			return fromStore(err, "prop bet")
		}
		contestID = bet.ContestID

		if err := tx.DeletePropBet(ctx, propBetID); err != nil {
			return fromStore(err, "prop bet")
		}
		remaining, err := tx.ListPropBets(ctx, contestID)
		if err != nil {
			return fromStore(err, "prop bets")
		}
		return renumber(ctx, tx, remaining)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, feed.TablePropBet, feed.ActionDelete, contestID, propBetID)
	slog.Info("prop bet deleted", "contest_id", contestID, "prop_bet_id", propBetID)
	return nil
}

// MovePropBet swaps a prop bet with its neighbour. Moving past either end
// leaves the order unchanged. Returns the contest's bets in the new order.
func (s *Service) MovePropBet(ctx context.Context, actorID, propBetID, direction string) ([]models.PropBet, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	var step int
	switch direction {
	case models.MoveUp:
		step = -1
	case models.MoveDown:
		step = 1
	default:
		return nil, invalid("direction must be %q or %q", models.MoveUp, models.MoveDown)
	}

	var bets []models.PropBet
	var contestID string
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		bet, err := tx.GetPropBet(ctx, propBetID)
		if err != nil {
			return fromStore(err, "prop bet")
		}
		contestID = bet.ContestID

		bets, err = tx.ListPropBets(ctx, contestID)
		if err != nil {
			return fromStore(err, "prop bets")
		}

		i := indexOfBet(bets, propBetID)
		j := i + step
		if i < 0 || j < 0 || j >= len(bets) {
			return nil
		}
		bets[i], bets[j] = bets[j], bets[i]
		return renumber(ctx, tx, bets)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, feed.TablePropBet, feed.ActionUpdate, contestID, propBetID)
	return bets, nil
}

func indexOfBet(bets []models.PropBet, id string) int {
	for i, b := range bets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// renumber writes sort_order 0..n-1 following the slice order.
func renumber(ctx context.Context, tx *store.Store, bets []models.PropBet) error {
	for i := range bets {
		if bets[i].SortOrder == i {
			continue
		}
		if err := tx.SetSortOrder(ctx, bets[i].ID, i); err != nil {
			return fromStore(err, "prop bet")
		}
		bets[i].SortOrder = i
	}
	return nil
}
