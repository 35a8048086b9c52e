// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/danielhkuo/propbowl/feed"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/store"
)

// GradeResult records the correct option for a binary prop bet and
// re-derives correctness for every pick on it, in one transaction. Grading
// again with a different answer flips every pick. Returns the number of
// picks graded, zero when nobody picked.
func (s *Service) GradeResult(ctx context.Context, actorID, propBetID, answer string) (int, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return 0, err
	}

	option, ok := normalizeOption(answer)
	if !ok {
		return 0, ErrInvalidAnswerFormat
	}
	return s.setResult(ctx, propBetID, &option)
}

// ClearResult withdraws a posted result. Every pick on the bet goes back to
// unknown and players may change picks again while the contest is unlocked.
func (s *Service) ClearResult(ctx context.Context, actorID, propBetID string) (int, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return 0, err
	}
	return s.setResult(ctx, propBetID, nil)
}

func (s *Service) setResult(ctx context.Context, propBetID string, answer *string) (int, error) {
	var affected int
	var contestID string

	err := s.store.InTx(ctx, func(tx *store.Store) error {
		bet, err := tx.GetPropBet(ctx, propBetID)
		if err != nil {
			return fromStore(err, "prop bet")
		}
		contestID = bet.ContestID

		// Open-ended picks are graded one by one through GradePick
		if bet.IsOpenEnded {
			return ErrInvalidAnswerFormat
		}

		if err := tx.SetCorrectAnswer(ctx, propBetID, answer); err != nil {
			return fromStore(err, "prop bet")
		}
		affected, err = tx.RegradePicks(ctx, propBetID, answer)
		return fromStore(err, "picks")
	})
	if err != nil {
		return 0, err
	}

	s.notify(ctx, feed.TablePropBet, feed.ActionUpdate, contestID, propBetID)

	result := "cleared"
	if answer != nil {
		result = *answer
	}
	slog.Info("prop bet graded", "prop_bet_id", propBetID, "result", result, "affected_picks", affected)
	return affected, nil
}

// GradePick is the manual grading hook for open-ended prop bets. A nil
// correct resets the pick to unknown. Binary picks are graded only through
// GradeResult.
func (s *Service) GradePick(ctx context.Context, actorID, pickID string, correct *bool) (models.Pick, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Pick{}, err
	}

	var pick models.Pick
	var contestID string
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		p, err := tx.GetPick(ctx, pickID)
		if err != nil {
			return fromStore(err, "pick")
		}
		bet, err := tx.GetPropBet(ctx, p.PropBetID)
		if err != nil {
			return fromStore(err, "prop bet")
		}
		if !bet.IsOpenEnded {
			return ErrInvalidAnswerFormat
		}
		contestID = bet.ContestID

		if err := tx.SetPickCorrect(ctx, pickID, correct); err != nil {
			return fromStore(err, "pick")
		}
		p.IsCorrect = correct
		pick = p
		return nil
	})
	if err != nil {
		return models.Pick{}, err
	}

	s.notify(ctx, feed.TablePick, feed.ActionUpdate, contestID, pickID)
	slog.Info("pick graded manually", "pick_id", pickID, "correct", gradeLabel(correct))
	return pick, nil
}

func gradeLabel(correct *bool) string {
	if correct == nil {
		return "unknown"
	}
	return strconv.FormatBool(*correct)
}

// PickCorrect reports the correctness of a pick as of its prop bet's
// current result: nil while unknown. Binary picks are re-derived from the
// recorded result rather than trusting the stored flag.
func PickCorrect(p models.ScoredPick) *bool {
	if p.IsOpenEnded {
		return p.IsCorrect
	}
	if p.CorrectAnswer == nil {
		return nil
	}
	correct := p.SelectedOption != nil && *p.SelectedOption == *p.CorrectAnswer
	return &correct
}
