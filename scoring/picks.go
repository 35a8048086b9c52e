// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/propbowl/feed"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/store"
)

const maxValueResponseLen = 200

// NormalizeAnswer validates answer against the prop bet's mode and returns
// the pick fields to store. Exactly one of the results is non-nil.
func NormalizeAnswer(bet models.PropBet, answer string) (selected, value *string, err error) {
	answer = strings.TrimSpace(answer)

	if bet.IsOpenEnded {
		if answer == "" || utf8.RuneCountInString(answer) > maxValueResponseLen {
			return nil, nil, ErrInvalidAnswerFormat
		}
		return nil, &answer, nil
	}

	option, ok := normalizeOption(answer)
	if !ok {
		return nil, nil, ErrInvalidAnswerFormat
	}
	return &option, nil, nil
}

// normalizeOption accepts a or b in either case.
func normalizeOption(answer string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(answer)) {
	case models.OptionA:
		return models.OptionA, true
	case models.OptionB:
		return models.OptionB, true
	}
	return "", false
}

// SubmitPick creates or replaces userID's pick on a prop bet. Checks run in
// order: contest locked, bet graded, answer format. A rejected submission
// writes nothing.
func (s *Service) SubmitPick(ctx context.Context, userID, propBetID, answer string) (models.Pick, error) {
	var pick models.Pick
	var contestID string

	err := s.store.InTx(ctx, func(tx *store.Store) error {
		if _, err := tx.GetProfile(ctx, userID); err != nil {
			return fromStore(err, "profile")
		}

		bet, err := tx.GetPropBet(ctx, propBetID)
		if err != nil {
			return fromStore(err, "prop bet")
		}
		contest, err := tx.GetContestForShare(ctx, bet.ContestID)
		if err != nil {
			return fromStore(err, "contest")
		}
		contestID = contest.ID

		if contest.PicksLocked {
			return ErrContestLocked
		}
		if bet.Graded() {
			return ErrAlreadyGraded
		}
		selected, value, err := NormalizeAnswer(bet, answer)
		if err != nil {
			return err
		}
		if bet.IsOpenEnded {
			if err := checkManualGrade(ctx, tx, userID, propBetID, value); err != nil {
				return err
			}
		}

		pick, err = tx.UpsertPick(ctx, userID, propBetID, selected, value)
		return fromStore(err, "pick")
	})
	if err != nil {
		slog.Info("pick rejected", "user_id", userID, "prop_bet_id", propBetID, "error", err)
		return models.Pick{}, err
	}

	action := feed.ActionUpdate
	if pick.CreatedAt.Equal(pick.UpdatedAt) {
		action = feed.ActionInsert
	}
	s.notify(ctx, feed.TablePick, action, contestID, pick.ID)

	slog.Info("pick submitted", "user_id", userID, "prop_bet_id", propBetID, "pick_id", pick.ID)
	return pick, nil
}

// checkManualGrade rejects changing an open-ended pick an admin has already
// graded. Resubmitting the same answer is allowed and keeps the grade.
func checkManualGrade(ctx context.Context, tx *store.Store, userID, propBetID string, value *string) error {
	existing, err := tx.GetUserPick(ctx, userID, propBetID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return fromStore(err, "pick")
	}
	if existing.IsCorrect != nil && existing.Answer() != *value {
		return ErrAlreadyGraded
	}
	return nil
}

// ListPicks returns the user's picks for a contest.
func (s *Service) ListPicks(ctx context.Context, userID, contestID string) ([]models.Pick, error) {
	if _, err := s.store.GetContest(ctx, contestID); err != nil {
		return nil, fromStore(err, "contest")
	}
	picks, err := s.store.ListUserPicks(ctx, userID, contestID)
	return picks, fromStore(err, "picks")
}
