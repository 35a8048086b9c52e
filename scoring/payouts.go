// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/propbowl/feed"
	"github.com/danielhkuo/propbowl/models"
)

// ComputePayouts proposes the prize distribution from current standings.
// It never records anything; disbursement is marked through MarkPayout.
func (s *Service) ComputePayouts(ctx context.Context, contestID string) (models.PayoutSummary, error) {
	contest, err := s.store.GetContest(ctx, contestID)
	if err != nil {
		return models.PayoutSummary{}, fromStore(err, "contest")
	}

	profiles, err := s.store.ListProfiles(ctx)
	if err != nil {
		return models.PayoutSummary{}, fromStore(err, "profiles")
	}
	picks, err := s.store.ListScoredPicks(ctx, contestID)
	if err != nil {
		return models.PayoutSummary{}, fromStore(err, "picks")
	}

	byID := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	return CalculatePayouts(contest, RankLeaderboard(profiles, picks), byID), nil
}

// CalculatePayouts splits the pot over the paid entries of a ranked
// leaderboard. Podium amounts are truncated to whole cents. The last-place
// refund only applies with more than three paid entries so it never lands
// on a podium finisher. profiles supplies the recorded payout fields for
// the breakdown and may be nil.
func CalculatePayouts(contest models.Contest, board []models.LeaderboardEntry, profiles map[string]models.Profile) models.PayoutSummary {
	paid := make([]models.LeaderboardEntry, 0, len(board))
	for _, e := range board {
		if e.HasPaid {
			paid = append(paid, e)
		}
	}

	pot := contest.EntryFee.Mul(decimal.NewFromInt(int64(len(paid))))
	summary := models.PayoutSummary{
		ContestID:    contest.ID,
		PaidCount:    len(paid),
		EntryFee:     contest.EntryFee,
		Pot:          pot,
		PercentTotal: PercentTotal(contest),
		Warning:      PercentWarning(contest),
		Breakdown:    make([]models.PayoutLine, 0, len(paid)),
	}

	podium := []struct {
		place string
		pct   int
		slot  **models.Prize
	}{
		{models.PlaceFirst, contest.PayoutFirst, &summary.First},
		{models.PlaceSecond, contest.PayoutSecond, &summary.Second},
		{models.PlaceThird, contest.PayoutThird, &summary.Third},
	}

	places := make(map[string]*models.Prize, 4)
	for i, p := range podium {
		if i >= len(paid) {
			break
		}
		prize := newPrize(p.place, paid[i], share(pot, p.pct))
		*p.slot = prize
		places[paid[i].UserID] = prize
	}

	if len(paid) > 3 {
		loser := paid[len(paid)-1]
		summary.Last = newPrize(models.PlaceLast, loser, contest.LastPlaceRefund())
		places[loser.UserID] = summary.Last
	}

	for _, e := range paid {
		line := models.PayoutLine{
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			Rank:        e.Rank,
			Proposed:    decimal.Zero,
		}
		if prize, ok := places[e.UserID]; ok {
			place := prize.Place
			line.Place = &place
			line.Proposed = prize.Amount
		}
		if p, ok := profiles[e.UserID]; ok {
			line.HasReceivedPayout = p.HasReceivedPayout
			line.RecordedPlace = p.PayoutPlace
			line.RecordedAmount = p.PayoutAmount
		}
		summary.Breakdown = append(summary.Breakdown, line)
	}

	return summary
}

func newPrize(place string, e models.LeaderboardEntry, amount decimal.Decimal) *models.Prize {
	return &models.Prize{
		Place:       place,
		UserID:      e.UserID,
		DisplayName: e.DisplayName,
		Correct:     e.CorrectCount,
		Amount:      amount,
	}
}

// share returns pct percent of pot, truncated to cents.
func share(pot decimal.Decimal, pct int) decimal.Decimal {
	return pot.Mul(decimal.NewFromInt(int64(pct))).Shift(-2).Truncate(2)
}

func PercentTotal(c models.Contest) int {
	return c.PayoutFirst + c.PayoutSecond + c.PayoutThird
}

// PercentWarning is empty when the podium percentages add up to 100.
func PercentWarning(c models.Contest) string {
	total := PercentTotal(c)
	if total == 100 {
		return ""
	}
	return fmt.Sprintf("Payout percentages total %d%% (should be 100%%)", total)
}

// MarkPayout records that userID was paid amount for place. The amounts the
// calculator proposes are advisory; whatever the admin enters is stored.
func (s *Service) MarkPayout(ctx context.Context, actorID, userID, place string, amount decimal.Decimal) (models.Profile, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Profile{}, err
	}

	switch place {
	case models.PlaceFirst, models.PlaceSecond, models.PlaceThird, models.PlaceLast:
	default:
		return models.Profile{}, invalid("unknown payout place %q", place)
	}
	if amount.IsNegative() {
		return models.Profile{}, invalid("payout amount must not be negative")
	}

	if err := s.store.SetPayout(ctx, userID, place, amount.Round(2)); err != nil {
		return models.Profile{}, fromStore(err, "profile")
	}
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, fromStore(err, "profile")
	}

	s.notify(ctx, feed.TableProfile, feed.ActionUpdate, "", userID)
	slog.Info("payout recorded", "user_id", userID, "place", place, "amount", amount.StringFixed(2), "by", actorID)
	return profile, nil
}

// ClearPayout undoes MarkPayout.
func (s *Service) ClearPayout(ctx context.Context, actorID, userID string) (models.Profile, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Profile{}, err
	}

	if err := s.store.ClearPayout(ctx, userID); err != nil {
		return models.Profile{}, fromStore(err, "profile")
	}
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, fromStore(err, "profile")
	}

	s.notify(ctx, feed.TableProfile, feed.ActionUpdate, "", userID)
	slog.Info("payout cleared", "user_id", userID, "by", actorID)
	return profile, nil
}
