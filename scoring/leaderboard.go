// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"sort"
	"strings"

	"github.com/danielhkuo/propbowl/models"
)

// ComputeLeaderboard ranks every profile by correct picks in a contest.
// Nothing is cached; callers re-invoke after any pick or grading change.
func (s *Service) ComputeLeaderboard(ctx context.Context, contestID string) ([]models.LeaderboardEntry, error) {
	if _, err := s.store.GetContest(ctx, contestID); err != nil {
		return nil, fromStore(err, "contest")
	}

	profiles, err := s.store.ListProfiles(ctx)
	if err != nil {
		return nil, fromStore(err, "profiles")
	}
	picks, err := s.store.ListScoredPicks(ctx, contestID)
	if err != nil {
		return nil, fromStore(err, "picks")
	}

	return RankLeaderboard(profiles, picks), nil
}

// RankLeaderboard aggregates picks per profile and returns a total order:
// correct count descending, then players with at least one pick ahead of
// those with none, then display name (case-insensitive), then user id.
// Ranks are sequential; ties never share a rank.
func RankLeaderboard(profiles []models.Profile, picks []models.ScoredPick) []models.LeaderboardEntry {
	index := make(map[string]int, len(profiles))
	board := make([]models.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		index[p.ID] = len(board)
		board = append(board, models.LeaderboardEntry{
			UserID:      p.ID,
			DisplayName: p.DisplayName,
			HasPaid:     p.HasPaidEntry,
		})
	}

	for _, pick := range picks {
		i, ok := index[pick.UserID]
		if !ok {
			continue
		}
		board[i].TotalPicks++
		if c := PickCorrect(pick); c != nil && *c {
			board[i].CorrectCount++
		}
	}

	sort.SliceStable(board, func(i, j int) bool {
		a, b := board[i], board[j]
		if a.CorrectCount != b.CorrectCount {
			return a.CorrectCount > b.CorrectCount
		}
		if (a.TotalPicks > 0) != (b.TotalPicks > 0) {
			return a.TotalPicks > 0
		}
		an, bn := strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName)
		if an != bn {
			return an < bn
		}
		return a.UserID < b.UserID
	})

	for i := range board {
		board[i].Rank = i + 1
	}
	return board
}
