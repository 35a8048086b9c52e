// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"errors"

	"github.com/danielhkuo/propbowl/feed"
	"github.com/danielhkuo/propbowl/store"
)

// Service holds no mutable state of its own; every call reads the store,
// computes, and writes back.
type Service struct {
	store *store.Store
	feed  feed.Publisher
}

func NewService(st *store.Store, pub feed.Publisher) *Service {
	if pub == nil {
		pub = feed.LogPublisher{}
	}
	return &Service{store: st, feed: pub}
}

// requireAdmin rejects callers without the admin flag. Unknown callers are
// unauthorized, not missing.
func (s *Service) requireAdmin(ctx context.Context, actorID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	p, err := s.store.GetProfile(ctx, actorID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUnauthorized
	}
	if err != nil {
		return fromStore(err, "profile")
	}
	if !p.IsAdmin {
		return ErrUnauthorized
	}
	return nil
}

func (s *Service) notify(ctx context.Context, table, action, contestID, id string) {
	feed.Notify(ctx, s.feed, feed.Event{
		Table:     table,
		Action:    action,
		ContestID: contestID,
		ID:        id,
	})
}
