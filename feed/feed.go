// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Tables that emit change events
const (
	TablePick    = "pick"
	TablePropBet = "prop_bet"
	TableContest = "contest"
	TableChat    = "chat_message"
	TableProfile = "profile"
)

// Actions
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event describes one row change scoped to a contest. ContestID is empty
// for profile changes.
type Event struct {
	Table     string    `json:"table"`
	Action    string    `json:"action"`
	ContestID string    `json:"contest_id,omitempty"`
	ID        string    `json:"id"`
	At        time.Time `json:"at"`
}

// Publisher fans change events out to whoever refreshes standings.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Notify publishes ev and logs a failure. Change notification never fails
// the mutation that caused it.
func Notify(ctx context.Context, p Publisher, ev Event) {
	if p == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := p.Publish(ctx, ev); err != nil {
		slog.Warn("failed to publish change event",
			"error", err, "table", ev.Table, "action", ev.Action, "id", ev.ID)
	}
}

// LogPublisher writes events to the structured log.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, ev Event) error {
	slog.Info("change event",
		"table", ev.Table,
		"action", ev.Action,
		"contest_id", ev.ContestID,
		"id", ev.ID,
	)
	return nil
}

// Recorder keeps published events in memory and hands them to subscribers.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	subs   []chan Event
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, ev)
	for _, ch := range r.subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; it re-pulls standings anyway
		}
	}
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Subscribe returns a buffered channel receiving future events. The
// channel is closed when ctx is done.
func (r *Recorder) Subscribe(ctx context.Context, buffer int) <-chan Event {
	ch := make(chan Event, buffer)

	r.mu.Lock()
	r.subs = append(r.subs, ch)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, sub := range r.subs {
			if sub == ch {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				break
			}
		}
		close(ch)
	}()

	return ch
}
