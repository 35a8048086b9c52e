// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the propbowl API.

# Handler Types

Each handler is a struct wrapping the scoring service:

  - ContestHandler: Contest lifecycle and settings
  - PropBetHandler: Prop bet editing, ordering and results
  - PickHandler: Pick submission and manual grading
  - StandingsHandler: Leaderboard and payout views
  - ProfileHandler: Roster, flags and payout records
  - ChatHandler: Contest chat
  - InviteHandler: Pending sign-ups

Handlers are created via constructor functions:

	pickHandler := handlers.NewPickHandler(svc)

# Identity

Handlers read the caller's profile ID from the request context, where
middleware.RequireUser puts it. They never look at headers themselves.

# Errors

Service errors map onto status codes in one place (writeError):

	ErrContestLocked, ErrAlreadyGraded, ErrContestActive, ErrConflict -> 409
	ErrInvalidAnswerFormat, ErrInvalidInput                            -> 400
	ErrNotFound, ErrNoActiveContest                                     -> 404
	ErrUnauthorized                                                     -> 403
	ErrStoreUnavailable                                                 -> 503

Anything else is a 500 with a generic message.

# Game Day Flow

	POST /contests/{id}/prop-bets  -> PropBetHandler.Create
	POST /prop-bets/{id}/picks     -> PickHandler.Submit
	POST /contests/{id}/lock       -> ContestHandler.Lock
	POST /prop-bets/{id}/result    -> PropBetHandler.SetResult
	GET  /contests/{id}/leaderboard -> StandingsHandler.Leaderboard
	GET  /contests/{id}/payouts    -> StandingsHandler.Payouts
	POST /profiles/{id}/payout     -> ProfileHandler.MarkPayout
*/
package handlers
