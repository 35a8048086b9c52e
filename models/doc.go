// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON. validate tags are checked by
middleware.DecodeAndValidate before a handler sees the value:

  - CreateProfileRequest, UpdateProfileRequest, SetFlagRequest
  - CreateContestRequest, LockRequest, UpdateSettingsRequest
  - PropBetRequest, MoveRequest, ResultRequest
  - SubmitPickRequest, GradePickRequest
  - MarkPayoutRequest
  - PostMessageRequest, CreateInviteRequest

# Domain Types

  - Profile: player identity, admin and paid flags, recorded payout
  - Contest: entry fee, payout split, lock state
  - PropBet: question, options, result and display order
  - Pick: one answer per player per prop bet
  - ChatMessage, Invite

# Standings Types

Derived on every read, never stored:

  - LeaderboardEntry: correct and total picks with a 1-indexed rank
  - PayoutSummary: pot, podium prizes, last-place refund and a per-player
    breakdown against what was actually paid out

# Money

Amounts are shopspring/decimal values and serialize as JSON strings.

# Constants

Binary answers:

	OptionA = "A"
	OptionB = "B"

Payout places:

	PlaceFirst, PlaceSecond, PlaceThird, PlaceLast

Chat kinds:

	MessageText = "text"
	MessageGIF  = "gif"
*/
package models
