package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Binary answer tokens
const (
	OptionA = "A"
	OptionB = "B"
)

// Payout places recorded on a profile
const (
	PlaceFirst  = "first"
	PlaceSecond = "second"
	PlaceThird  = "third"
	PlaceLast   = "last"
)

// Chat message kinds
const (
	MessageText = "text"
	MessageGIF  = "gif"
)

// Prop bet move directions
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// Request types

type CreateProfileRequest struct {
	Phone       string `json:"phone" validate:"required"`
	DisplayName string `json:"display_name" validate:"required,max=20"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=20"`
}

type SetFlagRequest struct {
	Value bool `json:"value"`
}

type MarkPayoutRequest struct {
	Place  string          `json:"place" validate:"required,oneof=first second third last"`
	Amount decimal.Decimal `json:"amount"`
}

type CreateContestRequest struct {
	Name     string          `json:"name" validate:"required,max=120"`
	Year     int             `json:"year" validate:"required,gte=2000,lte=2100"`
	EntryFee decimal.Decimal `json:"entry_fee"`
}

type LockRequest struct {
	Locked  bool `json:"locked"`
	Confirm bool `json:"confirm"`
}

// Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	EntryFee        *decimal.Decimal `json:"entry_fee,omitempty"`
	PayoutFirst     *int             `json:"payout_first,omitempty" validate:"omitempty,gte=0,lte=100"`
	PayoutSecond    *int             `json:"payout_second,omitempty" validate:"omitempty,gte=0,lte=100"`
	PayoutThird     *int             `json:"payout_third,omitempty" validate:"omitempty,gte=0,lte=100"`
	PayoutLast      *decimal.Decimal `json:"payout_last,omitempty"`
	ClearPayoutLast bool             `json:"clear_payout_last,omitempty"`
	VenmoUsername   *string          `json:"venmo_username,omitempty" validate:"omitempty,max=64"`
	PaypalUsername  *string          `json:"paypal_username,omitempty" validate:"omitempty,max=64"`
	LandingMessage  *string          `json:"landing_message,omitempty" validate:"omitempty,max=4000"`
	PreviousWinners *string          `json:"previous_winners,omitempty" validate:"omitempty,max=4000"`
}

type PropBetRequest struct {
	Question     string `json:"question" validate:"required,max=500"`
	OptionA      string `json:"option_a" validate:"required_without=IsOpenEnded,max=120"`
	OptionB      string `json:"option_b" validate:"required_without=IsOpenEnded,max=120"`
	Category     string `json:"category" validate:"max=64"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
	SourceURL    string `json:"source_url" validate:"omitempty,url"`
	IsTiebreaker bool   `json:"is_tiebreaker"`
	IsOpenEnded  bool   `json:"is_open_ended"`
}

type MoveRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type ResultRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type SubmitPickRequest struct {
	Answer string `json:"answer"`
}

// Correct nil resets the pick to ungraded.
type GradePickRequest struct {
	Correct *bool `json:"correct"`
}

type PostMessageRequest struct {
	Kind    string `json:"kind" validate:"omitempty,oneof=text gif"`
	Message string `json:"message" validate:"required"`
}

type CreateInviteRequest struct {
	Phone       string `json:"phone" validate:"required"`
	DisplayName string `json:"display_name" validate:"required,max=20"`
}

// Response types

type GradeResponse struct {
	PropBetID     string  `json:"prop_bet_id"`
	CorrectAnswer *string `json:"correct_answer"`
	AffectedPicks int     `json:"affected_picks"`
}

type SimulateResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Profile   Profile   `json:"profile"`
}

type SettingsResponse struct {
	Contest Contest `json:"contest"`
	Warning string  `json:"warning,omitempty"`
}

// Domain types

type Profile struct {
	ID                string          `json:"id"`
	Phone             string          `json:"phone"`
	DisplayName       string          `json:"display_name"`
	IsAdmin           bool            `json:"is_admin"`
	HasPaidEntry      bool            `json:"has_paid_entry"`
	HasReceivedPayout bool            `json:"has_received_payout"`
	PayoutPlace       *string         `json:"payout_place"`
	PayoutAmount      decimal.Decimal `json:"payout_amount"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type Contest struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Year            int              `json:"year"`
	EntryFee        decimal.Decimal  `json:"entry_fee"`
	IsActive        bool             `json:"is_active"`
	PicksLocked     bool             `json:"picks_locked"`
	PicksLockTime   *time.Time       `json:"picks_lock_time"`
	PayoutFirst     int              `json:"payout_first"`
	PayoutSecond    int              `json:"payout_second"`
	PayoutThird     int              `json:"payout_third"`
	PayoutLast      *decimal.Decimal `json:"payout_last"`
	VenmoUsername   *string          `json:"venmo_username"`
	PaypalUsername  *string          `json:"paypal_username"`
	LandingMessage  *string          `json:"landing_message"`
	PreviousWinners *string          `json:"previous_winners"`
	CreatedAt       time.Time        `json:"created_at"`
}

// LastPlaceRefund is the configured refund, or the entry fee when unset.
func (c Contest) LastPlaceRefund() decimal.Decimal {
	if c.PayoutLast != nil {
		return *c.PayoutLast
	}
	return c.EntryFee
}

type PropBet struct {
	ID            string    `json:"id"`
	ContestID     string    `json:"contest_id"`
	Question      string    `json:"question"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	Category      *string   `json:"category"`
	CorrectAnswer *string   `json:"correct_answer"`
	ImageURL      *string   `json:"image_url"`
	SourceURL     *string   `json:"source_url"`
	IsTiebreaker  bool      `json:"is_tiebreaker"`
	IsOpenEnded   bool      `json:"is_open_ended"`
	SortOrder     int       `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p PropBet) Graded() bool {
	return p.CorrectAnswer != nil
}

type Pick struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	PropBetID      string    `json:"prop_bet_id"`
	SelectedOption *string   `json:"selected_option"`
	ValueResponse  *string   `json:"value_response"`
	IsCorrect      *bool     `json:"is_correct"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Answer returns whichever answer field is populated.
func (p Pick) Answer() string {
	if p.SelectedOption != nil {
		return *p.SelectedOption
	}
	if p.ValueResponse != nil {
		return *p.ValueResponse
	}
	return ""
}

// ScoredPick is a pick joined with the grading state of its prop bet.
type ScoredPick struct {
	UserID         string
	PropBetID      string
	SelectedOption *string
	IsCorrect      *bool
	IsOpenEnded    bool
	CorrectAnswer  *string
}

type ChatMessage struct {
	ID          string    `json:"id"`
	ContestID   string    `json:"contest_id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

type Invite struct {
	ID          string    `json:"id"`
	Phone       string    `json:"phone"`
	DisplayName string    `json:"display_name"`
	InvitedBy   *string   `json:"invited_by"`
	IsClaimed   bool      `json:"is_claimed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Standings types

type LeaderboardEntry struct {
	UserID       string `json:"user_id"`
	DisplayName  string `json:"display_name"`
	CorrectCount int    `json:"correct_picks"`
	TotalPicks   int    `json:"total_picks"`
	HasPaid      bool   `json:"has_paid_entry"`
	Rank         int    `json:"rank"` // 1-indexed, sequential
}

type Prize struct {
	Place       string          `json:"place"`
	UserID      string          `json:"user_id"`
	DisplayName string          `json:"display_name"`
	Correct     int             `json:"correct_picks"`
	Amount      decimal.Decimal `json:"amount"`
}

type PayoutLine struct {
	UserID            string           `json:"user_id"`
	DisplayName       string           `json:"display_name"`
	Rank              int              `json:"rank"`
	Place             *string          `json:"place"`
	Proposed          decimal.Decimal  `json:"proposed_amount"`
	HasReceivedPayout bool             `json:"has_received_payout"`
	RecordedPlace     *string          `json:"recorded_place"`
	RecordedAmount    decimal.Decimal  `json:"recorded_amount"`
}

type PayoutSummary struct {
	ContestID    string          `json:"contest_id"`
	PaidCount    int             `json:"paid_count"`
	EntryFee     decimal.Decimal `json:"entry_fee"`
	Pot          decimal.Decimal `json:"pot"`
	PercentTotal int             `json:"percent_total"`
	Warning      string          `json:"warning,omitempty"`
	First        *Prize          `json:"first"`
	Second       *Prize          `json:"second"`
	Third        *Prize          `json:"third"`
	Last         *Prize          `json:"last"`
	Breakdown    []PayoutLine    `json:"breakdown"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
