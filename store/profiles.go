// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/propbowl/models"
)

const profileColumns = `id, phone, display_name, is_admin, has_paid_entry, has_received_payout,
	payout_place, payout_amount, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Phone, &p.DisplayName, &p.IsAdmin, &p.HasPaidEntry, &p.HasReceivedPayout,
		&p.PayoutPlace, &p.PayoutAmount, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, wrap(err)
}

// CreateProfile inserts a profile. A duplicate phone yields ErrConflict.
func (s *Store) CreateProfile(ctx context.Context, phone, displayName string, isAdmin bool) (models.Profile, error) {
	now := time.Now().UTC()
	p := models.Profile{
		ID:           newID(),
		Phone:        phone,
		DisplayName:  displayName,
		IsAdmin:      isAdmin,
		PayoutAmount: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := s.exec(ctx, `
		INSERT INTO profile (id, phone, display_name, is_admin, payout_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Phone, p.DisplayName, p.IsAdmin, p.PayoutAmount, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (s *Store) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	return scanProfile(s.queryRow(ctx, `SELECT `+profileColumns+` FROM profile WHERE id = $1`, id))
}

func (s *Store) GetProfileByPhone(ctx context.Context, phone string) (models.Profile, error) {
	return scanProfile(s.queryRow(ctx, `SELECT `+profileColumns+` FROM profile WHERE phone = $1`, phone))
}

// ListProfiles returns every profile ordered by display name.
func (s *Store) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.query(ctx, `SELECT `+profileColumns+` FROM profile ORDER BY display_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, wrap(rows.Err())
}

// DeleteProfile removes a profile; picks and chat messages cascade.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	return s.execOne(ctx, `DELETE FROM profile WHERE id = $1`, id)
}

func (s *Store) UpdateDisplayName(ctx context.Context, id, displayName string) error {
	return s.execOne(ctx, `
		UPDATE profile SET display_name = $1, updated_at = $2 WHERE id = $3
	`, displayName, time.Now().UTC(), id)
}

// Profile flags that SetProfileFlag may write
const (
	FlagAdmin = "is_admin"
	FlagPaid  = "has_paid_entry"
)

func (s *Store) SetProfileFlag(ctx context.Context, id, flag string, value bool) error {
	switch flag {
	case FlagAdmin, FlagPaid:
	default:
		return fmt.Errorf("unknown profile flag %q", flag)
	}
	return s.execOne(ctx, `
		UPDATE profile SET `+flag+` = $1, updated_at = $2 WHERE id = $3
	`, value, time.Now().UTC(), id)
}

// SetPayout records a disbursed payout on the profile.
func (s *Store) SetPayout(ctx context.Context, id, place string, amount decimal.Decimal) error {
	return s.execOne(ctx, `
		UPDATE profile
		SET has_received_payout = TRUE, payout_place = $1, payout_amount = $2, updated_at = $3
		WHERE id = $4
	`, place, amount, time.Now().UTC(), id)
}

func (s *Store) ClearPayout(ctx context.Context, id string) error {
	return s.execOne(ctx, `
		UPDATE profile
		SET has_received_payout = FALSE, payout_place = NULL, payout_amount = 0, updated_at = $1
		WHERE id = $2
	`, time.Now().UTC(), id)
}
