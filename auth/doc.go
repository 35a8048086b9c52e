// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies caller identity and normalises phone numbers.

# Bearer Tokens

Phone verification happens at an external identity provider, which signs an
HS256 JWT whose subject is the caller's profile ID. The server shares the
signing secret and only verifies:

	userID, err := auth.ParseToken(secret, token)

Tokens without an expiry, signed with another algorithm, or with an empty
subject are rejected with ErrInvalidToken. IssueToken mints the same shape
of token for tests and for bootstrapping the first administrator:

	token, err := auth.IssueToken(secret, profileID, 24*time.Hour)

# Phone Numbers

Profiles and invites are keyed by phone number. NormalizePhone strips
formatting so "(555) 123-4567" and "+1 555 123 4567" collide:

	phone, err := auth.NormalizePhone(input) // "5551234567"
*/
package auth
