// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the propbowl API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

Every route except the health check and root requires an
"Authorization: Bearer <jwt>" header signed with cfg.JWTSecret. Admin
checks happen in the scoring service, so a valid token for a non-admin
gets 403 from admin routes.

# Endpoints

Health:

	GET /health

Contest lifecycle (admin except GET):

	GET  /contests/active         - Current contest
	POST /contests                - Create contest
	POST /contests/{id}/activate  - Make the contest live
	POST /contests/{id}/deactivate - Archive
	POST /contests/{id}/lock      - Lock or unlock picks
	PUT  /contests/{id}/settings  - Fee, payout split, landing text

Prop bets (admin except GET):

	GET    /contests/{id}/prop-bets - List in display order
	POST   /contests/{id}/prop-bets - Append a prop bet
	PUT    /prop-bets/{id}          - Edit
	DELETE /prop-bets/{id}          - Delete with its picks
	POST   /prop-bets/{id}/move     - Swap with a neighbour
	POST   /prop-bets/{id}/result   - Post the result and grade picks
	DELETE /prop-bets/{id}/result   - Withdraw the result

Picks:

	POST /prop-bets/{id}/picks    - Submit or change a pick
	GET  /contests/{id}/picks/me  - Caller's picks
	PUT  /picks/{id}/grade        - Grade an open-ended pick (admin)

Standings:

	GET /contests/{id}/leaderboard
	GET /contests/{id}/payouts

Profiles (admin except /profiles/me):

	GET    /profiles
	POST   /profiles
	GET    /profiles/me
	PUT    /profiles/me
	DELETE /profiles/{id}
	POST   /profiles/{id}/paid
	POST   /profiles/{id}/admin
	POST   /profiles/{id}/payout
	DELETE /profiles/{id}/payout

Chat and invites:

	GET    /contests/{id}/chat
	POST   /contests/{id}/chat
	DELETE /chat/{id}
	GET    /invites (admin)
	POST   /invites (admin)
*/
package router
