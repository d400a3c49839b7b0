package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
	"github.com/ankurvarma7/online-marketplace/internal/protocol"
)

// Session validation failures, in precedence order: existence, expiry, role.
// The error text is the wire-visible message.
var (
	errSessionNotFound  = errors.New("Session not found")
	errSessionExpired   = errors.New("Session expired")
	errInvalidSession   = errors.New("Invalid session type")
	errValidationFailed = errors.New("Failed to validate session")
)

// validateSession fetches the session and checks expiry and role. An expired
// session gets a best-effort delete whose failure is ignored; the next
// validation would re-detect expiry anyway. Validation runs independently
// for every authenticated request, with no caching.
func validateSession(ctx context.Context, accounts Caller, sessionID uuid.UUID, expected domain.UserType) (*domain.Session, error) {
	req := protocol.MustMessage(protocol.AccountGetSession,
		protocol.SessionIDRequest{SessionID: sessionID})
	resp, err := roundTrip(ctx, accounts, req, protocol.AccountSession, errValidationFailed.Error())
	if err != nil {
		return nil, err
	}

	var p protocol.SessionPayload
	if err := resp.Decode(&p); err != nil {
		return nil, errValidationFailed
	}
	if p.Session == nil {
		return nil, errSessionNotFound
	}
	if p.Session.Expiration < time.Now().Unix() {
		del := protocol.MustMessage(protocol.AccountDeleteSession,
			protocol.SessionIDRequest{SessionID: sessionID})
		_, _ = accounts.Call(ctx, del)
		return nil, errSessionExpired
	}
	if p.Session.UserType != expected {
		return nil, errInvalidSession
	}
	return p.Session, nil
}
