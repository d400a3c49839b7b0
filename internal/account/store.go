// Package account is the reference implementation of the account/session
// collaborator. The gateways depend only on its wire contract; this package
// exists so the system is runnable and testable end to end.
package account

import (
	"errors"

	"github.com/google/uuid"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
)

// ErrNameTaken is returned when an account name is already registered,
// regardless of role.
var ErrNameTaken = errors.New("account name already taken")

// Store defines the account and session storage operations.
type Store interface {
	// CreateBuyer registers a buyer account, failing on a duplicate name.
	CreateBuyer(name, password string) (uuid.UUID, error)

	// CreateSeller registers a seller account, failing on a duplicate name.
	CreateSeller(name, password string) (uuid.UUID, error)

	// BuyerByName returns the buyer, or nil when absent.
	BuyerByName(name string) *domain.Buyer

	// SellerByName returns the seller, or nil when absent.
	SellerByName(name string) *domain.Seller

	// Seller returns the seller by id, or nil when absent.
	Seller(sellerID uuid.UUID) *domain.Seller

	// CreateSession issues a fresh session for the account and role.
	CreateSession(userID uuid.UUID, userType domain.UserType) domain.Session

	// Session returns the session, or nil when absent. Expiry is the
	// caller's concern; an expired session is still returned.
	Session(sessionID uuid.UUID) *domain.Session

	// DeleteSession removes the session. Deleting an absent session is
	// not an error.
	DeleteSession(sessionID uuid.UUID)
}
