package protocol

import (
	"github.com/google/uuid"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
)

// Account/session store request variants.
const (
	AccountCreateBuyer     MessageType = "create_buyer"
	AccountCreateSeller    MessageType = "create_seller"
	AccountGetBuyerByName  MessageType = "get_buyer_by_name"
	AccountGetSellerByName MessageType = "get_seller_by_name"
	AccountGetSeller       MessageType = "get_seller"
	AccountCreateSession   MessageType = "create_session"
	AccountGetSession      MessageType = "get_session"
	AccountDeleteSession   MessageType = "delete_session"
)

// Account/session store response variants.
const (
	AccountBuyerCreated   MessageType = "buyer_created"
	AccountSellerCreated  MessageType = "seller_created"
	AccountBuyer          MessageType = "buyer"
	AccountSeller         MessageType = "seller"
	AccountSessionCreated MessageType = "session_created"
	AccountSession        MessageType = "session"
	AccountSessionDeleted MessageType = "session_deleted"
)

// CredentialsRequest is shared by account creation and login on every
// surface that takes a name/password pair.
type CredentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type GetByNameRequest struct {
	Name string `json:"name"`
}

type GetSellerRequest struct {
	SellerID uuid.UUID `json:"seller_id"`
}

type CreateSessionRequest struct {
	UserID   uuid.UUID       `json:"user_id"`
	UserType domain.UserType `json:"user_type"`
}

type SessionIDRequest struct {
	SessionID uuid.UUID `json:"session_id"`
}

type AccountCreatedPayload struct {
	AccountID uuid.UUID `json:"account_id"`
}

// BuyerPayload carries a lookup result; Buyer is null when absent.
type BuyerPayload struct {
	Buyer *domain.Buyer `json:"buyer"`
}

// SellerPayload carries a lookup result; Seller is null when absent.
type SellerPayload struct {
	Seller *domain.Seller `json:"seller"`
}

type SessionCreatedPayload struct {
	SessionID  uuid.UUID `json:"session_id"`
	Expiration int64     `json:"expiration"`
}

// SessionPayload carries a lookup result; Session is null when absent.
type SessionPayload struct {
	Session *domain.Session `json:"session"`
}
