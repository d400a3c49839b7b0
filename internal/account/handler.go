package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/ankurvarma7/online-marketplace/internal/protocol"
)

// Handler translates account/session frames into store calls.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Handle(_ context.Context, req *protocol.Message) *protocol.Message {
	switch req.Type {
	case protocol.AccountCreateBuyer:
		var p protocol.CredentialsRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		buyerID, err := h.store.CreateBuyer(p.Name, p.Password)
		if err != nil {
			if errors.Is(err, ErrNameTaken) {
				return protocol.ErrorMessage("Account already exists")
			}
			return protocol.ErrorMessage(err.Error())
		}
		return protocol.MustMessage(protocol.AccountBuyerCreated,
			protocol.AccountCreatedPayload{AccountID: buyerID})

	case protocol.AccountCreateSeller:
		var p protocol.CredentialsRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		sellerID, err := h.store.CreateSeller(p.Name, p.Password)
		if err != nil {
			if errors.Is(err, ErrNameTaken) {
				return protocol.ErrorMessage("Account already exists")
			}
			return protocol.ErrorMessage(err.Error())
		}
		return protocol.MustMessage(protocol.AccountSellerCreated,
			protocol.AccountCreatedPayload{AccountID: sellerID})

	case protocol.AccountGetBuyerByName:
		var p protocol.GetByNameRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		return protocol.MustMessage(protocol.AccountBuyer,
			protocol.BuyerPayload{Buyer: h.store.BuyerByName(p.Name)})

	case protocol.AccountGetSellerByName:
		var p protocol.GetByNameRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		return protocol.MustMessage(protocol.AccountSeller,
			protocol.SellerPayload{Seller: h.store.SellerByName(p.Name)})

	case protocol.AccountGetSeller:
		var p protocol.GetSellerRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		return protocol.MustMessage(protocol.AccountSeller,
			protocol.SellerPayload{Seller: h.store.Seller(p.SellerID)})

	case protocol.AccountCreateSession:
		var p protocol.CreateSessionRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		sess := h.store.CreateSession(p.UserID, p.UserType)
		return protocol.MustMessage(protocol.AccountSessionCreated,
			protocol.SessionCreatedPayload{SessionID: sess.SessionID, Expiration: sess.Expiration})

	case protocol.AccountGetSession:
		var p protocol.SessionIDRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		return protocol.MustMessage(protocol.AccountSession,
			protocol.SessionPayload{Session: h.store.Session(p.SessionID)})

	case protocol.AccountDeleteSession:
		var p protocol.SessionIDRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		h.store.DeleteSession(p.SessionID)
		return protocol.MustMessage(protocol.AccountSessionDeleted, nil)

	default:
		return protocol.ErrorMessage(fmt.Sprintf("Invalid request: unknown operation %q", req.Type))
	}
}

func invalidRequest(err error) *protocol.Message {
	return protocol.ErrorMessage(fmt.Sprintf("Invalid request: %v", err))
}
