package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
	"github.com/ankurvarma7/online-marketplace/internal/protocol"
)

// SellerGateway terminates seller client connections and orchestrates
// account-store and catalog-store calls. It holds no per-request state.
type SellerGateway struct {
	accounts Caller
	catalog  Caller
	log      *zap.Logger
}

func NewSellerGateway(accounts, catalog Caller, log *zap.Logger) *SellerGateway {
	return &SellerGateway{accounts: accounts, catalog: catalog, log: log}
}

// Handle dispatches one seller request. Every downstream failure is caught
// and re-expressed as an error frame; nothing propagates past this boundary.
func (g *SellerGateway) Handle(ctx context.Context, req *protocol.Message) *protocol.Message {
	g.log.Debug("seller request", zap.String("op", string(req.Type)))
	switch req.Type {
	case protocol.SellerCreateAccount:
		return g.createAccount(ctx, req)
	case protocol.SellerLogin:
		return g.login(ctx, req)
	case protocol.SellerLogout:
		return g.logout(ctx, req)
	case protocol.SellerGetRating:
		return g.getRating(ctx, req)
	case protocol.SellerRegisterItem:
		return g.registerItem(ctx, req)
	case protocol.SellerChangeItemPrice:
		return g.changeItemPrice(ctx, req)
	case protocol.SellerUpdateUnits:
		return g.updateUnits(ctx, req)
	case protocol.SellerDisplayItems:
		return g.displayItems(ctx, req)
	default:
		return protocol.ErrorMessage(fmt.Sprintf("Invalid request: unknown operation %q", req.Type))
	}
}

func (g *SellerGateway) createAccount(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.CredentialsRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	down := protocol.MustMessage(protocol.AccountCreateSeller, p)
	resp, err := roundTrip(ctx, g.accounts, down, protocol.AccountSellerCreated,
		"Failed to create seller account")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	var created protocol.AccountCreatedPayload
	if err := resp.Decode(&created); err != nil {
		return protocol.ErrorMessage("Failed to create seller account")
	}
	return protocol.MustMessage(protocol.SellerAccountCreated, created)
}

func (g *SellerGateway) login(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.CredentialsRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}

	lookup := protocol.MustMessage(protocol.AccountGetSellerByName,
		protocol.GetByNameRequest{Name: p.Name})
	resp, err := roundTrip(ctx, g.accounts, lookup, protocol.AccountSeller, "Login failed")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	var sp protocol.SellerPayload
	if err := resp.Decode(&sp); err != nil {
		return protocol.ErrorMessage("Login failed")
	}
	if sp.Seller == nil {
		return protocol.ErrorMessage("Seller not found")
	}
	// Plaintext comparison; the store's internal format is out of scope.
	if sp.Seller.Password != p.Password {
		return protocol.ErrorMessage("Invalid password")
	}

	create := protocol.MustMessage(protocol.AccountCreateSession,
		protocol.CreateSessionRequest{UserID: sp.Seller.SellerID, UserType: domain.UserTypeSeller})
	resp, err = roundTrip(ctx, g.accounts, create, protocol.AccountSessionCreated,
		"Failed to create session")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	var sc protocol.SessionCreatedPayload
	if err := resp.Decode(&sc); err != nil {
		return protocol.ErrorMessage("Failed to create session")
	}
	return protocol.MustMessage(protocol.SellerLoggedIn,
		protocol.LoggedInPayload{SessionID: sc.SessionID})
}

func (g *SellerGateway) logout(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.SessionIDRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	down := protocol.MustMessage(protocol.AccountDeleteSession, p)
	if _, err := roundTrip(ctx, g.accounts, down, protocol.AccountSessionDeleted, "Logout failed"); err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return protocol.MustMessage(protocol.SellerLoggedOut, nil)
}

func (g *SellerGateway) getRating(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.SessionIDRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeSeller)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	down := protocol.MustMessage(protocol.AccountGetSeller,
		protocol.GetSellerRequest{SellerID: sess.UserID})
	resp, err := roundTrip(ctx, g.accounts, down, protocol.AccountSeller,
		"Failed to get seller rating")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	var sp protocol.SellerPayload
	if err := resp.Decode(&sp); err != nil {
		return protocol.ErrorMessage("Failed to get seller rating")
	}
	if sp.Seller == nil {
		return protocol.ErrorMessage("Seller not found")
	}
	return protocol.MustMessage(protocol.SellerRating,
		protocol.SellerRatingPayload{Feedback: sp.Seller.Feedback})
}

func (g *SellerGateway) registerItem(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.RegisterItemRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeSeller)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	item := domain.Item{
		ItemID:    uuid.Nil, // assigned by the catalog store
		SellerID:  sess.UserID,
		Name:      p.Name,
		Category:  p.Category,
		Keywords:  p.Keywords,
		Condition: p.Condition,
		SalePrice: p.SalePrice,
		Quantity:  p.Quantity,
	}
	down := protocol.MustMessage(protocol.CatalogCreateItem,
		protocol.CreateItemRequest{Item: item})
	resp, err := roundTrip(ctx, g.catalog, down, protocol.CatalogItemCreated,
		"Failed to register item")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	var created protocol.ItemCreatedPayload
	if err := resp.Decode(&created); err != nil {
		return protocol.ErrorMessage("Failed to register item")
	}
	return protocol.MustMessage(protocol.SellerItemRegistered,
		protocol.ItemRegisteredPayload{ItemID: created.ItemID})
}

func (g *SellerGateway) changeItemPrice(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.ChangeItemPriceRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeSeller)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	item, errMsg := g.fetchOwnItem(ctx, p.ItemID, sess.UserID)
	if errMsg != nil {
		return errMsg
	}
	item.SalePrice = p.NewPrice
	if errMsg := g.updateItem(ctx, *item, "Failed to update price"); errMsg != nil {
		return errMsg
	}
	return protocol.MustMessage(protocol.SellerPriceChanged, nil)
}

func (g *SellerGateway) updateUnits(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.UpdateUnitsRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeSeller)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	item, errMsg := g.fetchOwnItem(ctx, p.ItemID, sess.UserID)
	if errMsg != nil {
		return errMsg
	}
	item.Quantity = p.Quantity
	if errMsg := g.updateItem(ctx, *item, "Failed to update quantity"); errMsg != nil {
		return errMsg
	}
	return protocol.MustMessage(protocol.SellerUnitsUpdated, nil)
}

func (g *SellerGateway) displayItems(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.SessionIDRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeSeller)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	down := protocol.MustMessage(protocol.CatalogGetItemsBySeller,
		protocol.GetItemsBySellerRequest{SellerID: sess.UserID})
	resp, err := roundTrip(ctx, g.catalog, down, protocol.CatalogItems, "Failed to get items")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return &protocol.Message{Type: protocol.SellerItems, Data: resp.Data}
}

// fetchOwnItem reads the item and enforces seller ownership. This is the
// first half of the store's fetch-mutate-write sequence; there is no
// per-item lock, so concurrent writers race last-write-wins.
func (g *SellerGateway) fetchOwnItem(ctx context.Context, itemID, sellerID uuid.UUID) (*domain.Item, *protocol.Message) {
	down := protocol.MustMessage(protocol.CatalogGetItem,
		protocol.GetItemRequest{ItemID: itemID})
	resp, err := roundTrip(ctx, g.catalog, down, protocol.CatalogItem, "Failed to get item")
	if err != nil {
		return nil, protocol.ErrorMessage(err.Error())
	}
	var ip protocol.ItemPayload
	if err := resp.Decode(&ip); err != nil {
		return nil, protocol.ErrorMessage("Failed to get item")
	}
	if ip.Item == nil {
		return nil, protocol.ErrorMessage("Item not found")
	}
	if ip.Item.SellerID != sellerID {
		return nil, protocol.ErrorMessage("Not your item")
	}
	return ip.Item, nil
}

func (g *SellerGateway) updateItem(ctx context.Context, item domain.Item, fallback string) *protocol.Message {
	down := protocol.MustMessage(protocol.CatalogUpdateItem,
		protocol.UpdateItemRequest{Item: item})
	if _, err := roundTrip(ctx, g.catalog, down, protocol.CatalogItemUpdated, fallback); err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return nil
}

func invalidRequest(err error) *protocol.Message {
	return protocol.ErrorMessage(fmt.Sprintf("Invalid request: %v", err))
}
