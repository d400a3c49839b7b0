package gateway

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
	"github.com/ankurvarma7/online-marketplace/internal/protocol"
)

// BuyerGateway terminates buyer client connections and orchestrates
// account-store and catalog-store calls. It holds no per-request state.
type BuyerGateway struct {
	accounts Caller
	catalog  Caller
	log      *zap.Logger
}

func NewBuyerGateway(accounts, catalog Caller, log *zap.Logger) *BuyerGateway {
	return &BuyerGateway{accounts: accounts, catalog: catalog, log: log}
}

// Handle dispatches one buyer request. Every downstream failure is caught
// and re-expressed as an error frame; nothing propagates past this boundary.
func (g *BuyerGateway) Handle(ctx context.Context, req *protocol.Message) *protocol.Message {
	g.log.Debug("buyer request", zap.String("op", string(req.Type)))
	switch req.Type {
	case protocol.BuyerCreateAccount:
		return g.createAccount(ctx, req)
	case protocol.BuyerLogin:
		return g.login(ctx, req)
	case protocol.BuyerLogout:
		return g.logout(ctx, req)
	case protocol.BuyerSearchItems:
		return g.searchItems(ctx, req)
	case protocol.BuyerGetItem:
		return g.getItem(ctx, req)
	case protocol.BuyerAddItemToCart:
		return g.addItemToCart(ctx, req)
	case protocol.BuyerRemoveItemFromCart:
		return g.removeItemFromCart(ctx, req)
	case protocol.BuyerSaveCart:
		return g.saveCart(ctx, req)
	case protocol.BuyerClearCart:
		return g.clearCart(ctx, req)
	case protocol.BuyerDisplayCart:
		return g.displayCart(ctx, req)
	case protocol.BuyerProvideFeedback:
		return g.provideFeedback(ctx, req)
	case protocol.BuyerGetSellerRating:
		return g.getSellerRating(ctx, req)
	case protocol.BuyerGetPurchases:
		return g.getPurchases(ctx, req)
	default:
		return protocol.ErrorMessage(fmt.Sprintf("Invalid request: unknown operation %q", req.Type))
	}
}

func (g *BuyerGateway) createAccount(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.CredentialsRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	down := protocol.MustMessage(protocol.AccountCreateBuyer, p)
	resp, err := roundTrip(ctx, g.accounts, down, protocol.AccountBuyerCreated,
		"Failed to create buyer account")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	var created protocol.AccountCreatedPayload
	if err := resp.Decode(&created); err != nil {
		return protocol.ErrorMessage("Failed to create buyer account")
	}
	return protocol.MustMessage(protocol.BuyerAccountCreated, created)
}

func (g *BuyerGateway) login(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.CredentialsRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}

	lookup := protocol.MustMessage(protocol.AccountGetBuyerByName,
		protocol.GetByNameRequest{Name: p.Name})
	resp, err := roundTrip(ctx, g.accounts, lookup, protocol.AccountBuyer, "Login failed")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	var bp protocol.BuyerPayload
	if err := resp.Decode(&bp); err != nil {
		return protocol.ErrorMessage("Login failed")
	}
	if bp.Buyer == nil {
		return protocol.ErrorMessage("Buyer not found")
	}
	// Plaintext comparison; the store's internal format is out of scope.
	if bp.Buyer.Password != p.Password {
		return protocol.ErrorMessage("Invalid password")
	}

	create := protocol.MustMessage(protocol.AccountCreateSession,
		protocol.CreateSessionRequest{UserID: bp.Buyer.BuyerID, UserType: domain.UserTypeBuyer})
	resp, err = roundTrip(ctx, g.accounts, create, protocol.AccountSessionCreated,
		"Failed to create session")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	var sc protocol.SessionCreatedPayload
	if err := resp.Decode(&sc); err != nil {
		return protocol.ErrorMessage("Failed to create session")
	}
	return protocol.MustMessage(protocol.BuyerLoggedIn,
		protocol.LoggedInPayload{SessionID: sc.SessionID})
}

func (g *BuyerGateway) logout(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.SessionIDRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	down := protocol.MustMessage(protocol.AccountDeleteSession, p)
	if _, err := roundTrip(ctx, g.accounts, down, protocol.AccountSessionDeleted, "Logout failed"); err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return protocol.MustMessage(protocol.BuyerLoggedOut, nil)
}

func (g *BuyerGateway) searchItems(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.BuyerSearchRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	if _, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeBuyer); err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	down := protocol.MustMessage(protocol.CatalogSearchItems,
		protocol.SearchItemsRequest{Category: p.Category, Keywords: p.Keywords})
	resp, err := roundTrip(ctx, g.catalog, down, protocol.CatalogItems, "Search failed")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return &protocol.Message{Type: protocol.BuyerItems, Data: resp.Data}
}

func (g *BuyerGateway) getItem(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.BuyerItemRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	if _, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeBuyer); err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	down := protocol.MustMessage(protocol.CatalogGetItem,
		protocol.GetItemRequest{ItemID: p.ItemID})
	resp, err := roundTrip(ctx, g.catalog, down, protocol.CatalogItem, "Failed to get item")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return &protocol.Message{Type: protocol.BuyerItem, Data: resp.Data}
}

func (g *BuyerGateway) addItemToCart(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.BuyerCartLineRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeBuyer)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	down := protocol.MustMessage(protocol.CatalogAddToCart, protocol.CartLineRequest{
		BuyerID:  sess.UserID,
		ItemID:   p.ItemID,
		Quantity: p.Quantity,
	})
	if _, err := roundTrip(ctx, g.catalog, down, protocol.CatalogCartSaved, "Failed to add to cart"); err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return protocol.MustMessage(protocol.BuyerItemAdded, nil)
}

func (g *BuyerGateway) removeItemFromCart(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.BuyerCartLineRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeBuyer)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	down := protocol.MustMessage(protocol.CatalogRemoveFromCart, protocol.CartLineRequest{
		BuyerID:  sess.UserID,
		ItemID:   p.ItemID,
		Quantity: p.Quantity,
	})
	if _, err := roundTrip(ctx, g.catalog, down, protocol.CatalogCartSaved, "Failed to remove from cart"); err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return protocol.MustMessage(protocol.BuyerItemRemoved, nil)
}

// saveCart is a deliberately non-atomic read-then-write of the current cart.
// The round trip writes the cart back unchanged; it is the extension point
// for a future commit step and must stay a two-call sequence.
func (g *BuyerGateway) saveCart(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.SessionIDRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeBuyer)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	get := protocol.MustMessage(protocol.CatalogGetCart,
		protocol.BuyerIDRequest{BuyerID: sess.UserID})
	resp, err := roundTrip(ctx, g.catalog, get, protocol.CatalogCart, "Failed to get cart")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	var cart protocol.CartPayload
	if err := resp.Decode(&cart); err != nil {
		return protocol.ErrorMessage("Failed to get cart")
	}

	save := protocol.MustMessage(protocol.CatalogSaveCart,
		protocol.SaveCartRequest{BuyerID: sess.UserID, Cart: cart.Items})
	if _, err := roundTrip(ctx, g.catalog, save, protocol.CatalogCartSaved, "Failed to save cart"); err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return protocol.MustMessage(protocol.BuyerCartSaved, nil)
}

func (g *BuyerGateway) clearCart(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.SessionIDRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeBuyer)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	down := protocol.MustMessage(protocol.CatalogClearCart,
		protocol.BuyerIDRequest{BuyerID: sess.UserID})
	if _, err := roundTrip(ctx, g.catalog, down, protocol.CatalogCartCleared, "Failed to clear cart"); err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return protocol.MustMessage(protocol.BuyerCartCleared, nil)
}

func (g *BuyerGateway) displayCart(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.SessionIDRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeBuyer)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	down := protocol.MustMessage(protocol.CatalogGetCart,
		protocol.BuyerIDRequest{BuyerID: sess.UserID})
	resp, err := roundTrip(ctx, g.catalog, down, protocol.CatalogCart, "Failed to get cart")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return &protocol.Message{Type: protocol.BuyerCart, Data: resp.Data}
}

// provideFeedback is a fetch-increment-write over the whole item record.
// Two concurrent calls on the same item race last-write-wins; counters are
// not merged.
func (g *BuyerGateway) provideFeedback(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.ProvideFeedbackRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	if _, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeBuyer); err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	get := protocol.MustMessage(protocol.CatalogGetItem,
		protocol.GetItemRequest{ItemID: p.ItemID})
	resp, err := roundTrip(ctx, g.catalog, get, protocol.CatalogItem, "Failed to get item")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	var ip protocol.ItemPayload
	if err := resp.Decode(&ip); err != nil {
		return protocol.ErrorMessage("Failed to get item")
	}
	if ip.Item == nil {
		return protocol.ErrorMessage("Item not found")
	}

	if p.ThumbsUp {
		ip.Item.Feedback.ThumbsUp++
	} else {
		ip.Item.Feedback.ThumbsDown++
	}

	update := protocol.MustMessage(protocol.CatalogUpdateItem,
		protocol.UpdateItemRequest{Item: *ip.Item})
	if _, err := roundTrip(ctx, g.catalog, update, protocol.CatalogItemUpdated, "Failed to update feedback"); err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return protocol.MustMessage(protocol.BuyerFeedbackRecorded, nil)
}

func (g *BuyerGateway) getSellerRating(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.BuyerSellerRatingRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	if _, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeBuyer); err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	down := protocol.MustMessage(protocol.AccountGetSeller,
		protocol.GetSellerRequest{SellerID: p.SellerID})
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
	return protocol.MustMessage(protocol.BuyerSellerRating,
		protocol.SellerRatingPayload{Feedback: sp.Seller.Feedback})
}

func (g *BuyerGateway) getPurchases(ctx context.Context, req *protocol.Message) *protocol.Message {
	var p protocol.SessionIDRequest
	if err := req.Decode(&p); err != nil {
		return invalidRequest(err)
	}
	sess, err := validateSession(ctx, g.accounts, p.SessionID, domain.UserTypeBuyer)
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}

	down := protocol.MustMessage(protocol.CatalogGetPurchaseHistory,
		protocol.BuyerIDRequest{BuyerID: sess.UserID})
	resp, err := roundTrip(ctx, g.catalog, down, protocol.CatalogPurchaseHistory,
		"Failed to get purchase history")
	if err != nil {
		return protocol.ErrorMessage(err.Error())
	}
	return &protocol.Message{Type: protocol.BuyerPurchases, Data: resp.Data}
}
