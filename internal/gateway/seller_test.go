package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
	"github.com/ankurvarma7/online-marketplace/internal/protocol"
)

func newSellerSUT(t *testing.T) (*SellerGateway, *mockCaller, *mockCaller) {
	t.Helper()
	accounts := newMockCaller()
	catalog := newMockCaller()
	return NewSellerGateway(accounts, catalog, zaptest.NewLogger(t)), accounts, catalog
}

func TestSellerLogin_HappyPath(t *testing.T) {
	sut, accounts, _ := newSellerSUT(t)
	sellerID := uuid.New()
	sessionID := uuid.New()

	accounts.respond(protocol.AccountGetSellerByName,
		protocol.MustMessage(protocol.AccountSeller, protocol.SellerPayload{
			Seller: &domain.Seller{SellerID: sellerID, Name: "alice", Password: "pw"},
		}))
	accounts.respond(protocol.AccountCreateSession,
		protocol.MustMessage(protocol.AccountSessionCreated,
			protocol.SessionCreatedPayload{SessionID: sessionID}))

	resp := sut.Handle(context.Background(), protocol.MustMessage(protocol.SellerLogin,
		protocol.CredentialsRequest{Name: "alice", Password: "pw"}))
	require.Equal(t, protocol.SellerLoggedIn, resp.Type)

	var p protocol.LoggedInPayload
	require.NoError(t, resp.Decode(&p))
	assert.Equal(t, sessionID, p.SessionID)
}

func TestSellerLogin_WrongPassword(t *testing.T) {
	sut, accounts, _ := newSellerSUT(t)
	accounts.respond(protocol.AccountGetSellerByName,
		protocol.MustMessage(protocol.AccountSeller, protocol.SellerPayload{
			Seller: &domain.Seller{SellerID: uuid.New(), Name: "alice", Password: "pw"},
		}))

	resp := sut.Handle(context.Background(), protocol.MustMessage(protocol.SellerLogin,
		protocol.CredentialsRequest{Name: "alice", Password: "wrong"}))
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Equal(t, "Invalid password", resp.ErrorText())
	// No session is created on a failed password check.
	assert.Empty(t, accounts.requestsOf(protocol.AccountCreateSession))
}

func TestSellerLogin_UnknownSeller(t *testing.T) {
	sut, accounts, _ := newSellerSUT(t)
	accounts.respond(protocol.AccountGetSellerByName,
		protocol.MustMessage(protocol.AccountSeller, protocol.SellerPayload{Seller: nil}))

	resp := sut.Handle(context.Background(), protocol.MustMessage(protocol.SellerLogin,
		protocol.CredentialsRequest{Name: "ghost", Password: "pw"}))
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Equal(t, "Seller not found", resp.ErrorText())
}

func TestRegisterItem_UsesSessionIdentityAsSeller(t *testing.T) {
	sut, accounts, catalog := newSellerSUT(t)
	sellerID := uuid.New()
	sessionID := withSession(accounts, sellerID, domain.UserTypeSeller)
	itemID := uuid.New()
	catalog.respond(protocol.CatalogCreateItem,
		protocol.MustMessage(protocol.CatalogItemCreated,
			protocol.ItemCreatedPayload{ItemID: itemID}))

	resp := sut.Handle(context.Background(), protocol.MustMessage(protocol.SellerRegisterItem,
		protocol.RegisterItemRequest{
			SessionID: sessionID,
			Name:      "Widget",
			Category:  3,
			Keywords:  []string{"red", "small"},
			Condition: domain.ConditionNew,
			SalePrice: 9.99,
			Quantity:  5,
		}))
	require.Equal(t, protocol.SellerItemRegistered, resp.Type)

	var p protocol.ItemRegisteredPayload
	require.NoError(t, resp.Decode(&p))
	assert.Equal(t, itemID, p.ItemID)

	creates := catalog.requestsOf(protocol.CatalogCreateItem)
	require.Len(t, creates, 1)
	var cr protocol.CreateItemRequest
	require.NoError(t, creates[0].Decode(&cr))
	assert.Equal(t, sellerID, cr.Item.SellerID)
	assert.Equal(t, uuid.Nil, cr.Item.ItemID) // identity comes from the store
}

func TestChangeItemPrice_NotYourItem(t *testing.T) {
	sut, accounts, catalog := newSellerSUT(t)
	sessionID := withSession(accounts, uuid.New(), domain.UserTypeSeller)

	// The item belongs to somebody else.
	catalog.respond(protocol.CatalogGetItem,
		protocol.MustMessage(protocol.CatalogItem, protocol.ItemPayload{
			Item: &domain.Item{ItemID: uuid.New(), SellerID: uuid.New(), SalePrice: 10},
		}))

	resp := sut.Handle(context.Background(), protocol.MustMessage(protocol.SellerChangeItemPrice,
		protocol.ChangeItemPriceRequest{SessionID: sessionID, ItemID: uuid.New(), NewPrice: 1}))
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Equal(t, "Not your item", resp.ErrorText())
	// The rejected change never reaches the store.
	assert.Empty(t, catalog.requestsOf(protocol.CatalogUpdateItem))
}

func TestChangeItemPrice_MutatesOnlyPrice(t *testing.T) {
	sut, accounts, catalog := newSellerSUT(t)
	sellerID := uuid.New()
	sessionID := withSession(accounts, sellerID, domain.UserTypeSeller)
	itemID := uuid.New()

	catalog.respond(protocol.CatalogGetItem,
		protocol.MustMessage(protocol.CatalogItem, protocol.ItemPayload{
			Item: &domain.Item{
				ItemID: itemID, SellerID: sellerID,
				Name: "Widget", SalePrice: 10, Quantity: 5,
			},
		}))
	catalog.respond(protocol.CatalogUpdateItem,
		protocol.MustMessage(protocol.CatalogItemUpdated, nil))

	resp := sut.Handle(context.Background(), protocol.MustMessage(protocol.SellerChangeItemPrice,
		protocol.ChangeItemPriceRequest{SessionID: sessionID, ItemID: itemID, NewPrice: 7.5}))
	require.Equal(t, protocol.SellerPriceChanged, resp.Type)

	updates := catalog.requestsOf(protocol.CatalogUpdateItem)
	require.Len(t, updates, 1)
	var ur protocol.UpdateItemRequest
	require.NoError(t, updates[0].Decode(&ur))
	assert.Equal(t, 7.5, ur.Item.SalePrice)
	assert.Equal(t, int32(5), ur.Item.Quantity)
	assert.Equal(t, "Widget", ur.Item.Name)
}

func TestUpdateUnits_ItemNotFound(t *testing.T) {
	sut, accounts, catalog := newSellerSUT(t)
	sessionID := withSession(accounts, uuid.New(), domain.UserTypeSeller)
	catalog.respond(protocol.CatalogGetItem,
		protocol.MustMessage(protocol.CatalogItem, protocol.ItemPayload{Item: nil}))

	resp := sut.Handle(context.Background(), protocol.MustMessage(protocol.SellerUpdateUnits,
		protocol.UpdateUnitsRequest{SessionID: sessionID, ItemID: uuid.New(), Quantity: 3}))
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Equal(t, "Item not found", resp.ErrorText())
}

func TestSellerAuthenticatedOp_RejectedWithoutValidSession(t *testing.T) {
	sut, accounts, catalog := newSellerSUT(t)
	accounts.respond(protocol.AccountGetSession,
		protocol.MustMessage(protocol.AccountSession, protocol.SessionPayload{Session: nil}))

	resp := sut.Handle(context.Background(), protocol.MustMessage(protocol.SellerDisplayItems,
		protocol.SessionIDRequest{SessionID: uuid.New()}))
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Equal(t, "Session not found", resp.ErrorText())
	assert.Empty(t, catalog.requests)
}

func TestSellerRegisterItem_CatalogUnreachableCollapsesToFallback(t *testing.T) {
	sut, accounts, catalog := newSellerSUT(t)
	sessionID := withSession(accounts, uuid.New(), domain.UserTypeSeller)
	catalog.fail(protocol.CatalogCreateItem, errors.New("connection refused"))

	resp := sut.Handle(context.Background(), protocol.MustMessage(protocol.SellerRegisterItem,
		protocol.RegisterItemRequest{SessionID: sessionID, Name: "x"}))
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Equal(t, "Failed to register item", resp.ErrorText())
}

func TestSellerHandle_UnknownOperation(t *testing.T) {
	sut, _, _ := newSellerSUT(t)
	resp := sut.Handle(context.Background(), &protocol.Message{Type: "bogus"})
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Contains(t, resp.ErrorText(), "Invalid request")
}
