package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ankurvarma7/online-marketplace/internal/account"
	"github.com/ankurvarma7/online-marketplace/internal/catalog"
	"github.com/ankurvarma7/online-marketplace/internal/domain"
	"github.com/ankurvarma7/online-marketplace/internal/protocol"
	"github.com/ankurvarma7/online-marketplace/internal/transport"
)

// harness boots all four services on ephemeral loopback ports and exposes
// the two gateway addresses clients talk to.
type harness struct {
	accountAddr string
	sellerAddr  string
	buyerAddr   string
}

func startService(t *testing.T, name string, h transport.Handler) string {
	t.Helper()
	srv := transport.NewServer(name, zaptest.NewLogger(t), h)
	require.NoError(t, srv.Listen("127.0.0.1:0"))
	go func() { _ = srv.Serve(context.Background()) }()
	t.Cleanup(func() { _ = srv.Close() })
	return srv.Addr()
}

func newHarness(t *testing.T, sessionTTL time.Duration) *harness {
	t.Helper()
	log := zaptest.NewLogger(t)

	accountAddr := startService(t, "accountd",
		account.NewHandler(account.NewMemoryStore(sessionTTL)).Handle)
	catalogAddr := startService(t, "catalogd",
		catalog.NewHandler(catalog.NewMemoryStore()).Handle)

	accounts := NewDownstream(accountAddr)
	cat := NewDownstream(catalogAddr)
	sellerAddr := startService(t, "sellerd", NewSellerGateway(accounts, cat, log).Handle)
	buyerAddr := startService(t, "buyerd", NewBuyerGateway(accounts, cat, log).Handle)

	return &harness{accountAddr: accountAddr, sellerAddr: sellerAddr, buyerAddr: buyerAddr}
}

func (h *harness) call(t *testing.T, addr string, req *protocol.Message) *protocol.Message {
	t.Helper()
	resp, err := transport.Call(context.Background(), addr, req)
	require.NoError(t, err)
	return resp
}

// signUp creates an account through a gateway and logs in, returning the
// session id.
func (h *harness) signUp(t *testing.T, gatewayAddr, name string) uuid.UUID {
	t.Helper()
	resp := h.call(t, gatewayAddr, protocol.MustMessage(protocol.SellerCreateAccount,
		protocol.CredentialsRequest{Name: name, Password: "pw"}))
	require.Equal(t, protocol.MessageType("account_created"), resp.Type, resp.ErrorText())

	resp = h.call(t, gatewayAddr, protocol.MustMessage(protocol.SellerLogin,
		protocol.CredentialsRequest{Name: name, Password: "pw"}))
	require.Equal(t, protocol.MessageType("logged_in"), resp.Type, resp.ErrorText())

	var p protocol.LoggedInPayload
	require.NoError(t, resp.Decode(&p))
	return p.SessionID
}

func (h *harness) registerItem(t *testing.T, sessionID uuid.UUID, name string, category int32, keywords []string, price float64, quantity int32) uuid.UUID {
	t.Helper()
	resp := h.call(t, h.sellerAddr, protocol.MustMessage(protocol.SellerRegisterItem,
		protocol.RegisterItemRequest{
			SessionID: sessionID,
			Name:      name,
			Category:  category,
			Keywords:  keywords,
			Condition: domain.ConditionNew,
			SalePrice: price,
			Quantity:  quantity,
		}))
	require.Equal(t, protocol.SellerItemRegistered, resp.Type, resp.ErrorText())
	var p protocol.ItemRegisteredPayload
	require.NoError(t, resp.Decode(&p))
	return p.ItemID
}

func TestEndToEnd_RegisterThenSearch(t *testing.T) {
	h := newHarness(t, time.Hour)

	aliceSess := h.signUp(t, h.sellerAddr, "alice")
	itemID := h.registerItem(t, aliceSess, "Widget", 3, []string{"red", "small"}, 9.99, 5)

	bobSess := h.signUp(t, h.buyerAddr, "bob")
	category := int32(3)
	resp := h.call(t, h.buyerAddr, protocol.MustMessage(protocol.BuyerSearchItems,
		protocol.BuyerSearchRequest{
			SessionID: bobSess,
			Category:  &category,
			Keywords:  []string{"red"},
		}))
	require.Equal(t, protocol.BuyerItems, resp.Type, resp.ErrorText())

	var items protocol.ItemsPayload
	require.NoError(t, resp.Decode(&items))
	require.Len(t, items.Items, 1)
	assert.Equal(t, itemID, items.Items[0].ItemID)
	assert.Equal(t, "Widget", items.Items[0].Name)
}

func TestEndToEnd_CartAdmitsMoreThanListedQuantity(t *testing.T) {
	h := newHarness(t, time.Hour)

	aliceSess := h.signUp(t, h.sellerAddr, "alice")
	itemID := h.registerItem(t, aliceSess, "Widget", 1, nil, 5, 5)
	bobSess := h.signUp(t, h.buyerAddr, "bob")

	// Each add is checked against the listed quantity in isolation, so two
	// adds of 3 both pass the ceiling of 5 and the cart ends up holding 6.
	for i := 0; i < 2; i++ {
		resp := h.call(t, h.buyerAddr, protocol.MustMessage(protocol.BuyerAddItemToCart,
			protocol.BuyerCartLineRequest{SessionID: bobSess, ItemID: itemID, Quantity: 3}))
		require.Equal(t, protocol.BuyerItemAdded, resp.Type, resp.ErrorText())
	}

	resp := h.call(t, h.buyerAddr, protocol.MustMessage(protocol.BuyerDisplayCart,
		protocol.SessionIDRequest{SessionID: bobSess}))
	require.Equal(t, protocol.BuyerCart, resp.Type, resp.ErrorText())

	var cart protocol.CartPayload
	require.NoError(t, resp.Decode(&cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int32(6), cart.Items[0].Quantity)

	// The listing itself is never decremented by cart activity.
	item := h.call(t, h.buyerAddr, protocol.MustMessage(protocol.BuyerGetItem,
		protocol.BuyerItemRequest{SessionID: bobSess, ItemID: itemID}))
	require.Equal(t, protocol.BuyerItem, item.Type)
	var ip protocol.ItemPayload
	require.NoError(t, item.Decode(&ip))
	require.NotNil(t, ip.Item)
	assert.Equal(t, int32(5), ip.Item.Quantity)
}

func TestEndToEnd_ExpiredSessionIsRejectedAndReaped(t *testing.T) {
	h := newHarness(t, time.Millisecond)

	bobSess := h.signUp(t, h.buyerAddr, "bob")
	time.Sleep(1100 * time.Millisecond) // expiry has one-second resolution

	resp := h.call(t, h.buyerAddr, protocol.MustMessage(protocol.BuyerDisplayCart,
		protocol.SessionIDRequest{SessionID: bobSess}))
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Equal(t, "Session expired", resp.ErrorText())

	// The best-effort cleanup removed the session from the store.
	resp = h.call(t, h.accountAddr, protocol.MustMessage(protocol.AccountGetSession,
		protocol.SessionIDRequest{SessionID: bobSess}))
	require.Equal(t, protocol.AccountSession, resp.Type)
	var sp protocol.SessionPayload
	require.NoError(t, resp.Decode(&sp))
	assert.Nil(t, sp.Session)
}

func TestEndToEnd_PriceChangeByNonOwnerIsRejected(t *testing.T) {
	h := newHarness(t, time.Hour)

	aliceSess := h.signUp(t, h.sellerAddr, "alice")
	itemID := h.registerItem(t, aliceSess, "Widget", 1, nil, 10, 5)
	malSess := h.signUp(t, h.sellerAddr, "mallory")

	resp := h.call(t, h.sellerAddr, protocol.MustMessage(protocol.SellerChangeItemPrice,
		protocol.ChangeItemPriceRequest{SessionID: malSess, ItemID: itemID, NewPrice: 0.01}))
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Equal(t, "Not your item", resp.ErrorText())

	// The owner still sees the original price.
	resp = h.call(t, h.sellerAddr, protocol.MustMessage(protocol.SellerDisplayItems,
		protocol.SessionIDRequest{SessionID: aliceSess}))
	require.Equal(t, protocol.SellerItems, resp.Type, resp.ErrorText())
	var items protocol.ItemsPayload
	require.NoError(t, resp.Decode(&items))
	require.Len(t, items.Items, 1)
	assert.Equal(t, 10.0, items.Items[0].SalePrice)

	// The owner's change goes through.
	resp = h.call(t, h.sellerAddr, protocol.MustMessage(protocol.SellerChangeItemPrice,
		protocol.ChangeItemPriceRequest{SessionID: aliceSess, ItemID: itemID, NewPrice: 7.5}))
	require.Equal(t, protocol.SellerPriceChanged, resp.Type, resp.ErrorText())
}

func TestEndToEnd_LogoutInvalidatesSession(t *testing.T) {
	h := newHarness(t, time.Hour)
	bobSess := h.signUp(t, h.buyerAddr, "bob")

	resp := h.call(t, h.buyerAddr, protocol.MustMessage(protocol.BuyerLogout,
		protocol.SessionIDRequest{SessionID: bobSess}))
	require.Equal(t, protocol.BuyerLoggedOut, resp.Type, resp.ErrorText())

	resp = h.call(t, h.buyerAddr, protocol.MustMessage(protocol.BuyerDisplayCart,
		protocol.SessionIDRequest{SessionID: bobSess}))
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Equal(t, "Session not found", resp.ErrorText())
}

func TestEndToEnd_DuplicateAccountName(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.signUp(t, h.sellerAddr, "alice")

	resp := h.call(t, h.sellerAddr, protocol.MustMessage(protocol.SellerCreateAccount,
		protocol.CredentialsRequest{Name: "alice", Password: "pw"}))
	require.Equal(t, protocol.TypeError, resp.Type)
	assert.Equal(t, "Account already exists", resp.ErrorText())
}
