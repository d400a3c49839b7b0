package catalog

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
)

func newItem(sellerID uuid.UUID, category int32, keywords ...string) domain.Item {
	return domain.Item{
		SellerID:  sellerID,
		Name:      "test item",
		Category:  category,
		Keywords:  keywords,
		Condition: domain.ConditionNew,
		SalePrice: 9.99,
		Quantity:  5,
	}
}

func TestCreateItem_VisibleEverywhereAfterReturn(t *testing.T) {
	sut := NewMemoryStore()
	sellerID := uuid.New()

	itemID := sut.CreateItem(newItem(sellerID, 3, "red", "small"))
	require.NotEqual(t, uuid.Nil, itemID)

	byID := sut.GetItem(itemID)
	require.NotNil(t, byID)
	assert.Equal(t, itemID, byID.ItemID)
	assert.Equal(t, sellerID, byID.SellerID)

	bySeller := sut.ItemsBySeller(sellerID)
	require.Len(t, bySeller, 1)
	assert.Equal(t, itemID, bySeller[0].ItemID)

	cat := int32(3)
	byCategory := sut.SearchItems(&cat, nil)
	require.Len(t, byCategory, 1)
	assert.Equal(t, itemID, byCategory[0].ItemID)
}

func TestCreateItem_IgnoresCallerAssignedID(t *testing.T) {
	sut := NewMemoryStore()
	item := newItem(uuid.New(), 1)
	item.ItemID = uuid.New() // placeholder from the caller

	itemID := sut.CreateItem(item)
	assert.NotEqual(t, item.ItemID, itemID)
	assert.NotNil(t, sut.GetItem(itemID))
}

func TestUpdateItem_DoesNotTouchIndexes(t *testing.T) {
	sut := NewMemoryStore()
	itemID := sut.CreateItem(newItem(uuid.New(), 3))

	updated := *sut.GetItem(itemID)
	updated.Category = 7
	sut.UpdateItem(updated)

	// The item stays under its original category index; the primary
	// record carries the new category. Accepted desync, not a bug.
	oldCat, newCat := int32(3), int32(7)
	assert.Len(t, sut.SearchItems(&oldCat, nil), 1)
	assert.Empty(t, sut.SearchItems(&newCat, nil))
	assert.Equal(t, int32(7), sut.GetItem(itemID).Category)
}

func TestGetItem_Absent(t *testing.T) {
	sut := NewMemoryStore()
	assert.Nil(t, sut.GetItem(uuid.New()))
}

func TestSearchItems_RequiresAllKeywords(t *testing.T) {
	sut := NewMemoryStore()
	sellerID := uuid.New()
	redSmall := sut.CreateItem(newItem(sellerID, 1, "red", "small"))
	sut.CreateItem(newItem(sellerID, 1, "red"))
	sut.CreateItem(newItem(sellerID, 2, "red", "small"))

	cat := int32(1)
	results := sut.SearchItems(&cat, []string{"red", "small"})
	require.Len(t, results, 1)
	assert.Equal(t, redSmall, results[0].ItemID)
}

func TestSearchItems_MonotoneInKeywords(t *testing.T) {
	sut := NewMemoryStore()
	sellerID := uuid.New()
	sut.CreateItem(newItem(sellerID, 1, "red", "small"))
	sut.CreateItem(newItem(sellerID, 1, "red", "big"))
	sut.CreateItem(newItem(sellerID, 1, "blue"))

	broad := sut.SearchItems(nil, []string{"red"})
	narrow := sut.SearchItems(nil, []string{"red", "small"})
	assert.LessOrEqual(t, len(narrow), len(broad))
	for _, item := range narrow {
		assert.Contains(t, item.Keywords, "red")
		assert.Contains(t, item.Keywords, "small")
	}
}

func TestSearchItems_EmptyKeywordsMatchEverything(t *testing.T) {
	sut := NewMemoryStore()
	sut.CreateItem(newItem(uuid.New(), 1, "a"))
	sut.CreateItem(newItem(uuid.New(), 2))

	assert.Len(t, sut.SearchItems(nil, nil), 2)
}

func TestAddToCart_MergesQuantities(t *testing.T) {
	sut := NewMemoryStore()
	buyerID := uuid.New()
	itemID := sut.CreateItem(newItem(uuid.New(), 1))

	require.NoError(t, sut.AddToCart(buyerID, itemID, 2))
	require.NoError(t, sut.AddToCart(buyerID, itemID, 3))

	cart := sut.GetCart(buyerID)
	require.Len(t, cart, 1)
	assert.Equal(t, int32(5), cart[0].Quantity)
}

func TestAddToCart_InsufficientQuantity(t *testing.T) {
	sut := NewMemoryStore()
	itemID := sut.CreateItem(newItem(uuid.New(), 1)) // listed quantity 5

	err := sut.AddToCart(uuid.New(), itemID, 6)
	assert.ErrorIs(t, err, ErrInsufficientQuantity)
}

func TestAddToCart_UnknownItem(t *testing.T) {
	sut := NewMemoryStore()
	err := sut.AddToCart(uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestAddToCart_ListedQuantityIsNeverDecremented(t *testing.T) {
	sut := NewMemoryStore()
	buyerID := uuid.New()
	itemID := sut.CreateItem(newItem(uuid.New(), 1)) // listed quantity 5

	// Two adds of 3 both succeed: the ceiling is checked per call against
	// the undiminished listed quantity, never reserved or decremented.
	require.NoError(t, sut.AddToCart(buyerID, itemID, 3))
	require.NoError(t, sut.AddToCart(buyerID, itemID, 3))
	assert.Equal(t, int32(5), sut.GetItem(itemID).Quantity)

	cart := sut.GetCart(buyerID)
	require.Len(t, cart, 1)
	assert.Equal(t, int32(6), cart[0].Quantity)
}

func TestRemoveFromCart_DecrementsOrDrops(t *testing.T) {
	sut := NewMemoryStore()
	buyerID := uuid.New()
	itemID := sut.CreateItem(newItem(uuid.New(), 1))
	require.NoError(t, sut.AddToCart(buyerID, itemID, 5))

	sut.RemoveFromCart(buyerID, itemID, 2)
	cart := sut.GetCart(buyerID)
	require.Len(t, cart, 1)
	assert.Equal(t, int32(3), cart[0].Quantity)

	// Removing at least the remaining quantity drops the line.
	sut.RemoveFromCart(buyerID, itemID, 10)
	assert.Empty(t, sut.GetCart(buyerID))
}

func TestRemoveFromCart_AbsentLineIsNoOp(t *testing.T) {
	sut := NewMemoryStore()
	buyerID := uuid.New()

	sut.RemoveFromCart(buyerID, uuid.New(), 1) // no cart at all

	itemID := sut.CreateItem(newItem(uuid.New(), 1))
	require.NoError(t, sut.AddToCart(buyerID, itemID, 1))
	sut.RemoveFromCart(buyerID, uuid.New(), 1) // cart exists, line does not
	assert.Len(t, sut.GetCart(buyerID), 1)
}

func TestSaveAndClearCart(t *testing.T) {
	sut := NewMemoryStore()
	buyerID := uuid.New()
	cart := []domain.CartItem{{ItemID: uuid.New(), Quantity: 2}}

	sut.SaveCart(buyerID, cart)
	assert.Equal(t, cart, sut.GetCart(buyerID))

	sut.ClearCart(buyerID)
	assert.Empty(t, sut.GetCart(buyerID))
}

func TestGetCart_MissingReadsEmpty(t *testing.T) {
	sut := NewMemoryStore()
	assert.Empty(t, sut.GetCart(uuid.New()))
}

func TestPurchaseHistory_AppendOnly(t *testing.T) {
	sut := NewMemoryStore()
	buyerID := uuid.New()
	assert.Empty(t, sut.PurchaseHistory(buyerID))

	first, second := uuid.New(), uuid.New()
	sut.RecordPurchase(buyerID, first)
	sut.RecordPurchase(buyerID, second)
	assert.Equal(t, []uuid.UUID{first, second}, sut.PurchaseHistory(buyerID))
}

func TestCreateItem_Concurrent(t *testing.T) {
	sut := NewMemoryStore()
	sellerID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sut.CreateItem(newItem(sellerID, 1, "x"))
		}()
	}
	wg.Wait()

	assert.Len(t, sut.ItemsBySeller(sellerID), 50)
	cat := int32(1)
	assert.Len(t, sut.SearchItems(&cat, []string{"x"}), 50)
}
