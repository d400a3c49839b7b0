// Package catalog owns the authoritative item, cart and purchase-history
// state and answers point lookups, index-scoped lookups and ranked search.
package catalog

import (
	"errors"

	"github.com/google/uuid"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
)

// Common errors returned by the store
var (
	ErrItemNotFound         = errors.New("item not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

// Store defines the catalog storage operations. Every method is a single
// atomic step from the store's point of view; there are no multi-step
// store-side transactions.
type Store interface {
	// CreateItem assigns a fresh id, inserts the item and appends the id
	// to the seller and category indexes. Once it returns, the item is
	// visible by id, by seller and by category.
	CreateItem(item domain.Item) uuid.UUID

	// UpdateItem overwrites the record at its existing id. Indexes are
	// not touched: id, seller and category are immutable for the
	// lifetime of an item.
	UpdateItem(item domain.Item)

	// GetItem returns the item, or nil when absent.
	GetItem(itemID uuid.UUID) *domain.Item

	// ItemsBySeller returns the items listed by one seller, in creation
	// order.
	ItemsBySeller(sellerID uuid.UUID) []domain.Item

	// SearchItems returns items matching every keyword (an empty keyword
	// list matches everything), restricted to one category when given,
	// ordered by descending keyword match count. Order among equal-rank
	// items is not stable across calls.
	SearchItems(category *int32, keywords []string) []domain.Item

	// AddToCart merges quantity into the buyer's cart line for the item.
	// Fails when the requested quantity exceeds the item's listed
	// quantity; the listed quantity itself is never decremented.
	AddToCart(buyerID, itemID uuid.UUID, quantity int32) error

	// RemoveFromCart drops the line when quantity covers it, decrements
	// otherwise. Removing an absent line is a silent success.
	RemoveFromCart(buyerID, itemID uuid.UUID, quantity int32)

	// GetCart returns the buyer's cart; a missing cart reads as empty.
	GetCart(buyerID uuid.UUID) []domain.CartItem

	// SaveCart overwrites the buyer's cart wholesale.
	SaveCart(buyerID uuid.UUID, cart []domain.CartItem)

	// ClearCart deletes the buyer's cart entry.
	ClearCart(buyerID uuid.UUID)

	// RecordPurchase appends an item id to the buyer's purchase history.
	RecordPurchase(buyerID, itemID uuid.UUID)

	// PurchaseHistory returns the buyer's history; missing reads as empty.
	PurchaseHistory(buyerID uuid.UUID) []uuid.UUID
}
