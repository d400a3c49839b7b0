package catalog

import (
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
)

// MemoryStore implements Store with process-memory maps. Each keyspace is
// guarded by its own RWMutex, so a single map operation is atomic but no
// multi-key sequence is: CreateItem takes the three locks one after another,
// and a concurrent reader may observe the item in the primary map before it
// appears in an index.
type MemoryStore struct {
	itemsMu sync.RWMutex
	items   map[uuid.UUID]domain.Item

	cartsMu sync.RWMutex
	carts   map[uuid.UUID][]domain.CartItem

	historyMu sync.RWMutex
	history   map[uuid.UUID][]uuid.UUID

	sellerMu    sync.RWMutex
	sellerItems map[uuid.UUID][]uuid.UUID

	categoryMu    sync.RWMutex
	categoryItems map[int32][]uuid.UUID
}

// NewMemoryStore creates an empty in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:         make(map[uuid.UUID]domain.Item),
		carts:         make(map[uuid.UUID][]domain.CartItem),
		history:       make(map[uuid.UUID][]uuid.UUID),
		sellerItems:   make(map[uuid.UUID][]uuid.UUID),
		categoryItems: make(map[int32][]uuid.UUID),
	}
}

func (s *MemoryStore) CreateItem(item domain.Item) uuid.UUID {
	itemID := uuid.New()
	item.ItemID = itemID

	s.itemsMu.Lock()
	s.items[itemID] = item
	s.itemsMu.Unlock()

	s.sellerMu.Lock()
	s.sellerItems[item.SellerID] = append(s.sellerItems[item.SellerID], itemID)
	s.sellerMu.Unlock()

	s.categoryMu.Lock()
	s.categoryItems[item.Category] = append(s.categoryItems[item.Category], itemID)
	s.categoryMu.Unlock()

	return itemID
}

func (s *MemoryStore) UpdateItem(item domain.Item) {
	s.itemsMu.Lock()
	s.items[item.ItemID] = item
	s.itemsMu.Unlock()
}

func (s *MemoryStore) GetItem(itemID uuid.UUID) *domain.Item {
	s.itemsMu.RLock()
	defer s.itemsMu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return nil
	}
	return &item
}

func (s *MemoryStore) ItemsBySeller(sellerID uuid.UUID) []domain.Item {
	s.sellerMu.RLock()
	ids := slices.Clone(s.sellerItems[sellerID])
	s.sellerMu.RUnlock()

	items := make([]domain.Item, 0, len(ids))
	s.itemsMu.RLock()
	defer s.itemsMu.RUnlock()
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			items = append(items, item)
		}
	}
	return items
}

func (s *MemoryStore) SearchItems(category *int32, keywords []string) []domain.Item {
	var results []domain.Item

	if category != nil {
		s.categoryMu.RLock()
		ids := slices.Clone(s.categoryItems[*category])
		s.categoryMu.RUnlock()

		s.itemsMu.RLock()
		for _, id := range ids {
			if item, ok := s.items[id]; ok && matchesAll(item, keywords) {
				results = append(results, item)
			}
		}
		s.itemsMu.RUnlock()
	} else {
		s.itemsMu.RLock()
		for _, item := range s.items {
			if matchesAll(item, keywords) {
				results = append(results, item)
			}
		}
		s.itemsMu.RUnlock()
	}

	// Rank by number of required keywords found. Under match-all
	// semantics this only reorders when the keyword list contains
	// duplicates; ties keep whatever order the scan produced.
	sort.Slice(results, func(i, j int) bool {
		return matchCount(results[i], keywords) > matchCount(results[j], keywords)
	})
	return results
}

func matchesAll(item domain.Item, keywords []string) bool {
	for _, kw := range keywords {
		if !slices.Contains(item.Keywords, kw) {
			return false
		}
	}
	return true
}

func matchCount(item domain.Item, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if slices.Contains(item.Keywords, kw) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) AddToCart(buyerID, itemID uuid.UUID, quantity int32) error {
	s.itemsMu.RLock()
	item, ok := s.items[itemID]
	s.itemsMu.RUnlock()
	if !ok {
		return ErrItemNotFound
	}
	// Listed quantity is a static ceiling: it is checked here but never
	// decremented by any cart or purchase operation.
	if item.Quantity < quantity {
		return ErrInsufficientQuantity
	}

	s.cartsMu.Lock()
	defer s.cartsMu.Unlock()
	cart := s.carts[buyerID]
	for i := range cart {
		if cart[i].ItemID == itemID {
			cart[i].Quantity += quantity
			return nil
		}
	}
	s.carts[buyerID] = append(cart, domain.CartItem{ItemID: itemID, Quantity: quantity})
	return nil
}

func (s *MemoryStore) RemoveFromCart(buyerID, itemID uuid.UUID, quantity int32) {
	s.cartsMu.Lock()
	defer s.cartsMu.Unlock()
	cart, ok := s.carts[buyerID]
	if !ok {
		return
	}
	for i := range cart {
		if cart[i].ItemID != itemID {
			continue
		}
		if cart[i].Quantity <= quantity {
			s.carts[buyerID] = append(cart[:i], cart[i+1:]...)
		} else {
			cart[i].Quantity -= quantity
		}
		return
	}
}

func (s *MemoryStore) GetCart(buyerID uuid.UUID) []domain.CartItem {
	s.cartsMu.RLock()
	defer s.cartsMu.RUnlock()
	return slices.Clone(s.carts[buyerID])
}

func (s *MemoryStore) SaveCart(buyerID uuid.UUID, cart []domain.CartItem) {
	s.cartsMu.Lock()
	defer s.cartsMu.Unlock()
	s.carts[buyerID] = cart
}

func (s *MemoryStore) ClearCart(buyerID uuid.UUID) {
	s.cartsMu.Lock()
	defer s.cartsMu.Unlock()
	delete(s.carts, buyerID)
}

func (s *MemoryStore) RecordPurchase(buyerID, itemID uuid.UUID) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	s.history[buyerID] = append(s.history[buyerID], itemID)
}

func (s *MemoryStore) PurchaseHistory(buyerID uuid.UUID) []uuid.UUID {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()
	return slices.Clone(s.history[buyerID])
}
