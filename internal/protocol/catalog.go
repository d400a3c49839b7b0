package protocol

import (
	"github.com/google/uuid"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
)

// Catalog store request variants.
const (
	CatalogCreateItem         MessageType = "create_item"
	CatalogUpdateItem         MessageType = "update_item"
	CatalogGetItem            MessageType = "get_item"
	CatalogGetItemsBySeller   MessageType = "get_items_by_seller"
	CatalogSearchItems        MessageType = "search_items"
	CatalogAddToCart          MessageType = "add_to_cart"
	CatalogRemoveFromCart     MessageType = "remove_from_cart"
	CatalogGetCart            MessageType = "get_cart"
	CatalogSaveCart           MessageType = "save_cart"
	CatalogClearCart          MessageType = "clear_cart"
	CatalogRecordPurchase     MessageType = "record_purchase"
	CatalogGetPurchaseHistory MessageType = "get_purchase_history"
)

// Catalog store response variants.
const (
	CatalogItemCreated      MessageType = "item_created"
	CatalogItemUpdated      MessageType = "item_updated"
	CatalogItem             MessageType = "item"
	CatalogItems            MessageType = "items"
	CatalogCart             MessageType = "cart"
	CatalogCartSaved        MessageType = "cart_saved"
	CatalogCartCleared      MessageType = "cart_cleared"
	CatalogPurchaseRecorded MessageType = "purchase_recorded"
	CatalogPurchaseHistory  MessageType = "purchase_history"
)

type CreateItemRequest struct {
	Item domain.Item `json:"item"`
}

type UpdateItemRequest struct {
	Item domain.Item `json:"item"`
}

type GetItemRequest struct {
	ItemID uuid.UUID `json:"item_id"`
}

type GetItemsBySellerRequest struct {
	SellerID uuid.UUID `json:"seller_id"`
}

type SearchItemsRequest struct {
	Category *int32   `json:"category"`
	Keywords []string `json:"keywords"`
}

type CartLineRequest struct {
	BuyerID  uuid.UUID `json:"buyer_id"`
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int32     `json:"quantity"`
}

type BuyerIDRequest struct {
	BuyerID uuid.UUID `json:"buyer_id"`
}

type SaveCartRequest struct {
	BuyerID uuid.UUID         `json:"buyer_id"`
	Cart    []domain.CartItem `json:"cart"`
}

type RecordPurchaseRequest struct {
	BuyerID uuid.UUID `json:"buyer_id"`
	ItemID  uuid.UUID `json:"item_id"`
}

type ItemCreatedPayload struct {
	ItemID uuid.UUID `json:"item_id"`
}

// ItemPayload carries a point lookup result; Item is null when absent.
type ItemPayload struct {
	Item *domain.Item `json:"item"`
}

type ItemsPayload struct {
	Items []domain.Item `json:"items"`
}

type CartPayload struct {
	Items []domain.CartItem `json:"items"`
}

type PurchaseHistoryPayload struct {
	ItemIDs []uuid.UUID `json:"item_ids"`
}
