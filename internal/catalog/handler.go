package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/ankurvarma7/online-marketplace/internal/protocol"
)

// Handler translates catalog frames into store calls. One request frame in,
// one response frame out; unknown tags and undecodable payloads become
// error frames.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Handle(_ context.Context, req *protocol.Message) *protocol.Message {
	switch req.Type {
	case protocol.CatalogCreateItem:
		var p protocol.CreateItemRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		itemID := h.store.CreateItem(p.Item)
		return protocol.MustMessage(protocol.CatalogItemCreated,
			protocol.ItemCreatedPayload{ItemID: itemID})

	case protocol.CatalogUpdateItem:
		var p protocol.UpdateItemRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		h.store.UpdateItem(p.Item)
		return protocol.MustMessage(protocol.CatalogItemUpdated, nil)

	case protocol.CatalogGetItem:
		var p protocol.GetItemRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		item := h.store.GetItem(p.ItemID)
		return protocol.MustMessage(protocol.CatalogItem,
			protocol.ItemPayload{Item: item})

	case protocol.CatalogGetItemsBySeller:
		var p protocol.GetItemsBySellerRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		items := h.store.ItemsBySeller(p.SellerID)
		return protocol.MustMessage(protocol.CatalogItems,
			protocol.ItemsPayload{Items: items})

	case protocol.CatalogSearchItems:
		var p protocol.SearchItemsRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		items := h.store.SearchItems(p.Category, p.Keywords)
		return protocol.MustMessage(protocol.CatalogItems,
			protocol.ItemsPayload{Items: items})

	case protocol.CatalogAddToCart:
		var p protocol.CartLineRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		if err := h.store.AddToCart(p.BuyerID, p.ItemID, p.Quantity); err != nil {
			switch {
			case errors.Is(err, ErrItemNotFound):
				return protocol.ErrorMessage("Item not found")
			case errors.Is(err, ErrInsufficientQuantity):
				return protocol.ErrorMessage("Insufficient quantity")
			default:
				return protocol.ErrorMessage(err.Error())
			}
		}
		return protocol.MustMessage(protocol.CatalogCartSaved, nil)

	case protocol.CatalogRemoveFromCart:
		var p protocol.CartLineRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		h.store.RemoveFromCart(p.BuyerID, p.ItemID, p.Quantity)
		return protocol.MustMessage(protocol.CatalogCartSaved, nil)

	case protocol.CatalogGetCart:
		var p protocol.BuyerIDRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		cart := h.store.GetCart(p.BuyerID)
		return protocol.MustMessage(protocol.CatalogCart,
			protocol.CartPayload{Items: cart})

	case protocol.CatalogSaveCart:
		var p protocol.SaveCartRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		h.store.SaveCart(p.BuyerID, p.Cart)
		return protocol.MustMessage(protocol.CatalogCartSaved, nil)

	case protocol.CatalogClearCart:
		var p protocol.BuyerIDRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		h.store.ClearCart(p.BuyerID)
		return protocol.MustMessage(protocol.CatalogCartCleared, nil)

	case protocol.CatalogRecordPurchase:
		var p protocol.RecordPurchaseRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		h.store.RecordPurchase(p.BuyerID, p.ItemID)
		return protocol.MustMessage(protocol.CatalogPurchaseRecorded, nil)

	case protocol.CatalogGetPurchaseHistory:
		var p protocol.BuyerIDRequest
		if err := req.Decode(&p); err != nil {
			return invalidRequest(err)
		}
		ids := h.store.PurchaseHistory(p.BuyerID)
		return protocol.MustMessage(protocol.CatalogPurchaseHistory,
			protocol.PurchaseHistoryPayload{ItemIDs: ids})

	default:
		return protocol.ErrorMessage(fmt.Sprintf("Invalid request: unknown operation %q", req.Type))
	}
}

func invalidRequest(err error) *protocol.Message {
	return protocol.ErrorMessage(fmt.Sprintf("Invalid request: %v", err))
}
