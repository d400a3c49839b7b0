package protocol

import (
	"github.com/google/uuid"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
)

// Seller gateway request variants.
const (
	SellerCreateAccount   MessageType = "create_account"
	SellerLogin           MessageType = "login"
	SellerLogout          MessageType = "logout"
	SellerGetRating       MessageType = "get_seller_rating"
	SellerRegisterItem    MessageType = "register_item_for_sale"
	SellerChangeItemPrice MessageType = "change_item_price"
	SellerUpdateUnits     MessageType = "update_units_for_sale"
	SellerDisplayItems    MessageType = "display_items_for_sale"
)

// Seller gateway response variants.
const (
	SellerAccountCreated MessageType = "account_created"
	SellerLoggedIn       MessageType = "logged_in"
	SellerLoggedOut      MessageType = "logged_out"
	SellerRating         MessageType = "seller_rating"
	SellerItemRegistered MessageType = "item_registered"
	SellerPriceChanged   MessageType = "price_changed"
	SellerUnitsUpdated   MessageType = "units_updated"
	SellerItems          MessageType = "items"
)

type RegisterItemRequest struct {
	SessionID uuid.UUID        `json:"session_id"`
	Name      string           `json:"name"`
	Category  int32            `json:"category"`
	Keywords  []string         `json:"keywords"`
	Condition domain.Condition `json:"condition"`
	SalePrice float64          `json:"sale_price"`
	Quantity  int32            `json:"quantity"`
}

type ChangeItemPriceRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	ItemID    uuid.UUID `json:"item_id"`
	NewPrice  float64   `json:"new_price"`
}

type UpdateUnitsRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	ItemID    uuid.UUID `json:"item_id"`
	Quantity  int32     `json:"quantity"`
}

type ItemRegisteredPayload struct {
	ItemID uuid.UUID `json:"item_id"`
}
