package protocol

import (
	"github.com/google/uuid"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
)

// Buyer gateway request variants.
const (
	BuyerCreateAccount      MessageType = "create_account"
	BuyerLogin              MessageType = "login"
	BuyerLogout             MessageType = "logout"
	BuyerSearchItems        MessageType = "search_items_for_sale"
	BuyerGetItem            MessageType = "get_item"
	BuyerAddItemToCart      MessageType = "add_item_to_cart"
	BuyerRemoveItemFromCart MessageType = "remove_item_from_cart"
	BuyerSaveCart           MessageType = "save_cart"
	BuyerClearCart          MessageType = "clear_cart"
	BuyerDisplayCart        MessageType = "display_cart"
	BuyerProvideFeedback    MessageType = "provide_feedback"
	BuyerGetSellerRating    MessageType = "get_seller_rating"
	BuyerGetPurchases       MessageType = "get_buyer_purchases"
)

// Buyer gateway response variants.
const (
	BuyerAccountCreated   MessageType = "account_created"
	BuyerLoggedIn         MessageType = "logged_in"
	BuyerLoggedOut        MessageType = "logged_out"
	BuyerItems            MessageType = "items"
	BuyerItem             MessageType = "item"
	BuyerItemAdded        MessageType = "item_added"
	BuyerItemRemoved      MessageType = "item_removed"
	BuyerCartSaved        MessageType = "cart_saved"
	BuyerCartCleared      MessageType = "cart_cleared"
	BuyerCart             MessageType = "cart"
	BuyerFeedbackRecorded MessageType = "feedback_recorded"
	BuyerSellerRating     MessageType = "seller_rating"
	BuyerPurchases        MessageType = "purchases"
)

type BuyerSearchRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Category  *int32    `json:"category"`
	Keywords  []string  `json:"keywords"`
}

type BuyerItemRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	ItemID    uuid.UUID `json:"item_id"`
}

type BuyerCartLineRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	ItemID    uuid.UUID `json:"item_id"`
	Quantity  int32     `json:"quantity"`
}

type ProvideFeedbackRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	ItemID    uuid.UUID `json:"item_id"`
	ThumbsUp  bool      `json:"thumbs_up"`
}

type BuyerSellerRatingRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	SellerID  uuid.UUID `json:"seller_id"`
}

type SellerRatingPayload struct {
	Feedback domain.Feedback `json:"feedback"`
}

// LoggedInPayload carries the fresh session id returned by a gateway login.
type LoggedInPayload struct {
	SessionID uuid.UUID `json:"session_id"`
}
