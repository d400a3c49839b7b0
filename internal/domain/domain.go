package domain

import "github.com/google/uuid"

// Condition is the physical state of a listed item.
type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

// UserType distinguishes buyer and seller sessions.
type UserType string

const (
	UserTypeBuyer  UserType = "Buyer"
	UserTypeSeller UserType = "Seller"
)

// Keyword limits enforced by the producing clients. The catalog store does
// not re-check them.
const (
	MaxKeywords   = 5
	MaxKeywordLen = 8
)

// Feedback holds the thumbs-up / thumbs-down counters for an item or seller.
type Feedback struct {
	ThumbsUp   uint32 `json:"thumbs_up"`
	ThumbsDown uint32 `json:"thumbs_down"`
}

// Item is a catalog listing. ItemID and SellerID are immutable after
// creation; price, quantity and feedback are mutable. Quantity is the listed
// stock ceiling, not a live inventory counter.
type Item struct {
	ItemID    uuid.UUID `json:"item_id"`
	SellerID  uuid.UUID `json:"seller_id"`
	Name      string    `json:"name"`
	Category  int32     `json:"category"`
	Keywords  []string  `json:"keywords"`
	Condition Condition `json:"condition"`
	SalePrice float64   `json:"sale_price"`
	Quantity  int32     `json:"quantity"`
	Feedback  Feedback  `json:"feedback"`
}

// CartItem is one line of a buyer's cart.
type CartItem struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int32     `json:"quantity"`
}

// Session is a time-bounded proof of authenticated identity plus role.
// Expiration is a Unix timestamp in seconds.
type Session struct {
	SessionID  uuid.UUID `json:"session_id"`
	UserID     uuid.UUID `json:"user_id"`
	UserType   UserType  `json:"user_type"`
	Expiration int64     `json:"expiration"`
}

// Buyer is an account record held by the account store.
type Buyer struct {
	BuyerID  uuid.UUID `json:"buyer_id"`
	Name     string    `json:"name"`
	Password string    `json:"password"`
}

// Seller is an account record held by the account store. Feedback is the
// seller's aggregate rating as returned by get_seller.
type Seller struct {
	SellerID uuid.UUID `json:"seller_id"`
	Name     string    `json:"name"`
	Password string    `json:"password"`
	Feedback Feedback  `json:"feedback"`
}
