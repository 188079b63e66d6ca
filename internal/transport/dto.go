package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bistro/internal/models"
)

type IssueTokenRequest struct {
	Email string `json:"email"`
}

type IssueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateUserResponse struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"inserted_id"`
}

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

type CreateMenuItemRequest struct {
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Recipe   string          `json:"recipe"`
}

type PatchMenuItemRequest struct {
	Name     *string          `json:"name"`
	Image    *string          `json:"image"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
	Recipe   *string          `json:"recipe"`
}

type AddToCartRequest struct {
	Email      string `json:"email"`
	MenuItemID string `json:"menu_item_id"`
}

type CartResponse struct {
	Items []models.CartEntry `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type RemovedResponse struct {
	Deleted int64 `json:"deleted"`
}

type PaymentIntentRequest struct {
	Price decimal.Decimal `json:"price"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type CreatePaymentRequest struct {
	Email         string          `json:"email"`
	Price         decimal.Decimal `json:"price"`
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	CartIDs       []string        `json:"cart_ids"`
	MenuItemIDs   []string        `json:"menu_item_ids"`
}

// SettlementResponse tells the caller how much of the cart was cleared so a
// partial cleanup can be reconciled.
type SettlementResponse struct {
	Payment   *models.Payment `json:"payment"`
	Requested int             `json:"requested"`
	Deleted   int64           `json:"deleted"`
	Complete  bool            `json:"complete"`
}

type AdminStatsResponse struct {
	Users     int64           `json:"users"`
	MenuItems int64           `json:"menu_items"`
	Orders    int64           `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type CategoryStat struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type SearchResponse struct {
	Data  []models.MenuItem `json:"data"`
	Total int64             `json:"total"`
}
