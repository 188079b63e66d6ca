package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleGuest = "guest"
	RoleAdmin = "admin"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID    string `gorm:"type:varchar(36);primaryKey"  json:"id"`
	Name  string `json:"name"`
	Email string `gorm:"uniqueIndex;not null"         json:"email"`
	Role  string `gorm:"not null;default:guest"       json:"role"`
}

type MenuItem struct {
	ID       string          `gorm:"type:varchar(36);primaryKey"    json:"id"`
	Name     string          `gorm:"not null"                       json:"name"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"    json:"price"`
	Category string          `gorm:"index;not null"                 json:"category"`
	Recipe   string          `json:"recipe"`
}

type Review struct {
	ID      string  `gorm:"type:varchar(36);primaryKey"  json:"id"`
	Author  string  `gorm:"not null"                     json:"name"`
	Rating  float64 `json:"rating"`
	Details string  `json:"details"`
}

// CartEntry snapshots the menu item at add time; the snapshot price is what
// the cart total is computed from.
type CartEntry struct {
	ID         string          `gorm:"type:varchar(36);primaryKey"   json:"id"`
	Email      string          `gorm:"index;not null"                json:"email"`
	MenuItemID string          `gorm:"type:varchar(36);not null"     json:"menu_item_id"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"   json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Payment struct {
	ID            string                      `gorm:"type:varchar(36);primaryKey"  json:"id"`
	Email         string                      `gorm:"index;not null"               json:"email"`
	Amount        decimal.Decimal             `gorm:"type:numeric(12,2);not null"  json:"price"`
	TransactionID string                      `gorm:"not null"                     json:"transaction_id"`
	Status        string                      `gorm:"not null;default:pending"     json:"status"`
	CartEntryIDs  datatypes.JSONSlice[string] `json:"cart_ids"`
	Items         []PaymentItem               `gorm:"constraint:OnDelete:CASCADE"  json:"-"`
	MenuItemIDs   []string                    `gorm:"-"                            json:"menu_item_ids"`
	CreatedAt     time.Time                   `gorm:"index"                        json:"date"`
}

// PaymentItem is one line of a payment, in the order the client listed it.
type PaymentItem struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"   json:"-"`
	PaymentID  string `gorm:"type:varchar(36);index"     json:"-"`
	Position   int    `gorm:"not null"                   json:"-"`
	MenuItemID string `gorm:"type:varchar(36);index"     json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleGuest
	}
	return nil
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (c *CartEntry) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AfterFind restores the ordered menu item ids from the line items.
func (p *Payment) AfterFind(tx *gorm.DB) error {
	if len(p.Items) == 0 {
		return nil
	}
	p.MenuItemIDs = make([]string, len(p.Items))
	for i, it := range p.Items {
		p.MenuItemIDs[i] = it.MenuItemID
	}
	return nil
}

func (CartEntry) TableName() string {
	return "cart_entries"
}

// All lists every table owned by the service in migration order.
func All() []any {
	return []any{&User{}, &MenuItem{}, &Review{}, &CartEntry{}, &Payment{}, &PaymentItem{}}
}
