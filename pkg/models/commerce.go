package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Commerce bounded context. Schema only: no HTTP controllers exist for
// these entities, they are created through migrations and seeding.

type Category struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type Product struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	Stock       int       `gorm:"default:0" json:"stock"`
	ImageURL    string    `gorm:"not null" json:"image_url"`
	CategoryID  string    `gorm:"type:uuid;not null;index" json:"category_id"`
	OwnerID     string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
	Owner    User     `gorm:"foreignKey:OwnerID" json:"-"`
	Reviews  []Review `gorm:"foreignKey:ProductID" json:"reviews"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// Review rating is constrained to 1..5 in the database.
type Review struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	ProductID  string    `gorm:"type:uuid;not null;index" json:"product_id"`
	CustomerID string    `gorm:"type:uuid;not null" json:"customer_id"`
	Name       string    `gorm:"not null" json:"name"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"not null" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`

	Customer User `gorm:"foreignKey:CustomerID" json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
)

type Order struct {
	ID         string      `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID string      `gorm:"type:uuid;not null;index" json:"customer_id"`
	OrderPrice float64     `gorm:"not null" json:"order_price"`
	Status     OrderStatus `gorm:"type:varchar(20);default:'Pending'" json:"status"`

	ShippingAddress    string `gorm:"not null" json:"shipping_address"`
	ShippingCity       string `gorm:"not null" json:"shipping_city"`
	ShippingPostalCode string `gorm:"not null" json:"shipping_postal_code"`
	ShippingCountry    string `gorm:"not null" json:"shipping_country"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer User        `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

type OrderItem struct {
	ID        string `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   string `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID string `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int    `gorm:"not null" json:"quantity"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
