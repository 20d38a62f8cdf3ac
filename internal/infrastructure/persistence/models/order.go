package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/order"
)

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	FirstName string    `gorm:"type:varchar(100);not null"`
	LastName  string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *order.Client {
	return &order.Client{
		ID:        m.ID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
	}
}

// ShippingAddressModel is the persistence model for the ShippingAddress entity.
type ShippingAddressModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   int64     `gorm:"not null;uniqueIndex"`
	Address   string    `gorm:"type:varchar(255);not null"`
	City      string    `gorm:"type:varchar(100);not null"`
	Country   string    `gorm:"type:varchar(100);not null"`
	ZipCode   string    `gorm:"type:varchar(20);not null"`
	ContactNo string    `gorm:"type:varchar(30);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShippingAddressModel) TableName() string {
	return "shipping_addresses"
}

// ToDomain converts the persistence model to a domain ShippingAddress entity.
func (m *ShippingAddressModel) ToDomain() *order.ShippingAddress {
	return &order.ShippingAddress{
		ID:        m.ID,
		OrderID:   m.OrderID,
		Address:   m.Address,
		City:      m.City,
		Country:   m.Country,
		ZipCode:   m.ZipCode,
		ContactNo: m.ContactNo,
	}
}

// LineItemModel is the persistence model for the LineItem entity.
type LineItemModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	VariantID int64           `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "line_items"
}

// ToDomain converts the persistence model to a domain LineItem entity.
func (m *LineItemModel) ToDomain() order.LineItem {
	return order.LineItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		VariantID: m.VariantID,
		Quantity:  m.Quantity,
		Price:     m.Price,
	}
}

// OrderModel is the persistence model for the Order aggregate. Client,
// shipping address, and line items are loaded via Preload when the routing
// engine selects submission candidates.
type OrderModel struct {
	ID              int64                 `gorm:"primaryKey;autoIncrement"`
	ClientID        int64                 `gorm:"not null;index"`
	Note            string                `gorm:"type:text"`
	IsPlaced        bool                  `gorm:"not null;default:false;index"`
	Client          *ClientModel          `gorm:"foreignKey:ClientID"`
	ShippingAddress *ShippingAddressModel `gorm:"foreignKey:OrderID"`
	LineItems       []LineItemModel       `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time             `gorm:"not null"`
	UpdatedAt       time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() order.Order {
	o := order.Order{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Note:      m.Note,
		IsPlaced:  m.IsPlaced,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Client != nil {
		o.Client = m.Client.ToDomain()
	}
	if m.ShippingAddress != nil {
		o.ShippingAddress = m.ShippingAddress.ToDomain()
	}
	if len(m.LineItems) > 0 {
		o.LineItems = make([]order.LineItem, 0, len(m.LineItems))
		for i := range m.LineItems {
			o.LineItems = append(o.LineItems, m.LineItems[i].ToDomain())
		}
	}
	return o
}
