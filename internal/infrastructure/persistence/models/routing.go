package models

import (
	"time"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
)

// PlacedOrderModel is the persistence model for the PlacedOrder entity.
// The unique indexes on uuid and customer_order_number enforce the
// one-placement-per-order guarantee at the storage layer.
type PlacedOrderModel struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement"`
	UUID                string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	CustomerOrderNumber int64     `gorm:"not null;uniqueIndex"`
	Name                string    `gorm:"type:varchar(100);not null"`
	Email               string    `gorm:"type:varchar(255);not null"`
	Phone               string    `gorm:"type:varchar(30);not null"`
	Instructions        string    `gorm:"type:text"`
	IsScheduled         bool      `gorm:"not null;default:false"`
	IsCompleted         bool      `gorm:"not null;default:false"`
	DisplayOrderID      string    `gorm:"type:varchar(64)"`
	RoutificOrderNumber int64     `gorm:"not null;default:0"`
	WorkspaceID         int64     `gorm:"not null;default:0"`
	Status              string    `gorm:"type:varchar(32);not null;index"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PlacedOrderModel) TableName() string {
	return "placed_orders"
}

// ToDomain converts the persistence model to a domain PlacedOrder entity.
func (m *PlacedOrderModel) ToDomain() routing.PlacedOrder {
	return routing.PlacedOrder{
		ID:                  m.ID,
		UUID:                m.UUID,
		CustomerOrderNumber: m.CustomerOrderNumber,
		Name:                m.Name,
		Email:               m.Email,
		Phone:               m.Phone,
		Instructions:        m.Instructions,
		IsScheduled:         m.IsScheduled,
		IsCompleted:         m.IsCompleted,
		DisplayOrderID:      m.DisplayOrderID,
		RoutificOrderNumber: m.RoutificOrderNumber,
		WorkspaceID:         m.WorkspaceID,
		Status:              routing.PlacementStatus(m.Status),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain PlacedOrder entity.
func (m *PlacedOrderModel) FromDomain(p *routing.PlacedOrder) {
	m.ID = p.ID
	m.UUID = p.UUID
	m.CustomerOrderNumber = p.CustomerOrderNumber
	m.Name = p.Name
	m.Email = p.Email
	m.Phone = p.Phone
	m.Instructions = p.Instructions
	m.IsScheduled = p.IsScheduled
	m.IsCompleted = p.IsCompleted
	m.DisplayOrderID = p.DisplayOrderID
	m.RoutificOrderNumber = p.RoutificOrderNumber
	m.WorkspaceID = p.WorkspaceID
	m.Status = p.Status.String()
}

// PlacedOrderModelFromDomain creates a new persistence model from a domain entity.
func PlacedOrderModelFromDomain(p *routing.PlacedOrder) *PlacedOrderModel {
	m := &PlacedOrderModel{}
	m.FromDomain(p)
	return m
}

// TimeWindowModel is the persistence model for the TimeWindow entity,
// keyed to its placed order by uuid.
type TimeWindowModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UUID      string    `gorm:"type:varchar(64);not null;index"`
	StartTime string    `gorm:"type:varchar(64);not null"`
	EndTime   string    `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TimeWindowModel) TableName() string {
	return "time_windows"
}

// ToDomain converts the persistence model to a domain TimeWindow entity.
func (m *TimeWindowModel) ToDomain() routing.TimeWindow {
	return routing.TimeWindow{
		ID:        m.ID,
		UUID:      m.UUID,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
	}
}

// TimeWindowModelFromDomain creates a new persistence model from a domain entity.
func TimeWindowModelFromDomain(w *routing.TimeWindow) *TimeWindowModel {
	return &TimeWindowModel{
		ID:        w.ID,
		UUID:      w.UUID,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
	}
}

// LocationModel is the persistence model for the Location entity,
// keyed to its placed order by uuid.
type LocationModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UUID      string    `gorm:"type:varchar(64);not null;index"`
	Address   string    `gorm:"type:varchar(255);not null"`
	Latitude  float64   `gorm:"not null;default:0"`
	Longitude float64   `gorm:"not null;default:0"`
	Timezone  string    `gorm:"type:varchar(64)"`
	Status    string    `gorm:"type:varchar(32)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// ToDomain converts the persistence model to a domain Location entity.
func (m *LocationModel) ToDomain() routing.Location {
	return routing.Location{
		ID:        m.ID,
		UUID:      m.UUID,
		Address:   m.Address,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Timezone:  m.Timezone,
		Status:    m.Status,
	}
}

// LocationModelFromDomain creates a new persistence model from a domain entity.
func LocationModelFromDomain(l *routing.Location) *LocationModel {
	return &LocationModel{
		ID:        l.ID,
		UUID:      l.UUID,
		Address:   l.Address,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Timezone:  l.Timezone,
		Status:    l.Status,
	}
}
