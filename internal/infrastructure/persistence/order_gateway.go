package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/order"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/infrastructure/persistence/models"
)

// GormOrderGateway implements routing.OrderGateway using GORM
type GormOrderGateway struct {
	db *gorm.DB
}

var _ routing.OrderGateway = (*GormOrderGateway)(nil)

// NewGormOrderGateway creates a new GormOrderGateway
func NewGormOrderGateway(db *gorm.DB) *GormOrderGateway {
	return &GormOrderGateway{db: db}
}

// FindUnplaced returns all orders not yet submitted to the routing provider,
// with client, shipping address, and line items joined
func (g *GormOrderGateway) FindUnplaced(ctx context.Context) ([]order.Order, error) {
	var orderModels []models.OrderModel
	if err := g.db.WithContext(ctx).
		Preload("Client").
		Preload("ShippingAddress").
		Preload("LineItems").
		Where("is_placed = ?", false).
		Order("id").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, nil
}

// SavePlacement persists one placement record and flips the source order's
// is_placed flag in a single transaction. The unique index on uuid rejects a
// placement persisted by an earlier attempt with ErrPlacementExists; the
// transaction rolls back as a whole so sibling orders are unaffected.
func (g *GormOrderGateway) SavePlacement(ctx context.Context, record *routing.PlacementRecord) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		placedModel := models.PlacedOrderModelFromDomain(&record.PlacedOrder)
		if err := tx.Create(placedModel).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: uuid %s", routing.ErrPlacementExists, record.PlacedOrder.UUID)
			}
			return err
		}
		record.PlacedOrder.ID = placedModel.ID

		if err := createWindowsAndLocations(tx, record); err != nil {
			return err
		}

		res := tx.Model(&models.OrderModel{}).
			Where("id = ? AND is_placed = ?", record.PlacedOrder.CustomerOrderNumber, false).
			Update("is_placed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order %d not found or already placed: %w",
				record.PlacedOrder.CustomerOrderNumber, routing.ErrPlacementExists)
		}
		return nil
	})
}

// FindRefreshable returns placed orders whose status is non-terminal
func (g *GormOrderGateway) FindRefreshable(ctx context.Context) ([]routing.PlacedOrder, error) {
	statuses := routing.RefreshableStatuses()
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = s.String()
	}

	var placedModels []models.PlacedOrderModel
	if err := g.db.WithContext(ctx).
		Where("status IN ?", values).
		Order("id").
		Find(&placedModels).Error; err != nil {
		return nil, err
	}

	placed := make([]routing.PlacedOrder, len(placedModels))
	for i := range placedModels {
		placed[i] = placedModels[i].ToDomain()
	}
	return placed, nil
}

// SaveRefresh overwrites a placement record keyed by uuid in one transaction.
// The uuid and customer_order_number columns are never touched; time windows
// and locations are replaced wholesale because the provider reports them as a
// complete set each time.
func (g *GormOrderGateway) SaveRefresh(ctx context.Context, record *routing.PlacementRecord) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PlacedOrderModel{}).
			Where("uuid = ?", record.PlacedOrder.UUID).
			Updates(map[string]any{
				"name":                  record.PlacedOrder.Name,
				"email":                 record.PlacedOrder.Email,
				"phone":                 record.PlacedOrder.Phone,
				"instructions":          record.PlacedOrder.Instructions,
				"is_scheduled":          record.PlacedOrder.IsScheduled,
				"is_completed":          record.PlacedOrder.IsCompleted,
				"display_order_id":      record.PlacedOrder.DisplayOrderID,
				"routific_order_number": record.PlacedOrder.RoutificOrderNumber,
				"workspace_id":          record.PlacedOrder.WorkspaceID,
				"status":                record.PlacedOrder.Status.String(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: uuid %s", routing.ErrPlacedOrderNotFound, record.PlacedOrder.UUID)
		}

		if err := tx.Where("uuid = ?", record.PlacedOrder.UUID).
			Delete(&models.TimeWindowModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("uuid = ?", record.PlacedOrder.UUID).
			Delete(&models.LocationModel{}).Error; err != nil {
			return err
		}

		return createWindowsAndLocations(tx, record)
	})
}

// createWindowsAndLocations inserts the record's time windows and locations
// inside the caller's transaction
func createWindowsAndLocations(tx *gorm.DB, record *routing.PlacementRecord) error {
	for i := range record.TimeWindows {
		windowModel := models.TimeWindowModelFromDomain(&record.TimeWindows[i])
		windowModel.ID = 0
		if err := tx.Create(windowModel).Error; err != nil {
			return err
		}
		record.TimeWindows[i].ID = windowModel.ID
	}
	for i := range record.Locations {
		locationModel := models.LocationModelFromDomain(&record.Locations[i])
		locationModel.ID = 0
		if err := tx.Create(locationModel).Error; err != nil {
			return err
		}
		record.Locations[i].ID = locationModel.ID
	}
	return nil
}
