package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Zahid-Hasan-Mozumder/online-store-management-system/internal/domain/routing"
)

// newMockOrderGateway creates a GormOrderGateway with a mocked SQL connection
func newMockOrderGateway(t *testing.T) (*GormOrderGateway, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderGateway(gormDB), mock, mockDB
}

func testRecord(uuid string, orderID int64) *routing.PlacementRecord {
	return &routing.PlacementRecord{
		PlacedOrder: routing.PlacedOrder{
			UUID:                uuid,
			CustomerOrderNumber: orderID,
			Name:                "OSMS",
			Email:               "client@example.com",
			Phone:               "+1-208-555-0101",
			Status:              routing.PlacementStatusNotScheduled,
		},
	}
}

func TestGormOrderGateway_FindUnplaced(t *testing.T) {
	t.Run("returns unplaced orders with joined data", func(t *testing.T) {
		gateway, mock, mockDB := newMockOrderGateway(t)
		defer mockDB.Close()

		orderRows := sqlmock.NewRows([]string{"id", "client_id", "note", "is_placed"}).
			AddRow(int64(1), int64(7), "ring the bell", false)
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE is_placed = \$1 ORDER BY id`).
			WithArgs(false).
			WillReturnRows(orderRows)

		// Preloads run in alphabetical order: Client, LineItems, ShippingAddress
		mock.ExpectQuery(`SELECT \* FROM "clients"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name"}).
				AddRow(int64(7), "client@example.com", "Sam", "Lee"))
		mock.ExpectQuery(`SELECT \* FROM "line_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "variant_id", "quantity"}).
				AddRow(int64(11), int64(1), int64(5), 2))
		mock.ExpectQuery(`SELECT \* FROM "shipping_addresses"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "address", "city", "country", "zip_code", "contact_no"}).
				AddRow(int64(3), int64(1), "12 Elm St", "Boise", "US", "83702", "+1-208-555-0101"))

		orders, err := gateway.FindUnplaced(context.Background())

		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, int64(1), orders[0].ID)
		assert.False(t, orders[0].IsPlaced)
		require.NotNil(t, orders[0].Client)
		assert.Equal(t, "client@example.com", orders[0].Client.Email)
		require.NotNil(t, orders[0].ShippingAddress)
		assert.Equal(t, "Boise", orders[0].ShippingAddress.City)
		require.Len(t, orders[0].LineItems, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when all orders placed", func(t *testing.T) {
		gateway, mock, mockDB := newMockOrderGateway(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE is_placed = \$1 ORDER BY id`).
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "note", "is_placed"}))

		orders, err := gateway.FindUnplaced(context.Background())

		require.NoError(t, err)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderGateway_SavePlacement(t *testing.T) {
	t.Run("persists record and flips order flag in one transaction", func(t *testing.T) {
		gateway, mock, mockDB := newMockOrderGateway(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "placed_orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		record := testRecord("uuid-1", 1)
		err := gateway.SavePlacement(context.Background(), record)

		require.NoError(t, err)
		assert.Equal(t, int64(10), record.PlacedOrder.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects duplicate uuid with ErrPlacementExists", func(t *testing.T) {
		gateway, mock, mockDB := newMockOrderGateway(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "placed_orders"`).
			WillReturnError(gorm.ErrDuplicatedKey)
		mock.ExpectRollback()

		err := gateway.SavePlacement(context.Background(), testRecord("uuid-1", 1))

		require.Error(t, err)
		assert.ErrorIs(t, err, routing.ErrPlacementExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when source order is already placed", func(t *testing.T) {
		gateway, mock, mockDB := newMockOrderGateway(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "placed_orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := gateway.SavePlacement(context.Background(), testRecord("uuid-1", 1))

		require.Error(t, err)
		assert.ErrorIs(t, err, routing.ErrPlacementExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderGateway_FindRefreshable(t *testing.T) {
	gateway, mock, mockDB := newMockOrderGateway(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "uuid", "customer_order_number", "status"}).
		AddRow(int64(1), "uuid-1", int64(42), "not-scheduled").
		AddRow(int64(2), "uuid-2", int64(43), "scheduled")
	mock.ExpectQuery(`SELECT \* FROM "placed_orders" WHERE status IN \(\$1,\$2\) ORDER BY id`).
		WithArgs("not-scheduled", "scheduled").
		WillReturnRows(rows)

	placed, err := gateway.FindRefreshable(context.Background())

	require.NoError(t, err)
	require.Len(t, placed, 2)
	assert.Equal(t, "uuid-1", placed[0].UUID)
	assert.Equal(t, int64(42), placed[0].CustomerOrderNumber)
	assert.Equal(t, routing.PlacementStatusScheduled, placed[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderGateway_SaveRefresh(t *testing.T) {
	t.Run("overwrites record and replaces windows and locations", func(t *testing.T) {
		gateway, mock, mockDB := newMockOrderGateway(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "placed_orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "time_windows" WHERE uuid = \$1`).
			WithArgs("uuid-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "locations" WHERE uuid = \$1`).
			WithArgs("uuid-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO "time_windows"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(20)))
		mock.ExpectQuery(`INSERT INTO "locations"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(30)))
		mock.ExpectCommit()

		record := testRecord("uuid-1", 42)
		record.PlacedOrder.Status = routing.PlacementStatusScheduled
		record.TimeWindows = []routing.TimeWindow{{UUID: "uuid-1", StartTime: "09:00", EndTime: "12:00"}}
		record.Locations = []routing.Location{{UUID: "uuid-1", Address: "12 Elm St"}}

		err := gateway.SaveRefresh(context.Background(), record)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrPlacedOrderNotFound for unknown uuid", func(t *testing.T) {
		gateway, mock, mockDB := newMockOrderGateway(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "placed_orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := gateway.SaveRefresh(context.Background(), testRecord("missing", 42))

		require.Error(t, err)
		assert.ErrorIs(t, err, routing.ErrPlacedOrderNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
