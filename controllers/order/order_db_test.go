package orderControllers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.PackType{},
		&models.CartProduct{},
		&models.ShipmentAddress{},
		&models.Courier{},
		&models.Shipment{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// seedCartLine stores a user, product, variant and one active cart line:
// quantity 2 at 25000, no discount, net 50000.
func seedCartLine(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID:    userID,
		Email: userID + "@example.com",
		Name:  "Ani",
	}).Error)

	product := models.Product{Name: "Temulawak Capsules", Price: decimal.NewFromInt(25000)}
	require.NoError(t, db.Create(&product).Error)
	pack := models.PackType{ProductID: product.ID, Name: "Bottle of 60", Stock: 10}
	require.NoError(t, db.Create(&pack).Error)

	require.NoError(t, db.Create(&models.CartProduct{
		UserID:     userID,
		ProductID:  product.ID,
		PackTypeID: pack.ID,
		Quantity:   2,
		IsActive:   true,
	}).Error)
}

func seedShipment(t *testing.T, db *gorm.DB, userID string, cost int64, active bool) string {
	t.Helper()
	address := models.ShipmentAddress{UserID: userID, RecipientName: "Ani", City: "Bandung"}
	require.NoError(t, db.Create(&address).Error)
	courier := models.Courier{UserID: userID, CourierName: "jne", Cost: decimal.NewFromInt(cost)}
	require.NoError(t, db.Create(&courier).Error)

	shipment := models.Shipment{
		ID:        uuid.NewString(),
		UserID:    userID,
		AddressID: address.ID,
		CourierID: courier.ID,
		IsActive:  active,
	}
	require.NoError(t, db.Create(&shipment).Error)
	return shipment.ID
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestCreateOrder_EmptyCartLeavesNoOrder(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "user-1@example.com"}).Error)

	_, err := CreateOrder(db, nil, "user-1", CreateOrderRequest{
		DeliveryType: "pickup",
		Notes:        "call on arrival",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindEmptyCart))

	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}, "1 = 1"))
	assert.EqualValues(t, 0, countRows(t, db, &models.OrderItem{}, "1 = 1"))
}

func TestCreateOrder_PickupPersistsAndClearsCart(t *testing.T) {
	db := openTestDB(t)
	seedCartLine(t, db, "user-1")
	// An inactive line is not part of checkout and must survive it.
	require.NoError(t, db.Create(&models.CartProduct{
		UserID: "user-1", ProductID: 1, PackTypeID: 1, Quantity: 5, IsActive: false,
	}).Error)

	order, err := CreateOrder(db, nil, "user-1", CreateOrderRequest{
		DeliveryType: "pickup",
		Notes:        "call on arrival",
	})
	require.NoError(t, err)

	var got models.Order
	require.NoError(t, db.Preload("Items").First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(50000)), "total %s", got.TotalPrice)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].PricePerItem.Equal(decimal.NewFromInt(25000)))
	assert.Nil(t, got.ShipmentID)

	assert.EqualValues(t, 0, countRows(t, db, &models.CartProduct{}, "user_id = ? AND is_active = ?", "user-1", true))
	assert.EqualValues(t, 1, countRows(t, db, &models.CartProduct{}, "user_id = ? AND is_active = ?", "user-1", false))
}

func TestCreateOrder_DeliveryAddsShippingCost(t *testing.T) {
	db := openTestDB(t)
	seedCartLine(t, db, "user-1")
	shipmentID := seedShipment(t, db, "user-1", 15000, true)

	order, err := CreateOrder(db, nil, "user-1", CreateOrderRequest{
		DeliveryType: "delivery",
		ShipmentID:   &shipmentID,
	})
	require.NoError(t, err)

	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(65000)), "total %s", order.TotalPrice)
	require.NotNil(t, order.ShipmentID)
	assert.Equal(t, shipmentID, *order.ShipmentID)
	assert.EqualValues(t, 0, countRows(t, db, &models.CartProduct{}, "user_id = ? AND is_active = ?", "user-1", true))
}

// A shipment that exists but belongs to someone else resolves inside the
// transaction; the failure must leave the cart exactly as it was.
func TestCreateOrder_ForeignShipmentLeavesCartIntact(t *testing.T) {
	db := openTestDB(t)
	seedCartLine(t, db, "user-1")
	require.NoError(t, db.Create(&models.User{ID: "user-2", Email: "user-2@example.com"}).Error)
	foreignShipment := seedShipment(t, db, "user-2", 15000, true)

	_, err := CreateOrder(db, nil, "user-1", CreateOrderRequest{
		DeliveryType: "delivery",
		ShipmentID:   &foreignShipment,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidShipment))

	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}, "1 = 1"))
	assert.EqualValues(t, 1, countRows(t, db, &models.CartProduct{}, "user_id = ? AND is_active = ?", "user-1", true))
}

func TestCreateOrder_InactiveShipmentRejected(t *testing.T) {
	db := openTestDB(t)
	seedCartLine(t, db, "user-1")
	inactive := seedShipment(t, db, "user-1", 15000, false)

	_, err := CreateOrder(db, nil, "user-1", CreateOrderRequest{
		DeliveryType: "delivery",
		ShipmentID:   &inactive,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidShipment))
	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}, "1 = 1"))
}
