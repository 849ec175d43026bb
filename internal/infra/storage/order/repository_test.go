package order

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	userID := uuid.New()
	createdAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO orders \(id,user_id,status,amount,items,stripe_session_id,shipping_address,customer_name,customer_phone\)`).
		WithArgs(sqlmock.AnyArg(), userID, "paid", 42.5, []byte(`[{"name":"Sage","unit_amount":4250,"quantity":1}]`),
			"cs_test_1", nil, "Ann", "+15550100").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	o, err := repo.Create(context.Background(), &domain.Order{
		UserID:          &userID,
		Status:          domain.OrderStatusPaid,
		Amount:          42.5,
		Items:           []domain.OrderItem{{Name: "Sage", UnitAmount: 4250, Quantity: 1}},
		StripeSessionID: "cs_test_1",
		CustomerName:    "Ann",
		CustomerPhone:   "+15550100",
	})
	require.NoError(t, err)
	assert.Equal(t, createdAt, o.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateSession(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "orders_stripe_session_id_key"})

	_, err := repo.Create(context.Background(), &domain.Order{StripeSessionID: "cs_dup", Status: domain.OrderStatusPaid})
	assert.ErrorIs(t, err, ErrDuplicateSession)
}

func TestListByUserID(t *testing.T) {
	repo, mock := newMock(t)
	userID := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(orderColumns).
		AddRow(uuid.New().String(), userID.String(), "paid", 10.0, []byte(`[{"name":"Candle","unit_amount":1000,"quantity":1}]`),
			"cs_1", []byte(`{"line1":"1 Main St","city":"Salem","country":"US"}`), "Ann", "", now)

	mock.ExpectQuery(`SELECT .* FROM orders WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(userID).
		WillReturnRows(rows)

	orders, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].UserID)
	assert.Equal(t, userID, *orders[0].UserID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Candle", orders[0].Items[0].Name)
	require.NotNil(t, orders[0].ShippingAddress)
	assert.Equal(t, "Salem", orders[0].ShippingAddress.City)
}
