package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-ng/atelier-backend/pkg/enums"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/google/uuid"
)

func TestServiceUpdateStatusAndDeliveryDate(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	order := newOrder(t, db, time.Now().UTC(), enums.OrderStatusPending, enums.OrderTypeStock)

	updated, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusProduction)
	require.NoError(t, err)
	assert.Equal(t, "production", updated.Status)

	// any status may replace any other
	back, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, "pending", back.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatus("lost"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	withDate, err := svc.SetDeliveryDate(ctx, order.ID, &date)
	require.NoError(t, err)
	require.NotNil(t, withDate.DeliveryDate)
	assert.True(t, withDate.DeliveryDate.Equal(date))

	cleared, err := svc.SetDeliveryDate(ctx, order.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.DeliveryDate)
}

func TestServiceTrack(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	order := newOrder(t, db, time.Now().UTC(), enums.OrderStatusShipped, enums.OrderTypeStock)

	tracking, err := svc.Track(ctx, order.TrackingToken)
	require.NoError(t, err)
	assert.Equal(t, "shipped", tracking.Status)
	assert.Equal(t, 100000, tracking.TotalAmount)
	require.Len(t, tracking.Items, 1)

	_, err = svc.Track(ctx, "unknown-token")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	_, err = svc.Track(ctx, "  ")
	require.Error(t, err)
}

func TestServiceAdminGetUnknownOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.AdminGet(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
