package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lisatcreative/printshop-backend/pkg/config"
	"github.com/lisatcreative/printshop-backend/pkg/db"
	"github.com/lisatcreative/printshop-backend/pkg/db/models"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
	"github.com/lisatcreative/printshop-backend/pkg/types"
)

var dbSeq int

func newTestService(t *testing.T) Service {
	t.Helper()

	dbSeq++
	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:orders_test_%d?mode=memory&cache=shared", dbSeq),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(&models.Order{}, &models.OrderLineItem{}))

	svc, err := NewService(NewRepository(client.DB()), client)
	require.NoError(t, err)
	return svc
}

func sampleOrder(orderNumber string) *models.Order {
	return &models.Order{
		ID:                uuid.New(),
		OrderNumber:       orderNumber,
		Status:            enums.OrderStatusPendingPayment,
		FulfillmentMethod: enums.FulfillmentDelivery,
		CustomerFirstName: "Pat",
		CustomerLastName:  "Shopper",
		CustomerEmail:     "pat@example.com",
		CustomerPhone:     "(403) 555-0142",
		ShippingAddress: &types.Address{
			Line1:      "123 Main St SW",
			City:       "Calgary",
			Province:   "AB",
			PostalCode: "T2N 4N1",
			Country:    "Canada",
		},
		ZoneName:       "Calgary & Area",
		DeliveryWindow: "2-3 business days",
		SubtotalCents:  5000,
		ShippingCents:  999,
		TaxCents:       250,
		TotalCents:     6249,
		Items: []models.OrderLineItem{
			{
				ID:             uuid.New(),
				PhotoID:        1,
				Title:          "Morning Mist at Eagle Lake",
				Category:       "Landscape",
				Size:           enums.PrintSizeMedium,
				Frame:          enums.FrameStyleBlack,
				Quantity:       1,
				UnitPriceCents: 5000,
				LineTotalCents: 5000,
			},
		},
	}
}

func TestArchiveAndFetchRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	archived, err := svc.Archive(ctx, sampleOrder("LT-100"))
	require.NoError(t, err)
	require.NotNil(t, archived)

	fetched, err := svc.GetByOrderNumber(ctx, "LT-100")
	require.NoError(t, err)
	assert.Equal(t, "LT-100", fetched.OrderNumber)
	assert.Equal(t, enums.OrderStatusPendingPayment, fetched.Status)
	assert.Equal(t, 6249, fetched.TotalCents)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Morning Mist at Eagle Lake", fetched.Items[0].Title)
	require.NotNil(t, fetched.ShippingAddress)
	assert.Equal(t, "T2N 4N1", fetched.ShippingAddress.PostalCode)
}

func TestArchiveRejectsDuplicateOrderNumber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Archive(ctx, sampleOrder("LT-200"))
	require.NoError(t, err)

	_, err = svc.Archive(ctx, sampleOrder("LT-200"))
	require.Error(t, err)
	domainErr := pkgerrors.As(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, pkgerrors.CodeConflict, domainErr.Code())
}

func TestArchiveValidatesInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Archive(ctx, nil)
	require.Error(t, err)

	order := sampleOrder("LT-300")
	order.Items = nil
	_, err = svc.Archive(ctx, order)
	require.Error(t, err)

	order = sampleOrder("")
	_, err = svc.Archive(ctx, order)
	require.Error(t, err)
}

func TestGetByOrderNumberNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByOrderNumber(context.Background(), "LT-404")
	require.Error(t, err)
	domainErr := pkgerrors.As(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, pkgerrors.CodeNotFound, domainErr.Code())
}

func TestRecordNotifications(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Archive(ctx, sampleOrder("LT-500"))
	require.NoError(t, err)

	require.NoError(t, svc.RecordNotifications(ctx, "LT-500", true, false))

	fetched, err := svc.GetByOrderNumber(ctx, "LT-500")
	require.NoError(t, err)
	assert.True(t, fetched.MerchantNotified)
	assert.False(t, fetched.CustomerNotified)
}
