package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lisatcreative/printshop-backend/pkg/enums"
	"github.com/lisatcreative/printshop-backend/pkg/types"
)

// Order is the immutable archive record of a placed order. Monetary values
// are stored in cents; the snapshot is never recomputed after checkout.
type Order struct {
	ID                uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	OrderNumber       string                  `gorm:"column:order_number;not null;uniqueIndex"`
	Status            enums.OrderStatus       `gorm:"column:status;type:text;not null;default:'pending_payment'"`
	FulfillmentMethod enums.FulfillmentMethod `gorm:"column:fulfillment_method;type:text;not null"`
	CustomerFirstName string                  `gorm:"column:customer_first_name;not null"`
	CustomerLastName  string                  `gorm:"column:customer_last_name;not null"`
	CustomerEmail     string                  `gorm:"column:customer_email;not null"`
	CustomerPhone     string                  `gorm:"column:customer_phone"`
	ShippingAddress   *types.Address          `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	ZoneName          string                  `gorm:"column:zone_name"`
	DeliveryWindow    string                  `gorm:"column:delivery_window"`
	SubtotalCents     int                     `gorm:"column:subtotal_cents;not null"`
	ShippingCents     int                     `gorm:"column:shipping_cents;not null;default:0"`
	TaxCents          int                     `gorm:"column:tax_cents;not null;default:0"`
	TotalCents        int                     `gorm:"column:total_cents;not null"`
	MerchantNotified  bool                    `gorm:"column:merchant_notified;not null;default:false"`
	CustomerNotified  bool                    `gorm:"column:customer_notified;not null;default:false"`
	Items             []OrderLineItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
