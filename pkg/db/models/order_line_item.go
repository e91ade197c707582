package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lisatcreative/printshop-backend/pkg/enums"
)

// OrderLineItem snapshots one cart line at the moment the order was placed.
// Unit price is frozen at selection time, so later catalog changes never
// alter archived orders.
type OrderLineItem struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	OrderID        uuid.UUID        `gorm:"column:order_id;type:uuid;not null;index"`
	PhotoID        int              `gorm:"column:photo_id;not null"`
	Title          string           `gorm:"column:title;not null"`
	Category       string           `gorm:"column:category"`
	Size           enums.PrintSize  `gorm:"column:size;type:text;not null"`
	Frame          enums.FrameStyle `gorm:"column:frame;type:text;not null"`
	Quantity       int              `gorm:"column:quantity;not null"`
	UnitPriceCents int              `gorm:"column:unit_price_cents;not null"`
	LineTotalCents int              `gorm:"column:line_total_cents;not null"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
}
