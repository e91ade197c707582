package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lisatcreative/printshop-backend/internal/catalog"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
)

func surcharges(small, medium, large, extraLarge string) map[enums.PrintSize]decimal.Decimal {
	return map[enums.PrintSize]decimal.Decimal{
		enums.PrintSizeSmall:      decimal.RequireFromString(small),
		enums.PrintSizeMedium:     decimal.RequireFromString(medium),
		enums.PrintSizeLarge:      decimal.RequireFromString(large),
		enums.PrintSizeExtraLarge: decimal.RequireFromString(extraLarge),
	}
}

// frameSurcharges is the flat add-on per frame style, stepped by print size.
// Black and white frames share a price; natural wood costs more.
var frameSurcharges = map[enums.FrameStyle]map[enums.PrintSize]decimal.Decimal{
	enums.FrameStyleBlack:   surcharges("15.00", "25.00", "27.00", "30.00"),
	enums.FrameStyleWhite:   surcharges("15.00", "25.00", "27.00", "30.00"),
	enums.FrameStyleNatural: surcharges("18.00", "28.00", "30.00", "35.00"),
	enums.FrameStyleNone:    surcharges("0.00", "0.00", "0.00", "0.00"),
}

// FrameSurcharge returns the add-on for a frame style at a given size.
func FrameSurcharge(frame enums.FrameStyle, size enums.PrintSize) (decimal.Decimal, error) {
	bySize, ok := frameSurcharges[frame]
	if !ok {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown frame style %q", frame))
	}
	price, ok := bySize[size]
	if !ok {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown print size %q", size))
	}
	return price, nil
}

type photoLoader interface {
	GetByID(ctx context.Context, id int) (*catalog.Photo, error)
}

// Service computes print prices from the catalog and frame tables.
type Service interface {
	UnitPrice(ctx context.Context, photoID int, size enums.PrintSize, frame enums.FrameStyle) (decimal.Decimal, error)
}

type service struct {
	catalog photoLoader
}

// NewService builds the price calculator over the catalog.
func NewService(photos photoLoader) (Service, error) {
	if photos == nil {
		return nil, fmt.Errorf("catalog required")
	}
	return &service{catalog: photos}, nil
}

// UnitPrice is the print price for the size plus the frame surcharge for that
// size. Unknown photos, sizes, and frames are rejected rather than priced at
// zero.
func (s *service) UnitPrice(ctx context.Context, photoID int, size enums.PrintSize, frame enums.FrameStyle) (decimal.Decimal, error) {
	if !size.IsValid() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown print size %q", size))
	}
	if !frame.IsValid() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown frame style %q", frame))
	}

	photo, err := s.catalog.GetByID(ctx, photoID)
	if err != nil {
		return decimal.Zero, err
	}

	printPrice, ok := photo.PriceFor(size)
	if !ok {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("photo %d has no price for size %q", photoID, size))
	}

	framePrice, err := FrameSurcharge(frame, size)
	if err != nil {
		return decimal.Zero, err
	}

	return printPrice.Add(framePrice), nil
}
