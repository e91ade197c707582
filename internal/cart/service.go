package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lisatcreative/printshop-backend/internal/catalog"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
)

const maxLineQuantity = 50

type photoLoader interface {
	GetByID(ctx context.Context, id int) (*catalog.Photo, error)
}

type unitPricer interface {
	UnitPrice(ctx context.Context, photoID int, size enums.PrintSize, frame enums.FrameStyle) (decimal.Decimal, error)
}

// Service exposes cart operations for a shopper session.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, key ItemKey, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, sessionID string, key ItemKey) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store   Store
	catalog photoLoader
	pricing unitPricer
}

// NewService builds a cart service backed by the provided stack.
func NewService(store Store, photos photoLoader, pricing unitPricer) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if photos == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if pricing == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	return &service{store: store, catalog: photos, pricing: pricing}, nil
}

// AddItemInput captures a print configuration being added to the cart.
type AddItemInput struct {
	PhotoID  int
	Size     enums.PrintSize
	Frame    enums.FrameStyle
	Quantity int
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	return s.store.Load(ctx, sessionID)
}

// AddItem prices the configuration and merges it into the cart. Adding a
// configuration already present combines quantities and keeps the original
// frozen unit price.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Cart, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.Quantity > maxLineQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity may not exceed %d", maxLineQuantity))
	}

	photo, err := s.catalog.GetByID(ctx, input.PhotoID)
	if err != nil {
		return nil, err
	}

	unitPrice, err := s.pricing.UnitPrice(ctx, input.PhotoID, input.Size, input.Frame)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.merge(LineItem{
		ItemKey: ItemKey{
			PhotoID: input.PhotoID,
			Size:    input.Size,
			Frame:   input.Frame,
		},
		Title:     photo.Title,
		Category:  photo.Category,
		Image:     photo.Image,
		Quantity:  input.Quantity,
		UnitPrice: unitPrice,
	})

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the line's quantity; zero removes the line.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, key ItemKey, quantity int) (*Cart, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity may not be negative")
	}
	if quantity > maxLineQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity may not exceed %d", maxLineQuantity))
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.setQuantity(key, quantity) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, key ItemKey) (*Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.remove(key) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}
