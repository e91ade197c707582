package orders

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lisatcreative/printshop-backend/pkg/db"
	"github.com/lisatcreative/printshop-backend/pkg/db/models"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the order archive.
type Service interface {
	Archive(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	RecordNotifications(ctx context.Context, orderNumber string, merchant, customer bool) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the order archive service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Archive persists the order and its line items atomically.
func (s *service) Archive(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	if order.OrderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	if len(order.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archiving order")
	}
	return order, nil
}

func (s *service) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return order, nil
}

// RecordNotifications stores which order emails went out. Best-effort; the
// checkout flow logs but does not fail on an update error here.
func (s *service) RecordNotifications(ctx context.Context, orderNumber string, merchant, customer bool) error {
	if orderNumber == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	if err := s.repo.MarkNotified(ctx, orderNumber, merchant, customer); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording notification state")
	}
	return nil
}
