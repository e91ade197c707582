package catalog

import (
	"context"
	"fmt"
	"sort"

	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
)

const relatedLimit = 3

// Service exposes read access to the photo catalog.
type Service interface {
	GetByID(ctx context.Context, id int) (*Photo, error)
	List(ctx context.Context, category string) []Photo
	Featured(ctx context.Context) []Photo
	Related(ctx context.Context, id int) ([]Photo, error)
	Categories(ctx context.Context) []string
}

type service struct {
	byID    map[int]Photo
	ordered []Photo
}

// NewService indexes the compiled-in gallery.
func NewService() (Service, error) {
	byID := make(map[int]Photo, len(photos))
	for _, photo := range photos {
		if _, exists := byID[photo.ID]; exists {
			return nil, fmt.Errorf("duplicate photo id %d", photo.ID)
		}
		byID[photo.ID] = photo
	}
	ordered := make([]Photo, len(photos))
	copy(ordered, photos)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return &service{byID: byID, ordered: ordered}, nil
}

func (s *service) GetByID(_ context.Context, id int) (*Photo, error) {
	photo, ok := s.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")
	}
	return &photo, nil
}

// List returns the gallery, optionally filtered by category.
func (s *service) List(_ context.Context, category string) []Photo {
	if category == "" {
		out := make([]Photo, len(s.ordered))
		copy(out, s.ordered)
		return out
	}
	var out []Photo
	for _, photo := range s.ordered {
		if photo.Category == category {
			out = append(out, photo)
		}
	}
	return out
}

func (s *service) Featured(_ context.Context) []Photo {
	var out []Photo
	for _, photo := range s.ordered {
		if photo.Featured {
			out = append(out, photo)
		}
	}
	return out
}

// Related returns up to three other photos sharing the subject's category.
func (s *service) Related(ctx context.Context, id int) ([]Photo, error) {
	subject, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var out []Photo
	for _, photo := range s.ordered {
		if photo.ID == subject.ID || photo.Category != subject.Category {
			continue
		}
		out = append(out, photo)
		if len(out) == relatedLimit {
			break
		}
	}
	return out, nil
}

func (s *service) Categories(_ context.Context) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, photo := range s.ordered {
		if _, ok := seen[photo.Category]; ok {
			continue
		}
		seen[photo.Category] = struct{}{}
		out = append(out, photo.Category)
	}
	sort.Strings(out)
	return out
}
