package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lisatcreative/printshop-backend/api/responses"
	"github.com/lisatcreative/printshop-backend/internal/catalog"
	"github.com/lisatcreative/printshop-backend/internal/pricing"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
)

type photoPriceResponse struct {
	Size  string `json:"size"`
	Label string `json:"label"`
	Price string `json:"price"`
}

type photoResponse struct {
	ID            int                  `json:"id"`
	Title         string               `json:"title"`
	Category      string               `json:"category"`
	Description   string               `json:"description"`
	Image         string               `json:"image"`
	Featured      bool                 `json:"featured"`
	StartingPrice string               `json:"startingPrice"`
	Prices        []photoPriceResponse `json:"prices"`
}

func toPhotoResponse(photo catalog.Photo) photoResponse {
	prices := make([]photoPriceResponse, 0, len(photo.Prices))
	for _, size := range enums.PrintSizes() {
		price, ok := photo.PriceFor(size)
		if !ok {
			continue
		}
		prices = append(prices, photoPriceResponse{
			Size:  size.String(),
			Label: size.Label(),
			Price: price.StringFixed(2),
		})
	}
	return photoResponse{
		ID:            photo.ID,
		Title:         photo.Title,
		Category:      photo.Category,
		Description:   photo.Description,
		Image:         photo.Image,
		Featured:      photo.Featured,
		StartingPrice: photo.StartingPrice().StringFixed(2),
		Prices:        prices,
	}
}

func toPhotoResponses(photos []catalog.Photo) []photoResponse {
	out := make([]photoResponse, 0, len(photos))
	for _, photo := range photos {
		out = append(out, toPhotoResponse(photo))
	}
	return out
}

// ListPhotos returns the gallery, optionally filtered by category.
func ListPhotos(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		category := strings.TrimSpace(r.URL.Query().Get("category"))
		photos := svc.List(r.Context(), category)
		responses.WriteSuccess(w, map[string]any{
			"photos":     toPhotoResponses(photos),
			"categories": svc.Categories(r.Context()),
		})
	}
}

func GetPhoto(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		photoID, err := parsePhotoID(chi.URLParam(r, "photoID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		photo, err := svc.GetByID(r.Context(), photoID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toPhotoResponse(*photo))
	}
}

// FeaturedPhotos returns the home page hero selection.
func FeaturedPhotos(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"photos": toPhotoResponses(svc.Featured(r.Context()))})
	}
}

// RelatedPhotos returns other prints from the subject's category.
func RelatedPhotos(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		photoID, err := parsePhotoID(chi.URLParam(r, "photoID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		photos, err := svc.Related(r.Context(), photoID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"photos": toPhotoResponses(photos)})
	}
}

// QuotePrintPrice prices one configured print: base price for the size plus
// the frame surcharge.
func QuotePrintPrice(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}
		photoID, err := parsePhotoID(chi.URLParam(r, "photoID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		size, err := enums.ParsePrintSize(strings.TrimSpace(query.Get("size")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid print size"))
			return
		}
		frame := enums.FrameStyleNone
		if raw := strings.TrimSpace(query.Get("frame")); raw != "" {
			frame, err = enums.ParseFrameStyle(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid frame style"))
				return
			}
		}

		unitPrice, err := svc.UnitPrice(r.Context(), photoID, size, frame)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		surcharge, err := pricing.FrameSurcharge(frame, size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"photoId":        photoID,
			"size":           size.String(),
			"sizeLabel":      size.Label(),
			"frame":          frame.String(),
			"frameLabel":     frame.Display(),
			"basePrice":      unitPrice.Sub(surcharge).StringFixed(2),
			"frameSurcharge": surcharge.StringFixed(2),
			"unitPrice":      unitPrice.StringFixed(2),
		})
	}
}

func parsePhotoID(raw string) (int, error) {
	photoID, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || photoID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid photo id")
	}
	return photoID, nil
}
