package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelier-ng/atelier-backend/api/responses"
	"github.com/atelier-ng/atelier-backend/api/validators"
	"github.com/atelier-ng/atelier-backend/internal/catalog"
	"github.com/atelier-ng/atelier-backend/pkg/enums"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/logger"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

type createProductRequest struct {
	Title          string            `json:"title" validate:"required"`
	Description    string            `json:"description"`
	Category       string            `json:"category" validate:"required"`
	Price          int               `json:"price" validate:"required,min=1"`
	CompareAtPrice *int              `json:"compare_at_price,omitempty" validate:"omitempty,min=0"`
	Images         []string          `json:"images,omitempty"`
	Colors         []string          `json:"colors,omitempty"`
	IsHybrid       bool              `json:"is_hybrid"`
	StockLevels    types.StockLevels `json:"stock_levels,omitempty"`
	ProductionTime string            `json:"production_time,omitempty"`
	IsPublished    bool              `json:"is_published"`
	IsFeatured     bool              `json:"is_featured"`
}

func (req createProductRequest) toInput() (catalog.CreateProductInput, error) {
	category, err := enums.ParseProductCategory(req.Category)
	if err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	return catalog.CreateProductInput{
		Title:          req.Title,
		Description:    req.Description,
		Category:       category,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Images:         req.Images,
		Colors:         req.Colors,
		IsHybrid:       req.IsHybrid,
		StockLevels:    req.StockLevels,
		ProductionTime: req.ProductionTime,
		IsPublished:    req.IsPublished,
		IsFeatured:     req.IsFeatured,
	}, nil
}

type updateProductRequest struct {
	Title          *string            `json:"title,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Category       *string            `json:"category,omitempty"`
	Price          *int               `json:"price,omitempty" validate:"omitempty,min=1"`
	CompareAtPrice *int               `json:"compare_at_price,omitempty" validate:"omitempty,min=0"`
	Images         *[]string          `json:"images,omitempty"`
	Colors         *[]string          `json:"colors,omitempty"`
	IsHybrid       *bool              `json:"is_hybrid,omitempty"`
	StockLevels    *types.StockLevels `json:"stock_levels,omitempty"`
	ProductionTime *string            `json:"production_time,omitempty"`
	IsPublished    *bool              `json:"is_published,omitempty"`
	IsFeatured     *bool              `json:"is_featured,omitempty"`
}

func (req updateProductRequest) toInput() (catalog.UpdateProductInput, error) {
	input := catalog.UpdateProductInput{
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Images:         req.Images,
		Colors:         req.Colors,
		IsHybrid:       req.IsHybrid,
		StockLevels:    req.StockLevels,
		ProductionTime: req.ProductionTime,
		IsPublished:    req.IsPublished,
		IsFeatured:     req.IsFeatured,
	}
	if req.Category != nil {
		category, err := enums.ParseProductCategory(*req.Category)
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	return input, nil
}

type setFlagRequest struct {
	Value bool `json:"value"`
}

func AdminListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := validators.ParseCategoryQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdminList(r.Context(), catalog.AdminListInput{
			Category:   category,
			Pagination: params,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminGetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.AdminGet(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminSetProductPublished(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setFlagRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.SetPublished(r.Context(), id, payload.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminSetProductFeatured(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setFlagRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.SetFeatured(r.Context(), id, payload.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
