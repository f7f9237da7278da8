package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/veo1/health-scanner/app/httpx"
	"github.com/veo1/health-scanner/models"
	"github.com/veo1/health-scanner/scoring"
)

// maxBodyBytes caps the size of a product submission.
const maxBodyBytes = 1 << 20

type ProductResponse struct {
	Barcode     string           `json:"barcode"`
	Name        string           `json:"name"`
	Brand       string           `json:"brand"`
	Category    string           `json:"category"`
	HealthScore float64          `json:"health_score"`
	HealthBand  scoring.Band     `json:"health_band"`
	Nutrition   models.Nutrition `json:"nutrition_per_100g"`
	Additives   []string         `json:"additives"`
}

type CreatedResponse struct {
	Message string `json:"message"`
	Barcode string `json:"barcode"`
}

type ProductStore interface {
	FindByBarcode(ctx context.Context, barcode string) (models.NutritionRecord, []string, error)
	Insert(ctx context.Context, rec models.NutritionRecord, additives []string) (string, error)
}

type CatalogHandler struct {
	repo ProductStore
}

func NewCatalogHandler(r ProductStore) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

// HandleGetProduct returns a product with its freshly computed health score.
func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")

	rec, additives, err := h.repo.FindByBarcode(r.Context(), barcode)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Product not found in the database.", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to retrieve product.", err.Error())
		return
	}
	if additives == nil {
		additives = []string{}
	}

	result := scoring.Evaluate(nutrients(rec.Nutrition), additives)

	httpx.JSON(w, http.StatusOK, ProductResponse{
		Barcode:     rec.Barcode,
		Name:        rec.Name,
		Brand:       rec.Brand,
		Category:    rec.Category,
		HealthScore: result.Score,
		HealthBand:  result.Band,
		Nutrition:   rec.Nutrition,
		Additives:   additives,
	})
}

// HandleCreate stores a new product. The score is never persisted.
func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input createProductRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON body.", err.Error())
		return
	}

	if missing := input.missingFields(); len(missing) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "Missing required nutritional fields.", missing)
		return
	}

	rec := input.record()
	barcode, err := h.repo.Insert(r.Context(), rec, []string(input.Additives))
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			httpx.JSONError(w, http.StatusBadRequest, "Invalid product data.", vErr.Errors)
		case errors.Is(err, models.ErrDuplicateKey):
			httpx.JSONError(w, http.StatusConflict, fmt.Sprintf("Product with barcode %s already exists.", rec.Barcode), nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "Database error during product insertion.", err.Error())
		}
		return
	}

	httpx.JSON(w, http.StatusCreated, CreatedResponse{
		Message: "Product added successfully.",
		Barcode: barcode,
	})
}

func nutrients(n models.Nutrition) scoring.Nutrients {
	return scoring.Nutrients{
		Sugar:        n.Sugar,
		Salt:         n.Salt,
		SaturatedFat: n.SaturatedFat,
		Protein:      n.Protein,
		Fiber:        n.Fiber,
	}
}
