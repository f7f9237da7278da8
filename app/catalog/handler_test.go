package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veo1/health-scanner/models"
	"github.com/veo1/health-scanner/scoring"
)

// --- Mock Repo ---

type storedProduct struct {
	record    models.NutritionRecord
	additives []string
}

type MockProductRepo struct {
	Products map[string]storedProduct
	Err      error

	// Fields to capture call arguments
	lastCalledBarcode     string
	lastInsertedRecord    *models.NutritionRecord
	lastInsertedAdditives []string
}

func (m *MockProductRepo) FindByBarcode(_ context.Context, barcode string) (models.NutritionRecord, []string, error) {
	m.lastCalledBarcode = barcode

	if m.Err != nil {
		return models.NutritionRecord{}, nil, m.Err
	}
	p, ok := m.Products[barcode]
	if !ok {
		return models.NutritionRecord{}, nil, fmt.Errorf("barcode %s: %w", barcode, models.ErrProductNotFound)
	}
	return p.record, p.additives, nil
}

func (m *MockProductRepo) Insert(_ context.Context, rec models.NutritionRecord, additives []string) (string, error) {
	m.lastInsertedRecord = &rec
	m.lastInsertedAdditives = additives

	if m.Err != nil {
		return "", m.Err
	}
	if _, ok := m.Products[rec.Barcode]; ok {
		return "", fmt.Errorf("barcode %s: %w", rec.Barcode, models.ErrDuplicateKey)
	}
	if m.Products == nil {
		m.Products = map[string]storedProduct{}
	}
	m.Products[rec.Barcode] = storedProduct{record: rec, additives: additives}
	return rec.Barcode, nil
}

var cocaCola = storedProduct{
	record: models.NutritionRecord{
		Barcode:   "6009900000003",
		Name:      "Coca-Cola Original",
		Brand:     "Coca-Cola",
		Category:  "Beverages",
		Nutrition: models.Nutrition{Sugar: 10.6, Calories: 42},
	},
	additives: []string{"E150d", "E338"},
}

var milk = storedProduct{
	record: models.NutritionRecord{
		Barcode:  "6001087340014",
		Name:     "Full Cream Milk",
		Brand:    "Clover",
		Category: "Dairy",
		Nutrition: models.Nutrition{
			Sugar: 4.7, Salt: 0.1, Fat: 3.3, SaturatedFat: 2.1, Protein: 3.4, Calories: 64,
		},
	},
}

// --- Tests ---

func TestHandleGetProduct(t *testing.T) {
	catalog := map[string]storedProduct{
		cocaCola.record.Barcode: cocaCola,
		milk.record.Barcode:     milk,
	}

	testCases := []struct {
		name               string
		barcode            string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:    "Success with score and additives",
			barcode: "6009900000003",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Products: catalog}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp ProductResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "6009900000003", resp.Barcode)
				assert.Equal(t, "Coca-Cola Original", resp.Name)
				assert.Equal(t, "Beverages", resp.Category)
				assert.Equal(t, 75.0, resp.HealthScore)
				assert.Equal(t, scoring.BandGood, resp.HealthBand)
				assert.Equal(t, 10.6, resp.Nutrition.Sugar)
				assert.Equal(t, []string{"E150d", "E338"}, resp.Additives)
			},
		},
		{
			name:    "Additive-free product renders an empty list",
			barcode: "6001087340014",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Products: catalog}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), `"additives":[]`)
				assert.Contains(t, rec.Body.String(), `"saturated_fat":2.1`)

				var resp ProductResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, 90.0, resp.HealthScore)
				assert.Equal(t, scoring.BandExcellent, resp.HealthBand)
			},
		},
		{
			name:    "Not found",
			barcode: "0000000000000",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Products: catalog}
			},
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"Product not found in the database."}`, rec.Body.String())
			},
		},
		{
			name:    "Storage error",
			barcode: "6009900000003",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: &models.StorageError{Op: "find product", Err: errors.New("database is locked")}}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "Failed to retrieve product.", resp["error"])
				assert.Contains(t, resp["details"], "database is locked")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := tc.mockRepoSetup()
			handler := NewCatalogHandler(repo)

			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/product/{barcode}", handler.HandleGetProduct)

			req := httptest.NewRequest(http.MethodGet, "/api/product/"+tc.barcode, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tc.barcode, repo.lastCalledBarcode)
			tc.checkResponse(t, rec)
		})
	}
}

const validBody = `{
	"barcode": "6001240100035",
	"name": "Jungle Oats",
	"brand": "Jungle",
	"category": "Breakfast",
	"sugar": 1.1, "salt": 0, "fat": 7.4, "saturated_fat": 1.3,
	"protein": 11.8, "fiber": 10.1, "calories": 385,
	"additives": "E330, E471 ,,"
}`

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name:               "Success with comma-separated additives",
			body:               validBody,
			mockRepoSetup:      func() *MockProductRepo { return &MockProductRepo{} },
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"message":"Product added successfully.","barcode":"6001240100035"}`, rec.Body.String())
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				require.NotNil(t, repo.lastInsertedRecord)
				assert.Equal(t, "Jungle Oats", repo.lastInsertedRecord.Name)
				assert.Equal(t, 10.1, repo.lastInsertedRecord.Nutrition.Fiber)
				assert.Equal(t, 0.0, repo.lastInsertedRecord.Nutrition.Salt)
				assert.Equal(t, []string{"E330", "E471"}, repo.lastInsertedAdditives)
			},
		},
		{
			name:               "Success with additive array and no category",
			body:               `{"barcode":"1","name":"n","brand":"b","sugar":0,"salt":0,"fat":0,"saturated_fat":0,"protein":0,"fiber":0,"calories":0,"additives":["E100","E100"]}`,
			mockRepoSetup:      func() *MockProductRepo { return &MockProductRepo{} },
			expectedStatusCode: http.StatusCreated,
			checkResponse:      func(t *testing.T, rec *httptest.ResponseRecorder) {},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				require.NotNil(t, repo.lastInsertedRecord)
				assert.Empty(t, repo.lastInsertedRecord.Category, "defaults are applied by the store")
				assert.Equal(t, []string{"E100", "E100"}, repo.lastInsertedAdditives)
			},
		},
		{
			name:               "Missing fields",
			body:               `{"barcode":"1","name":"n","sugar":3,"fat":0}`,
			mockRepoSetup:      func() *MockProductRepo { return &MockProductRepo{} },
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp struct {
					Error   string   `json:"error"`
					Details []string `json:"details"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "Missing required nutritional fields.", resp.Error)
				assert.Equal(t, []string{"brand", "salt", "saturated_fat", "protein", "fiber", "calories"}, resp.Details)
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.lastInsertedRecord, "Repo should not be called")
			},
		},
		{
			name:               "Invalid JSON",
			body:               `{"barcode":`,
			mockRepoSetup:      func() *MockProductRepo { return &MockProductRepo{} },
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "Invalid JSON body.")
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.lastInsertedRecord)
			},
		},
		{
			name:               "Additives of the wrong type",
			body:               strings.Replace(validBody, `"E330, E471 ,,"`, `42`, 1),
			mockRepoSetup:      func() *MockProductRepo { return &MockProductRepo{} },
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "additives must be")
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.lastInsertedRecord)
			},
		},
		{
			name: "Store rejects values",
			body: validBody,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: &models.ValidationError{Errors: []models.FieldError{
					{Field: "salt", Message: "must not be negative"},
				}}}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"Invalid product data.","details":[{"field":"salt","message":"must not be negative"}]}`, rec.Body.String())
			},
		},
		{
			name: "Duplicate barcode",
			body: validBody,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Products: map[string]storedProduct{"6001240100035": {}}}
			},
			expectedStatusCode: http.StatusConflict,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"Product with barcode 6001240100035 already exists."}`, rec.Body.String())
			},
		},
		{
			name: "Storage error",
			body: validBody,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: &models.StorageError{Op: "insert product", Err: errors.New("disk I/O error")}}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"Database error during product insertion.","details":"storage: insert product: disk I/O error"}`, rec.Body.String())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := tc.mockRepoSetup()
			handler := NewCatalogHandler(repo)

			req := httptest.NewRequest(http.MethodPost, "/api/product", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.HandleCreate(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			tc.checkResponse(t, rec)
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, repo)
			}
		})
	}
}

func TestAdditiveList(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected additiveList
		wantErr  bool
	}{
		{name: "Delimited string", input: `" E471, E282 ,,"`, expected: additiveList{"E471", "E282"}},
		{name: "Empty string", input: `""`, expected: additiveList{}},
		{name: "Array", input: `["E330","E330"]`, expected: additiveList{"E330", "E330"}},
		{name: "Null", input: `null`, expected: nil},
		{name: "Object", input: `{"code":"E330"}`, wantErr: true},
		{name: "Mixed array", input: `["E330", 1]`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got additiveList
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
