package products

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/electromaison/storefront-api/models"
)

// --- Mock Repository ---

type MockAdminRepo struct {
	CreateErr error
	UpdateErr error
	DeleteErr error

	// Fields to capture call arguments
	lastCreated       *models.Product
	lastCreatedTagIDs []string
	lastCreatedImages []models.ProductImage

	lastUpdatedID string
	lastUpdates   map[string]interface{}
	lastTagIDs    *[]string
	lastImages    *[]models.ProductImage

	lastDeletedID string
}

func (m *MockAdminRepo) CreateProduct(product *models.Product, tagIDs []string, images []models.ProductImage) (*models.Product, error) {
	m.lastCreated = product
	m.lastCreatedTagIDs = tagIDs
	m.lastCreatedImages = images
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	product.ID = "generated-id"
	return product, nil
}

func (m *MockAdminRepo) UpdateProduct(id string, updates map[string]interface{}, tagIDs *[]string, images *[]models.ProductImage) (*models.Product, error) {
	m.lastUpdatedID = id
	m.lastUpdates = updates
	m.lastTagIDs = tagIDs
	m.lastImages = images
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	return &models.Product{ID: id}, nil
}

func (m *MockAdminRepo) DeleteProduct(id string) error {
	m.lastDeletedID = id
	return m.DeleteErr
}

// --- Tests: POST /api/admin/products ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		enforceDiscount    bool
		repo               *MockAdminRepo
		expectedStatusCode int
		checkRepoCall      func(t *testing.T, repo *MockAdminRepo)
		expectedError      string
	}{
		{
			name: "Success with tags and images",
			requestBody: `{
				"name": "Fridge", "price": 125000, "category": "Réfrigérateurs",
				"stock": 15, "tag_ids": ["tag-a", "tag-b"],
				"images": [{"url": "x.jpg", "is_main": true}]
			}`,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusCreated,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.NotNil(t, repo.lastCreated)
				assert.Equal(t, "Fridge", repo.lastCreated.Name)
				assert.Equal(t, 15, repo.lastCreated.Stock)
				assert.Equal(t, []string{"tag-a", "tag-b"}, repo.lastCreatedTagIDs)
				assert.Len(t, repo.lastCreatedImages, 1)
				assert.True(t, repo.lastCreatedImages[0].IsMain)
			},
		},
		{
			name: "First image promoted to main when none marked",
			requestBody: `{
				"name": "TV", "price": 165000, "category": "TV",
				"images": [{"url": "a.jpg"}, {"url": "b.jpg"}]
			}`,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusCreated,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.Len(t, repo.lastCreatedImages, 2)
				assert.True(t, repo.lastCreatedImages[0].IsMain)
				assert.False(t, repo.lastCreatedImages[1].IsMain)
			},
		},
		{
			name: "Two main images rejected",
			requestBody: `{
				"name": "TV", "price": 165000, "category": "TV",
				"images": [{"url": "a.jpg", "is_main": true}, {"url": "b.jpg", "is_main": true}]
			}`,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "At most one image may be marked main",
		},
		{
			name:               "Missing name",
			requestBody:        `{"price": 1000, "category": "TV"}`,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Missing name",
		},
		{
			name:               "Missing price",
			requestBody:        `{"name": "TV", "category": "TV"}`,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Price must be a non-negative number",
		},
		{
			name:               "Negative price",
			requestBody:        `{"name": "TV", "price": -5, "category": "TV"}`,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Price must be a non-negative number",
		},
		{
			name:               "Unknown category",
			requestBody:        `{"name": "TV", "price": 1000, "category": "Chaussures"}`,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Unknown category",
		},
		{
			name:               "Negative stock",
			requestBody:        `{"name": "TV", "price": 1000, "category": "TV", "stock": -1}`,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Stock must be a non-negative integer",
		},
		{
			name:               "Discount rule off stores any original price",
			requestBody:        `{"name": "TV", "price": 1000, "original_price": 500, "category": "TV"}`,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:               "Discount rule on rejects original price below price",
			requestBody:        `{"name": "TV", "price": 1000, "original_price": 500, "category": "TV"}`,
			enforceDiscount:    true,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Original price must exceed the current price",
		},
		{
			name:               "Invalid JSON body",
			requestBody:        `{invalid`,
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			handler := NewHandler(tc.repo)
			handler.EnforceDiscountPricing = tc.enforceDiscount
			req := httptest.NewRequest("POST", "/api/admin/products", strings.NewReader(tc.requestBody))
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.expectedError != "" {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedError, errResp["error"])
				assert.Nil(t, tc.repo.lastCreated, "CreateProduct should not be called")
			}

			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, tc.repo)
			}
		})
	}
}

// --- Tests: PUT /api/admin/products/{id} ---

func TestHandleUpdateAssociationSemantics(t *testing.T) {
	testCases := []struct {
		name          string
		requestBody   string
		checkRepoCall func(t *testing.T, repo *MockAdminRepo)
	}{
		{
			name:        "Omitting tag_ids leaves associations untouched",
			requestBody: `{"name": "Renamed"}`,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.Nil(t, repo.lastTagIDs)
				assert.Nil(t, repo.lastImages)
				assert.Equal(t, "Renamed", repo.lastUpdates["name"])
			},
		},
		{
			name:        "Explicit empty tag list clears all associations",
			requestBody: `{"tag_ids": []}`,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.NotNil(t, repo.lastTagIDs)
				assert.Empty(t, *repo.lastTagIDs)
			},
		},
		{
			name:        "Submitted tag list replaces the full set",
			requestBody: `{"tag_ids": ["t1", "t2"]}`,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.NotNil(t, repo.lastTagIDs)
				assert.Equal(t, []string{"t1", "t2"}, *repo.lastTagIDs)
			},
		},
		{
			name:        "Explicit empty image list clears the gallery",
			requestBody: `{"images": []}`,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.NotNil(t, repo.lastImages)
				assert.Empty(t, *repo.lastImages)
			},
		},
		{
			name:        "Scalar patch builds only the named columns",
			requestBody: `{"price": 99000, "featured": true}`,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.Len(t, repo.lastUpdates, 2)
				assert.Contains(t, repo.lastUpdates, "price")
				assert.Equal(t, true, repo.lastUpdates["featured"])
			},
		},
		{
			name:        "Explicit null clears the original price",
			requestBody: `{"original_price": null}`,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.Contains(t, repo.lastUpdates, "original_price")
				assert.Nil(t, repo.lastUpdates["original_price"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockAdminRepo{}
			handler := NewHandler(repo)
			req := httptest.NewRequest("PUT", "/api/admin/products/p1", strings.NewReader(tc.requestBody))
			req.SetPathValue("id", "p1")
			rec := httptest.NewRecorder()

			handler.HandleUpdate(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "p1", repo.lastUpdatedID)
			tc.checkRepoCall(t, repo)
		})
	}
}

func TestHandleUpdateNotFound(t *testing.T) {
	repo := &MockAdminRepo{UpdateErr: models.ErrProductNotFound}
	handler := NewHandler(repo)
	req := httptest.NewRequest("PUT", "/api/admin/products/missing", strings.NewReader(`{"name": "X"}`))
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	handler.HandleUpdate(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleUpdateRejectsInvalidPatch(t *testing.T) {
	testCases := []struct {
		name        string
		requestBody string
	}{
		{name: "Empty name", requestBody: `{"name": ""}`},
		{name: "Negative price", requestBody: `{"price": -1}`},
		{name: "Unknown category", requestBody: `{"category": "Chaussures"}`},
		{name: "Negative stock", requestBody: `{"stock": -2}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockAdminRepo{}
			handler := NewHandler(repo)
			req := httptest.NewRequest("PUT", "/api/admin/products/p1", strings.NewReader(tc.requestBody))
			req.SetPathValue("id", "p1")
			rec := httptest.NewRecorder()

			handler.HandleUpdate(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, repo.lastUpdatedID, "UpdateProduct should not be called")
		})
	}
}

// --- Tests: DELETE /api/admin/products/{id} ---

func TestHandleDelete(t *testing.T) {
	testCases := []struct {
		name               string
		repo               *MockAdminRepo
		expectedStatusCode int
	}{
		{
			name:               "Success",
			repo:               &MockAdminRepo{},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Not found",
			repo:               &MockAdminRepo{DeleteErr: models.ErrProductNotFound},
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler(tc.repo)
			req := httptest.NewRequest("DELETE", "/api/admin/products/p1", nil)
			req.SetPathValue("id", "p1")
			rec := httptest.NewRecorder()

			handler.HandleDelete(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, "p1", tc.repo.lastDeletedID)
		})
	}
}
