package products

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/electromaison/storefront-api/models"
)

type Repository interface {
	CreateProduct(product *models.Product, tagIDs []string, images []models.ProductImage) (*models.Product, error)
	UpdateProduct(id string, updates map[string]interface{}, tagIDs *[]string, images *[]models.ProductImage) (*models.Product, error)
	DeleteProduct(id string) error
}

// Handler owns the admin product CRUD surface. EnforceDiscountPricing
// turns the "original price must exceed price" rule from a display
// convention into a validation error.
type Handler struct {
	repo                   Repository
	EnforceDiscountPricing bool
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type ImageInput struct {
	URL          string `json:"url"`
	IsMain       bool   `json:"is_main"`
	DisplayOrder int    `json:"display_order"`
}

type createRequest struct {
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Category      string           `json:"category"`
	Stock         int              `json:"stock"`
	Featured      bool             `json:"featured"`
	TagIDs        []string         `json:"tag_ids"`
	Images        []ImageInput     `json:"images"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input createRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if input.Name == "" {
		jsonError(w, "Missing name", http.StatusBadRequest)
		return
	}
	if input.Price == nil || input.Price.IsNegative() {
		jsonError(w, "Price must be a non-negative number", http.StatusBadRequest)
		return
	}
	if !models.IsValidCategory(input.Category) {
		jsonError(w, "Unknown category", http.StatusBadRequest)
		return
	}
	if input.Stock < 0 {
		jsonError(w, "Stock must be a non-negative integer", http.StatusBadRequest)
		return
	}
	if h.EnforceDiscountPricing && input.OriginalPrice != nil && input.OriginalPrice.LessThanOrEqual(*input.Price) {
		jsonError(w, "Original price must exceed the current price", http.StatusBadRequest)
		return
	}

	images, err := normalizeImages(input.Images)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	product := &models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         *input.Price,
		OriginalPrice: input.OriginalPrice,
		Category:      input.Category,
		Stock:         input.Stock,
		Featured:      input.Featured,
	}

	created, err := h.repo.CreateProduct(product, input.TagIDs, images)
	if err != nil {
		jsonError(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// HandleUpdate patches scalar columns and, only when the request names
// them, replaces the tag or image sets wholesale. Omitting tag_ids or
// images leaves the corresponding set untouched; an explicit empty list
// clears it.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	updates, tagIDs, images, err := h.parseUpdate(raw)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.repo.UpdateProduct(id, updates, tagIDs, images)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			jsonError(w, "Product not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to update product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// parseUpdate distinguishes omitted keys from explicit nulls, so
// "leave unchanged" and "clear" stay separate operations.
func (h *Handler) parseUpdate(raw map[string]json.RawMessage) (map[string]interface{}, *[]string, *[]models.ProductImage, error) {
	updates := map[string]interface{}{}

	if v, ok := raw["name"]; ok {
		var name string
		if err := json.Unmarshal(v, &name); err != nil || name == "" {
			return nil, nil, nil, errors.New("Missing name")
		}
		updates["name"] = name
	}
	if v, ok := raw["description"]; ok {
		var description *string
		if err := json.Unmarshal(v, &description); err != nil {
			return nil, nil, nil, errors.New("Invalid description")
		}
		updates["description"] = description
	}

	var price *decimal.Decimal
	if v, ok := raw["price"]; ok {
		if err := json.Unmarshal(v, &price); err != nil || price == nil || price.IsNegative() {
			return nil, nil, nil, errors.New("Price must be a non-negative number")
		}
		updates["price"] = *price
	}
	if v, ok := raw["original_price"]; ok {
		var originalPrice *decimal.Decimal
		if err := json.Unmarshal(v, &originalPrice); err != nil {
			return nil, nil, nil, errors.New("Original price must be a number")
		}
		if h.EnforceDiscountPricing && originalPrice != nil && price != nil && originalPrice.LessThanOrEqual(*price) {
			return nil, nil, nil, errors.New("Original price must exceed the current price")
		}
		updates["original_price"] = originalPrice
	}

	if v, ok := raw["category"]; ok {
		var category string
		if err := json.Unmarshal(v, &category); err != nil || !models.IsValidCategory(category) {
			return nil, nil, nil, errors.New("Unknown category")
		}
		updates["category"] = category
	}
	if v, ok := raw["stock"]; ok {
		var stock int
		if err := json.Unmarshal(v, &stock); err != nil || stock < 0 {
			return nil, nil, nil, errors.New("Stock must be a non-negative integer")
		}
		updates["stock"] = stock
	}
	if v, ok := raw["featured"]; ok {
		var featured bool
		if err := json.Unmarshal(v, &featured); err != nil {
			return nil, nil, nil, errors.New("Invalid featured flag")
		}
		updates["featured"] = featured
	}

	var tagIDs *[]string
	if v, ok := raw["tag_ids"]; ok {
		var ids []string
		if err := json.Unmarshal(v, &ids); err != nil {
			return nil, nil, nil, errors.New("Invalid tag_ids")
		}
		if ids == nil {
			ids = []string{}
		}
		tagIDs = &ids
	}

	var images *[]models.ProductImage
	if v, ok := raw["images"]; ok {
		var inputs []ImageInput
		if err := json.Unmarshal(v, &inputs); err != nil {
			return nil, nil, nil, errors.New("Invalid images")
		}
		rows, err := normalizeImages(inputs)
		if err != nil {
			return nil, nil, nil, err
		}
		if rows == nil {
			rows = []models.ProductImage{}
		}
		images = &rows
	}

	return updates, tagIDs, images, nil
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.repo.DeleteProduct(id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			jsonError(w, "Product not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Product deleted successfully",
	})
}

// normalizeImages enforces the at-most-one-main rule at write time and
// promotes the first image when none is marked. Empty URLs are
// rejected.
func normalizeImages(inputs []ImageInput) ([]models.ProductImage, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	mains := 0
	for _, in := range inputs {
		if in.URL == "" {
			return nil, errors.New("Image URL is required")
		}
		if in.IsMain {
			mains++
		}
	}
	if mains > 1 {
		return nil, errors.New("At most one image may be marked main")
	}

	images := make([]models.ProductImage, len(inputs))
	for i, in := range inputs {
		images[i] = models.ProductImage{
			URL:          in.URL,
			IsMain:       in.IsMain,
			DisplayOrder: in.DisplayOrder,
		}
	}
	if mains == 0 {
		images[0].IsMain = true
	}
	return images, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
