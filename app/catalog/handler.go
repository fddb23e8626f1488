package catalog

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/electromaison/storefront-api/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Image struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	IsMain       bool   `json:"is_main"`
	DisplayOrder int    `json:"display_order"`
}

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price"`
	Category      string    `json:"category"`
	Stock         int       `json:"stock"`
	Featured      bool      `json:"featured"`
	CreatedAt     time.Time `json:"created_at"`
	Tags          []Tag     `json:"tags"`
	Images        []Image   `json:"images"`
}

type ProductProvider interface {
	GetFilteredProducts(filters models.ProductFilters) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

// HandleGet lists products through the combinable filters. A fetch
// failure is logged and degrades to an empty catalog: listing pages
// never see the error.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse filter query params
	filters := models.ProductFilters{
		Category: r.URL.Query().Get("category"),
		Tag:      r.URL.Query().Get("tag"),
	}

	if fStr := r.URL.Query().Get("featured"); fStr != "" {
		if f, err := strconv.ParseBool(fStr); err == nil {
			filters.Featured = &f
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil && l > 0 {
			filters.Limit = l
		}
	}

	res, err := h.repo.GetFilteredProducts(filters)
	if err != nil {
		log.Printf("error fetching products: %v", err)
		res = nil
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = toView(p)
	}

	w.Header().Set("Content-Type", "application/json")
	response := Response{
		Total:    len(products),
		Products: products,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleGetProduct returns one product with its embedded tag and image
// collections. Not-found is distinct from a fetch error.
func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			jsonError(w, "product not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to get product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := toView(*product)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

// toView shapes the relational result into the denormalized object the
// UI expects.
func toView(p models.Product) Product {
	tags := make([]Tag, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = Tag{
			ID:   t.ID,
			Name: t.Name,
			Slug: t.Slug,
		}
	}

	images := make([]Image, len(p.Images))
	for i, img := range p.Images {
		images[i] = Image{
			ID:           img.ID,
			URL:          img.URL,
			IsMain:       img.IsMain,
			DisplayOrder: img.DisplayOrder,
		}
	}

	var originalPrice *float64
	if p.OriginalPrice != nil {
		v := p.OriginalPrice.InexactFloat64()
		originalPrice = &v
	}

	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.InexactFloat64(),
		OriginalPrice: originalPrice,
		Category:      p.Category,
		Stock:         p.Stock,
		Featured:      p.Featured,
		CreatedAt:     p.CreatedAt,
		Tags:          tags,
		Images:        images,
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
