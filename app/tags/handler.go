package tags

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/electromaison/storefront-api/models"
)

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TagProvider interface {
	GetAll() ([]models.Tag, error)
	GetOrCreate(name string) (*models.Tag, error)
}

type TagHandler struct {
	repo TagProvider
}

func NewTagHandler(r TagProvider) *TagHandler {
	return &TagHandler{repo: r}
}

// HandleGetAll lists tags ordered by name. A fetch failure degrades to
// an empty list, same policy as the catalog reads.
func (h *TagHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	tags, err := h.repo.GetAll()
	if err != nil {
		log.Printf("error fetching tags: %v", err)
		tags = nil
	}

	response := make([]TagResponse, len(tags))
	for i, t := range tags {
		response[i] = TagResponse{
			ID:   t.ID,
			Name: t.Name,
			Slug: t.Slug,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleCreate resolves the submitted name to a tag, reusing an
// existing row when the derived slug already exists ("4K" reuses "4k").
func (h *TagHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		jsonError(w, "Missing name", http.StatusBadRequest)
		return
	}

	tag, err := h.repo.GetOrCreate(input.Name)
	if err != nil {
		jsonError(w, "Failed to create tag", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(TagResponse{
		ID:   tag.ID,
		Name: tag.Name,
		Slug: tag.Slug,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
