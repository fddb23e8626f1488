package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"

	engine "github.com/electromaison/storefront-api/cart"
	"github.com/electromaison/storefront-api/models"
)

// SessionCookie identifies one browser's cart. Two sessions never see
// each other's state.
const SessionCookie = "cart_session"

// StoreInfo feeds the checkout handoff message.
type StoreInfo struct {
	Name  string
	Phone string
}

// Manager hands out one engine per session key, constructing it (and
// thereby loading any persisted state) on first use.
type Manager struct {
	mu      sync.Mutex
	storage engine.Storage
	engines map[string]*engine.Engine
}

func NewManager(storage engine.Storage) *Manager {
	return &Manager{
		storage: storage,
		engines: make(map[string]*engine.Engine),
	}
}

func (m *Manager) Engine(key string) *engine.Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.engines[key]
	if !ok {
		e = engine.NewEngine(m.storage, key)
		m.engines[key] = e
	}
	return e
}

type ProductProvider interface {
	GetByID(id string) (*models.Product, error)
}

type CartHandler struct {
	manager *Manager
	repo    ProductProvider
	store   StoreInfo
}

func NewCartHandler(manager *Manager, repo ProductProvider, store StoreInfo) *CartHandler {
	return &CartHandler{
		manager: manager,
		repo:    repo,
		store:   store,
	}
}

// session returns the cart session id, setting the cookie on first
// contact.
func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   365 * 24 * 3600,
		HttpOnly: true,
	})
	return id
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e := h.manager.Engine(h.session(w, r))
	writeState(w, e.State())
}

// HandleAddItem snapshots the product into the cart, incrementing the
// quantity when the line already exists.
func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ProductID == "" {
		jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	product, err := h.repo.GetByID(input.ProductID)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			jsonError(w, "Product does not exist", http.StatusBadRequest)
			return
		}
		jsonError(w, "Failed to validate product", http.StatusInternalServerError)
		return
	}

	e := h.manager.Engine(h.session(w, r))
	e.Add(*product, input.Quantity)
	writeState(w, e.State())
}

func (h *CartHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	e := h.manager.Engine(h.session(w, r))
	e.UpdateQuantity(productID, input.Quantity)
	writeState(w, e.State())
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	e := h.manager.Engine(h.session(w, r))
	e.Remove(r.PathValue("productId"))
	writeState(w, e.State())
}

func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	e := h.manager.Engine(h.session(w, r))
	e.Clear()
	writeState(w, e.State())
}

// HandleCheckoutLink serializes the cart into the messaging handoff
// deep link. An empty cart has nothing to hand off.
func (h *CartHandler) HandleCheckoutLink(w http.ResponseWriter, r *http.Request) {
	e := h.manager.Engine(h.session(w, r))
	state := e.State()
	if len(state.Items) == 0 {
		jsonError(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	message := engine.OrderMessage(state, h.store.Name)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": message,
		"url":     engine.WhatsAppLink(h.store.Phone, message),
	})
}

type itemView struct {
	Product  productView `json:"product"`
	Quantity int         `json:"quantity"`
}

type productView struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type stateView struct {
	Items     []itemView `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

func writeState(w http.ResponseWriter, state engine.State) {
	items := make([]itemView, len(state.Items))
	for i, item := range state.Items {
		items[i] = itemView{
			Product: productView{
				ID:    item.Product.ID,
				Name:  item.Product.Name,
				Price: item.Product.Price.InexactFloat64(),
				Stock: item.Product.Stock,
			},
			Quantity: item.Quantity,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stateView{
		Items:     items,
		Total:     state.Total.InexactFloat64(),
		ItemCount: state.ItemCount,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
