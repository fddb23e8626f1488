// Package cart holds the visitor's unsubmitted selection of products.
// The engine is the single source of truth for one browsing session and
// never talks to the catalog; callers hand it full product snapshots.
package cart

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/electromaison/storefront-api/models"
)

// Item is one cart line: a product snapshot plus its quantity. There is
// at most one item per distinct product id.
type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// State is the full cart document, in the layout persisted by the
// storage port. Total and ItemCount are derived from Items and never
// set independently.
type State struct {
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// Engine maintains the cart for one session. Construction attempts to
// load previously persisted state; every mutation after that persists
// the full state before returning. A mutex keeps the persistence order
// identical to the invocation order.
type Engine struct {
	mu      sync.Mutex
	key     string
	storage Storage

	items []Item
	total decimal.Decimal
	count int
	open  bool
}

// NewEngine builds an engine for the given session key. A read or parse
// failure on the persisted state is swallowed: the session just starts
// with an empty cart.
func NewEngine(storage Storage, key string) *Engine {
	e := &Engine{
		storage: storage,
		key:     key,
		total:   decimal.Zero,
	}
	e.load()
	return e
}

func (e *Engine) load() {
	if e.storage == nil {
		return
	}
	raw, err := e.storage.Load(e.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("error loading cart %s: %v", e.key, err)
		}
		return
	}
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("error loading cart %s: %v", e.key, err)
		return
	}
	e.items = state.Items
	e.recalculate()
}

// Add appends a new line for the product or, when a line with the same
// product id exists, increments its quantity. The engine enforces no
// upper bound; stock limits are the caller's concern. Adding always
// opens the drawer.
func (e *Engine) Add(product models.Product, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	found := false
	for i := range e.items {
		if e.items[i].Product.ID == product.ID {
			e.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		e.items = append(e.items, Item{Product: product, Quantity: quantity})
	}
	e.open = true
	e.commit()
}

// Remove deletes the matching line. It is a no-op when absent.
func (e *Engine) Remove(productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.items[:0]
	for _, item := range e.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	e.items = kept
	e.commit()
}

// UpdateQuantity sets the line's quantity to the exact value. A value
// of zero or less removes the line; an absent product id is a no-op.
func (e *Engine) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		e.Remove(productID)
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].Product.ID == productID {
			e.items[i].Quantity = quantity
			break
		}
	}
	e.commit()
}

// Clear resets the cart to an empty item list.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
	e.commit()
}

// Open and Close toggle the drawer visibility flag. The flag is
// presentational only and never persisted.
func (e *Engine) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = true
}

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = false
}

func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// State returns a copy of the current cart document.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	items := make([]Item, len(e.items))
	copy(items, e.items)
	return State{
		Items:     items,
		Total:     e.total,
		ItemCount: e.count,
	}
}

// commit recomputes the derived fields and persists the full state.
// Callers hold the mutex.
func (e *Engine) commit() {
	e.recalculate()
	e.persist()
}

func (e *Engine) recalculate() {
	total := decimal.Zero
	count := 0
	for _, item := range e.items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		total = total.Add(item.Product.Price.Mul(qty))
		count += item.Quantity
	}
	e.total = total
	e.count = count
}

// persist writes the full cart document. Failures are logged and never
// surfaced to the caller.
func (e *Engine) persist() {
	if e.storage == nil {
		return
	}
	state := State{
		Items:     e.items,
		Total:     e.total,
		ItemCount: e.count,
	}
	raw, err := json.Marshal(state)
	if err != nil {
		log.Printf("error serializing cart %s: %v", e.key, err)
		return
	}
	if err := e.storage.Save(e.key, raw); err != nil {
		log.Printf("error saving cart %s: %v", e.key, err)
	}
}
