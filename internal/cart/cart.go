// Package cart holds the client-side shopping cart: a persisted mapping
// from product id to a product snapshot and quantity, with a derived
// total. The cart lives entirely on the client and is only turned into
// an order at checkout.
package cart

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/asfandyar/optico-store/internal/models"
	"github.com/shopspring/decimal"
)

type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type Cart struct {
	mu    sync.Mutex
	path  string
	items map[string]*Item
	order []string
	total decimal.Decimal
}

type persistedState struct {
	Items []Item `json:"items"`
}

// Open restores a cart from path, or starts an empty one when the file
// does not exist. The total is always recomputed from the restored
// items, never read from the snapshot.
func Open(path string) (*Cart, error) {
	c := &Cart{
		path:  path,
		items: make(map[string]*Item),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt snapshot is discarded rather than blocking the cart.
		return c, nil
	}

	for i := range state.Items {
		item := state.Items[i]
		if item.Quantity < 1 {
			continue
		}
		c.items[item.Product.ID] = &item
		c.order = append(c.order, item.Product.ID)
	}
	c.recompute()

	return c, nil
}

// AddItem puts a product in the cart, incrementing the quantity when the
// product is already present.
func (c *Cart) AddItem(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[product.ID]; ok {
		item.Quantity += quantity
	} else {
		c.items[product.ID] = &Item{Product: product, Quantity: quantity}
		c.order = append(c.order, product.ID)
	}

	c.recompute()
	c.save()
}

func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.remove(productID)
	c.recompute()
	c.save()
}

// UpdateQuantity overwrites an item's quantity; zero or negative removes
// the item entirely.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.remove(productID)
	} else if item, ok := c.items[productID]; ok {
		item.Quantity = quantity
	}

	c.recompute()
	c.save()
}

// Clear empties the cart. Called once, after an order was placed
// successfully.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*Item)
	c.order = nil
	c.recompute()
	c.save()
}

// Items returns the cart contents in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, *c.items[id])
	}
	return items
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Cart) remove(productID string) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// recompute derives the total from scratch after every mutation; the
// total is never adjusted incrementally.
func (c *Cart) recompute() {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	c.total = total
}

// save persists the snapshot best-effort; a failed write leaves the
// previous snapshot on disk and the in-memory cart authoritative.
func (c *Cart) save() {
	state := persistedState{Items: []Item{}}
	for _, id := range c.order {
		state.Items = append(state.Items, *c.items[id])
	}

	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	_ = os.WriteFile(c.path, data, 0o600)
}
