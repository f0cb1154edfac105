package services

import (
	"sync"

	"esther-house/internal/models"
)

// CartPersistence loads and saves a cart for the current visitor. The HTTP
// layer backs this with the session cookie; tests use the in-memory variant.
type CartPersistence interface {
	Load() (*models.Cart, error)
	Save(cart *models.Cart) error
}

// CartStore wraps a persisted cart behind explicit mutation operations. Every
// mutation loads the cart, applies the change and saves the result, so the
// persisted state never diverges from what the caller observed.
type CartStore struct {
	persistence CartPersistence
}

// NewCartStore creates a new cart store
func NewCartStore(persistence CartPersistence) *CartStore {
	return &CartStore{persistence: persistence}
}

// Get returns the current cart
func (s *CartStore) Get() (*models.Cart, error) {
	cart, err := s.persistence.Load()
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{}
	}
	return cart, nil
}

// AddItem adds tickets to the cart, merging with an existing line for the
// same event and category.
func (s *CartStore) AddItem(item models.CartItem, quantity int) (*models.Cart, error) {
	cart, err := s.Get()
	if err != nil {
		return nil, err
	}
	if err := cart.AddItem(item, quantity); err != nil {
		return nil, err
	}
	if err := s.persistence.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of a cart line. Zero or negative removes
// the line.
func (s *CartStore) UpdateQuantity(categoryID int, quantity int) (*models.Cart, error) {
	cart, err := s.Get()
	if err != nil {
		return nil, err
	}
	cart.UpdateQuantity(categoryID, quantity)
	if err := s.persistence.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem removes a cart line by category
func (s *CartStore) RemoveItem(categoryID int) (*models.Cart, error) {
	cart, err := s.Get()
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(categoryID)
	if err := s.persistence.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart
func (s *CartStore) Clear() error {
	cart := &models.Cart{}
	return s.persistence.Save(cart)
}

// MemoryCartPersistence keeps a single cart in memory. Used in tests and as a
// fallback when no session is available.
type MemoryCartPersistence struct {
	mu   sync.Mutex
	cart *models.Cart
}

// NewMemoryCartPersistence creates an empty in-memory cart persistence
func NewMemoryCartPersistence() *MemoryCartPersistence {
	return &MemoryCartPersistence{}
}

// Load returns a copy of the stored cart
func (p *MemoryCartPersistence) Load() (*models.Cart, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cart == nil {
		return &models.Cart{}, nil
	}
	copied := &models.Cart{Items: make([]models.CartItem, len(p.cart.Items))}
	copy(copied.Items, p.cart.Items)
	return copied, nil
}

// Save replaces the stored cart
func (p *MemoryCartPersistence) Save(cart *models.Cart) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	copied := &models.Cart{Items: make([]models.CartItem, len(cart.Items))}
	copy(copied.Items, cart.Items)
	p.cart = copied
	return nil
}
