package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"

	"esther-house/internal/models"
	"esther-house/internal/services"
)

const sessionName = "session"

// CartHandler exposes the session cart as a JSON API
type CartHandler struct {
	store sessions.Store
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store sessions.Store) *CartHandler {
	return &CartHandler{store: store}
}

// sessionCartPersistence adapts a gorilla session to the cart persistence
// port. The cart is stored as JSON under the "cart" key; Save also writes the
// session cookie to the response.
type sessionCartPersistence struct {
	session *sessions.Session
	r       *http.Request
	w       http.ResponseWriter
}

func (p *sessionCartPersistence) Load() (*models.Cart, error) {
	cartData, ok := p.session.Values["cart"]
	if !ok {
		return &models.Cart{}, nil
	}

	cartJSON, ok := cartData.(string)
	if !ok {
		return &models.Cart{}, nil
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(cartJSON), &cart); err != nil {
		return &models.Cart{}, nil
	}
	return &cart, nil
}

func (p *sessionCartPersistence) Save(cart *models.Cart) error {
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	p.session.Values["cart"] = string(cartJSON)
	return p.session.Save(p.r, p.w)
}

// cartStore binds a cart store to the visitor's session
func (h *CartHandler) cartStore(w http.ResponseWriter, r *http.Request) (*services.CartStore, error) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie yields a fresh session; only a nil
		// session is fatal.
		if session == nil {
			return nil, err
		}
	}
	return services.NewCartStore(&sessionCartPersistence{session: session, r: r, w: w}), nil
}

// cartResponse is the JSON shape of the cart with its totals
type cartResponse struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
}

func newCartResponse(cart *models.Cart) cartResponse {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return cartResponse{
		Items:      items,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, err := h.cartStore(w, r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	cart, err := store.Get()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	if item.EventID == "" || item.CategoryID == 0 || item.Price.IsNegative() {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	store, err := h.cartStore(w, r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	cart, err := store.AddItem(item, item.Quantity)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, r, http.StatusBadRequest, "invalid_quantity")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

// UpdateItem handles PUT /api/cart/items/{categoryID}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(chi.URLParam(r, "categoryID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	store, err := h.cartStore(w, r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	current, err := store.Get()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}
	if !cartContains(current, categoryID) {
		writeError(w, r, http.StatusNotFound, "item_not_found")
		return
	}

	cart, err := store.UpdateQuantity(categoryID, req.Quantity)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

// RemoveItem handles DELETE /api/cart/items/{categoryID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(chi.URLParam(r, "categoryID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request")
		return
	}

	store, err := h.cartStore(w, r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	cart, err := store.RemoveItem(categoryID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, err := h.cartStore(w, r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	if err := store.Clear(); err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(&models.Cart{}))
}

func cartContains(cart *models.Cart, categoryID int) bool {
	for _, item := range cart.Items {
		if item.CategoryID == categoryID {
			return true
		}
	}
	return false
}
