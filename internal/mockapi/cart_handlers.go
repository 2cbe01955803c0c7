package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fracki1010/edu-cart-app/internal/mockapi/store"
)

type cartDTO struct {
	ID     int64         `json:"id"`
	UserID int64         `json:"user_id"`
	Total  float64       `json:"total"`
	Items  []cartItemDTO `json:"items"`
}

type cartItemDTO struct {
	CartID    int64          `json:"cart_id"`
	ProductID int64          `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Product   cartProductDTO `json:"product"`
}

type cartProductDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

type cartItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// loadCart returns the user's cart, creating an empty one on first touch.
// The cart ID doubles as the user ID; one cart per user.
func (s *Server) loadCart(r *http.Request, userID int64) (*store.Cart, error) {
	cart, err := s.carts.Get(r.Context(), userID)
	if errors.Is(err, store.ErrCartNotFound) {
		return &store.Cart{ID: userID, UserID: userID}, nil
	}
	return cart, err
}

// cartDTO joins cart items with the catalog. Items whose product has been
// deleted are dropped from the response.
func (s *Server) cartResponse(cart *store.Cart) cartDTO {
	dto := cartDTO{ID: cart.ID, UserID: cart.UserID, Items: make([]cartItemDTO, 0, len(cart.Items))}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range cart.Items {
		p := s.findProduct(item.ProductID)
		if p == nil {
			continue
		}
		dto.Items = append(dto.Items, cartItemDTO{
			CartID:    cart.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product: cartProductDTO{
				ID:       p.ID,
				Name:     p.Name,
				Price:    p.Price,
				ImageURL: p.ImageURL,
			},
		})
		dto.Total += p.Price * float64(item.Quantity)
	}
	return dto
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	cart, err := s.loadCart(r, userID)
	if err != nil {
		s.log.Error("failed to load cart", zap.Int64("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}
	respondJSON(w, http.StatusOK, s.cartResponse(cart))
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req cartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	s.mu.RLock()
	exists := s.findProduct(req.ProductID) != nil
	s.mu.RUnlock()
	if !exists {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	cart, err := s.loadCart(r, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}

	if item := cart.Find(req.ProductID); item != nil {
		item.Quantity += req.Quantity
	} else {
		cart.Items = append(cart.Items, store.Item{ProductID: req.ProductID, Quantity: req.Quantity})
	}

	if err := s.carts.Upsert(r.Context(), cart); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not save cart")
		return
	}
	respondJSON(w, http.StatusOK, s.cartResponse(cart))
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req cartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := s.loadCart(r, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}

	item := cart.Find(req.ProductID)
	if item == nil {
		respondError(w, http.StatusNotFound, "not_found", "item not in cart")
		return
	}

	// Quantity zero or below removes the line; the client defers this
	// decision to the server.
	if req.Quantity <= 0 {
		kept := cart.Items[:0]
		for _, it := range cart.Items {
			if it.ProductID != req.ProductID {
				kept = append(kept, it)
			}
		}
		cart.Items = kept
	} else {
		item.Quantity = req.Quantity
	}

	if err := s.carts.Upsert(r.Context(), cart); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not save cart")
		return
	}
	respondJSON(w, http.StatusOK, s.cartResponse(cart))
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	cart, err := s.loadCart(r, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}

	// Removal is unconditional; deleting an absent product is not an error.
	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept

	if err := s.carts.Upsert(r.Context(), cart); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not save cart")
		return
	}
	respondJSON(w, http.StatusOK, s.cartResponse(cart))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	if err := s.carts.Delete(r.Context(), userID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not clear cart")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
