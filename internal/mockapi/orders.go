package mockapi

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type order struct {
	ID              int64
	UserID          int64
	OrderDate       time.Time
	Status          string
	ShippingAddress string
	Total           float64
	Items           []orderItem
}

type orderItem struct {
	ProductID int64
	Name      string
	ImageURL  string
	Quantity  int
	UnitPrice float64
}

type orderDTO struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	OrderDate       time.Time      `json:"order_date"`
	Status          string         `json:"status"`
	ShippingAddress string         `json:"shipping_address"`
	TotalAmount     float64        `json:"total_amount"`
	Items           []orderItemDTO `json:"items"`
}

type orderItemDTO struct {
	ProductID int64          `json:"product_id"`
	Quantity  int            `json:"quantity"`
	UnitPrice float64        `json:"unit_price"`
	Product   cartProductDTO `json:"product"`
}

type createOrderRequestDTO struct {
	ShippingAddress string `json:"shipping_address"`
}

func orderResponse(o *order) orderDTO {
	dto := orderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		OrderDate:       o.OrderDate,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		TotalAmount:     o.Total,
		Items:           make([]orderItemDTO, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		dto.Items = append(dto.Items, orderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Product: cartProductDTO{
				ID:       item.ProductID,
				Name:     item.Name,
				Price:    item.UnitPrice,
				ImageURL: item.ImageURL,
			},
		})
	}
	return dto
}

// handleCreateOrder turns the server cart into an order and deletes the
// cart. Clients rely on that clearing; they do not issue their own
// DELETE /cart after checkout.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req createOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ShippingAddress == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "shipping_address is required")
		return
	}

	cart, err := s.loadCart(r, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}
	if len(cart.Items) == 0 {
		respondError(w, http.StatusBadRequest, "empty_cart", "cannot place an order from an empty cart")
		return
	}

	s.mu.Lock()
	s.nextOrderID++
	o := &order{
		ID:              s.nextOrderID,
		UserID:          userID,
		OrderDate:       time.Now(),
		Status:          "PENDING",
		ShippingAddress: req.ShippingAddress,
	}
	for _, item := range cart.Items {
		p := s.findProduct(item.ProductID)
		if p == nil {
			continue
		}
		o.Items = append(o.Items, orderItem{
			ProductID: p.ID,
			Name:      p.Name,
			ImageURL:  p.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
		})
		o.Total += p.Price * float64(item.Quantity)
		p.Stock -= item.Quantity
	}
	s.orders = append(s.orders, o)
	dto := orderResponse(o)
	s.mu.Unlock()

	if err := s.carts.Delete(r.Context(), userID); err != nil {
		s.log.Warn("failed to clear cart after order", zap.Int64("user_id", userID), zap.Error(err))
	}

	respondJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	s.mu.RLock()
	dtos := make([]orderDTO, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			dtos = append(dtos, orderResponse(o))
		}
	}
	s.mu.RUnlock()

	respondJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleAllOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	dtos := make([]orderDTO, 0, len(s.orders))
	for _, o := range s.orders {
		dtos = append(dtos, orderResponse(o))
	}
	s.mu.RUnlock()

	respondJSON(w, http.StatusOK, dtos)
}
