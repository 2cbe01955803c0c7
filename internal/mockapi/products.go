package mockapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

type category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Rating      float64
	ImageURL    string
	CategoryID  int64
	Stock       int
	StockMin    int
	SKU         string
	CreatedAt   time.Time
}

type productDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	ImageURL    string    `json:"image_url"`
	Category    *category `json:"category"`
	Stock       int       `json:"stock_current"`
	StockMin    int       `json:"stock_min"`
	SKU         string    `json:"sku,omitempty"`
}

// seed loads the fixture accounts and catalog every fresh server starts
// with. Passwords: admin/admin123, demo/demo123.
func (s *Server) seed() {
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	demoHash, _ := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	admin := &user{ID: 1, Username: "admin", Name: "Store Admin", Email: "admin@educart.dev", Role: "admin", PasswordHash: adminHash}
	demo := &user{ID: 2, Username: "demo", Name: "Demo Customer", Email: "demo@educart.dev", Role: "customer", PasswordHash: demoHash}
	s.users[admin.Username] = admin
	s.users[demo.Username] = demo
	s.usersByID[admin.ID] = admin
	s.usersByID[demo.ID] = demo
	s.nextUserID = 2

	s.categories = []category{
		{ID: 1, Name: "Books"},
		{ID: 2, Name: "Electronics"},
		{ID: 3, Name: "Stationery"},
	}

	now := time.Now()
	s.products = []*product{
		{ID: 1, Name: "Calculus Made Easy", Description: "Classic introduction to calculus", Price: 24.90, Rating: 4.7, ImageURL: "https://placehold.co/100", CategoryID: 1, Stock: 40, StockMin: 5, SKU: "BK-0001", CreatedAt: now.Add(-72 * time.Hour)},
		{ID: 2, Name: "USB-C Charger 65W", Description: "Compact GaN charger", Price: 39.99, Rating: 4.4, ImageURL: "https://placehold.co/100", CategoryID: 2, Stock: 12, StockMin: 10, SKU: "EL-0002", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: 3, Name: "A5 Dot Grid Notebook", Description: "160 pages, lay-flat binding", Price: 8.50, Rating: 4.9, ImageURL: "https://placehold.co/100", CategoryID: 3, Stock: 3, StockMin: 10, SKU: "ST-0003", CreatedAt: now.Add(-24 * time.Hour)},
		{ID: 4, Name: "Noise-Cancelling Headphones", Description: "Over-ear, 30h battery", Price: 129.00, Rating: 4.2, ImageURL: "https://placehold.co/100", CategoryID: 2, Stock: 25, StockMin: 5, SKU: "EL-0004", CreatedAt: now},
	}
	s.nextProductID = 4
}

func (s *Server) categoryByID(id int64) *category {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i]
		}
	}
	return nil
}

func (s *Server) productDTO(p *product) productDTO {
	return productDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Rating:      p.Rating,
		ImageURL:    p.ImageURL,
		Category:    s.categoryByID(p.CategoryID),
		Stock:       p.Stock,
		StockMin:    p.StockMin,
		SKU:         p.SKU,
	}
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categories := q["categories"]
	priceMin, _ := strconv.ParseFloat(q.Get("price_min"), 64)
	priceMax, _ := strconv.ParseFloat(q.Get("price_max"), 64)
	sortBy := q.Get("sort_by")
	order := q.Get("order")

	s.mu.RLock()
	matched := make([]*product, 0, len(s.products))
	for _, p := range s.products {
		if priceMin > 0 && p.Price < priceMin {
			continue
		}
		if priceMax > 0 && p.Price > priceMax {
			continue
		}
		if len(categories) > 0 {
			cat := s.categoryByID(p.CategoryID)
			found := false
			for _, want := range categories {
				if cat != nil && cat.Name == want {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "price":
			less = matched[i].Price < matched[j].Price
		case "name":
			less = matched[i].Name < matched[j].Name
		case "created_at":
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		default:
			less = matched[i].ID < matched[j].ID
		}
		if order == "desc" {
			return !less
		}
		return less
	})

	dtos := make([]productDTO, 0, len(matched))
	for _, p := range matched {
		dtos = append(dtos, s.productDTO(p))
	}
	s.mu.RUnlock()

	respondJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	s.mu.RLock()
	p := s.findProduct(id)
	var dto productDTO
	if p != nil {
		dto = s.productDTO(p)
	}
	s.mu.RUnlock()

	if p == nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	cats := make([]category, len(s.categories))
	copy(cats, s.categories)
	s.mu.RUnlock()
	respondJSON(w, http.StatusOK, cats)
}

// findProduct must be called with s.mu held.
func (s *Server) findProduct(id int64) *product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

type productPayloadDTO struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Rating      *float64 `json:"rating"`
	CategoryID  *int64   `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
	Stock       *int     `json:"stock_current"`
	StockMin    *int     `json:"stock_min"`
	SKU         *string  `json:"sku"`
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productPayloadDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == nil || *req.Name == "" || req.Price == nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "name and price are required")
		return
	}

	s.mu.Lock()
	s.nextProductID++
	p := &product{ID: s.nextProductID, Name: *req.Name, Price: *req.Price, CreatedAt: time.Now()}
	applyProductPayload(p, req)
	s.products = append(s.products, p)
	dto := s.productDTO(p)
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req productPayloadDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s.mu.Lock()
	p := s.findProduct(id)
	if p == nil {
		s.mu.Unlock()
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	applyProductPayload(p, req)
	dto := s.productDTO(p)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, dto)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	s.mu.Lock()
	kept := s.products[:0]
	found := false
	for _, p := range s.products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	s.products = kept
	s.mu.Unlock()

	if !found {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func applyProductPayload(p *product, req productPayloadDTO) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.CategoryID != nil {
		p.CategoryID = *req.CategoryID
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.StockMin != nil {
		p.StockMin = *req.StockMin
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
}
