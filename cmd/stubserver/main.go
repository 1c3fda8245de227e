// Command stubserver is a local stand-in for the storefront backend: the six
// endpoints the sync client talks to, backed by an in-memory cart. Intended
// for exercising cmd/storefront without a real deployment.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"slices"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/masterskaya/storefront/internal/domain"
)

type product struct {
	name  string
	price decimal.Decimal
}

type cartLine struct {
	id        int64
	productID int64
	quantity  int
}

type stub struct {
	mu        sync.Mutex
	products  map[int64]product
	lines     map[int64]*cartLine
	favorites map[int64]bool
	nextLine  int64
}

func newStub() *stub {
	return &stub{
		products: map[int64]product{
			1: {name: "Кружка", price: decimal.NewFromInt(250)},
			2: {name: "Ваза", price: decimal.NewFromInt(1200)},
			3: {name: "Тарелка", price: decimal.NewFromInt(400)},
		},
		lines:     make(map[int64]*cartLine),
		favorites: make(map[int64]bool),
		nextLine:  1,
	}
}

func main() {
	addr := ":" + getEnv("STUB_PORT", "8000")
	s := newStub()

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/cart/summary/", s.summary)
	r.Post("/cart/add/{product_id}/", s.addItem)
	r.Post("/cart/update/{line_id}/", s.updateQuantity)
	r.Post("/cart/remove/{line_id}/", s.removeLine)
	r.Post("/products/favorite/toggle/{product_id}/", s.toggleFavorite)
	r.Get("/products/favorite/check/{product_id}/", s.checkFavorite)

	log.Printf("stub storefront listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("stub storefront failed: %v", err)
	}
}

func (s *stub) summary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.lines))
	for id := range s.lines {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	snap := domain.CartSnapshot{Items: []domain.CartLine{}}
	total := decimal.Zero
	for _, id := range ids {
		l := s.lines[id]
		p := s.products[l.productID]
		subtotal := p.price.Mul(decimal.NewFromInt(int64(l.quantity)))
		snap.Items = append(snap.Items, domain.CartLine{
			ID:        l.id,
			ProductID: l.productID,
			Name:      p.name,
			Quantity:  l.quantity,
			Subtotal:  domain.NewMoney(subtotal),
		})
		snap.ItemCount += l.quantity
		total = total.Add(subtotal)
	}
	snap.Total = domain.NewMoney(total)
	respondJSON(w, http.StatusOK, snap)
}

func (s *stub) addItem(w http.ResponseWriter, r *http.Request) {
	if !requireToken(w, r) {
		return
	}
	productID, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[productID]; !exists {
		respondJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Товар не найден"})
		return
	}

	quantity := formQuantity(r)
	for _, l := range s.lines {
		if l.productID == productID {
			l.quantity += quantity
			respondJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	s.lines[s.nextLine] = &cartLine{id: s.nextLine, productID: productID, quantity: quantity}
	s.nextLine++
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *stub) updateQuantity(w http.ResponseWriter, r *http.Request) {
	if !requireToken(w, r) {
		return
	}
	lineID, ok := pathID(w, r, "line_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	line, exists := s.lines[lineID]
	if !exists {
		respondJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Позиция корзины не найдена"})
		return
	}
	line.quantity = formQuantity(r)
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *stub) removeLine(w http.ResponseWriter, r *http.Request) {
	if !requireToken(w, r) {
		return
	}
	lineID, ok := pathID(w, r, "line_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.lines[lineID]; !exists {
		respondJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Позиция корзины не найдена"})
		return
	}
	delete(s.lines, lineID)
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *stub) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("csrfmiddlewaretoken") == "" {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	productID, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites[productID] = !s.favorites[productID]
	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"is_favorite": s.favorites[productID],
	})
}

func (s *stub) checkFavorite(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, map[string]any{"is_favorite": s.favorites[productID]})
}

func requireToken(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("X-CSRFToken") == "" {
		w.WriteHeader(http.StatusForbidden)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func formQuantity(r *http.Request) int {
	q, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || q < 1 {
		return 1
	}
	return q
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
