package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/F-Parkar/price-tracker/models"
	"github.com/F-Parkar/price-tracker/repository"
	"github.com/F-Parkar/price-tracker/scraper"

	"github.com/andybalholm/cascadia"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type Handlers struct {
	productRepo *repository.ProductRepository
	fetcher     *scraper.PriceFetcher
	validate    *validator.Validate
}

func NewHandlers(productRepo *repository.ProductRepository, fetcher *scraper.PriceFetcher) *Handlers {
	return &Handlers{
		productRepo: productRepo,
		fetcher:     fetcher,
		validate:    validator.New(),
	}
}

// AddProduct adds a new product to track. The initial price is detected
// before the row is inserted, so a product without a findable price is
// rejected up front with a hint.
func (h *Handlers) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req models.AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if req.CSSSelector != "" {
		if _, err := cascadia.Parse(req.CSSSelector); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid CSS selector")
			return
		}
	}

	log.Printf("Detecting price for new product: %s", req.Name)
	price, ok := h.fetcher.FetchPrice(r.Context(), req.URL, req.CSSSelector, req.UseBrowser)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity,
			"Could not detect price. Try enabling browser rendering or provide a CSS selector.")
		return
	}

	product, err := h.productRepo.AddProduct(&req, price)
	if err != nil {
		log.Printf("Failed to add product: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to add product")
		return
	}

	if err := h.productRepo.AddPriceHistory(product.ID, price); err != nil {
		log.Printf("Failed to record initial price for %s: %v", product.Name, err)
	}

	writeJSON(w, http.StatusCreated, product)
}

// GetProducts returns all tracked products
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetProducts()
	if err != nil {
		log.Printf("Failed to get products: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get products")
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct returns one tracked product
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.productRepo.GetProductByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product from tracking
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.productRepo.DeleteProduct(id); err != nil {
		log.Printf("Failed to delete product %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CheckPriceNow re-checks one product's price immediately
func (h *Handlers) CheckPriceNow(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.productRepo.GetProductByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	price, found := h.fetcher.FetchPrice(r.Context(), product.URL, product.GetSelector(), product.UseBrowser)
	if !found {
		writeError(w, http.StatusUnprocessableEntity, "Could not detect price")
		return
	}

	if err := h.productRepo.UpdateProductPrice(product.ID, price); err != nil {
		log.Printf("Failed to update price for %s: %v", product.Name, err)
		writeError(w, http.StatusInternalServerError, "Failed to update price")
		return
	}
	if err := h.productRepo.AddPriceHistory(product.ID, price); err != nil {
		log.Printf("Failed to add price history for %s: %v", product.Name, err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": product.ID,
		"price":      price,
	})
}

// GetPriceHistory returns recorded price points for a product
func (h *Handlers) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, _ = strconv.Atoi(l)
	}

	history, err := h.productRepo.GetPriceHistory(id, limit)
	if err != nil {
		log.Printf("Failed to get price history for %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to get price history")
		return
	}

	if history == nil {
		history = []models.PriceHistory{}
	}
	writeJSON(w, http.StatusOK, history)
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
