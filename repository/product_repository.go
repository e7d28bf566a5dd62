package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/F-Parkar/price-tracker/database"
	"github.com/F-Parkar/price-tracker/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// AddProduct adds a new product to track with its initially detected price
func (r *ProductRepository) AddProduct(req *models.AddProductRequest, initialPrice float64) (*models.Product, error) {
	query := `
		INSERT INTO products (name, url, email, css_selector, current_price, use_browser, last_checked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, name, url, email, css_selector, current_price, use_browser, last_checked, created_at
	`

	selector := sql.NullString{String: req.CSSSelector, Valid: req.CSSSelector != ""}

	var product models.Product
	now := time.Now()
	err := database.DB.QueryRow(query, req.Name, req.URL, req.Email, selector, initialPrice, req.UseBrowser, now).Scan(
		&product.ID, &product.Name, &product.URL, &product.Email,
		&product.CSSSelector, &product.CurrentPrice, &product.UseBrowser,
		&product.LastChecked, &product.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to add product: %v", err)
	}

	return &product, nil
}

// GetProducts returns all tracked products
func (r *ProductRepository) GetProducts() ([]models.Product, error) {
	query := `
		SELECT id, name, url, email, css_selector, current_price, use_browser, last_checked, created_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := database.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %v", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID, &product.Name, &product.URL, &product.Email,
			&product.CSSSelector, &product.CurrentPrice, &product.UseBrowser,
			&product.LastChecked, &product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %v", err)
		}
		products = append(products, product)
	}

	return products, nil
}

// GetProductByID returns a tracked product by ID
func (r *ProductRepository) GetProductByID(id int) (*models.Product, error) {
	query := `
		SELECT id, name, url, email, css_selector, current_price, use_browser, last_checked, created_at
		FROM products
		WHERE id = $1
	`

	var product models.Product
	err := database.DB.QueryRow(query, id).Scan(
		&product.ID, &product.Name, &product.URL, &product.Email,
		&product.CSSSelector, &product.CurrentPrice, &product.UseBrowser,
		&product.LastChecked, &product.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %v", err)
	}

	return &product, nil
}

// UpdateProductPrice updates the current price and last checked time
func (r *ProductRepository) UpdateProductPrice(id int, price float64) error {
	query := `
		UPDATE products
		SET current_price = $2, last_checked = $3
		WHERE id = $1
	`

	_, err := database.DB.Exec(query, id, price, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update product price: %v", err)
	}

	return nil
}

// DeleteProduct removes a product from tracking
func (r *ProductRepository) DeleteProduct(id int) error {
	query := `DELETE FROM products WHERE id = $1`
	_, err := database.DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %v", err)
	}
	return nil
}

// AddPriceHistory records a price point for a product
func (r *ProductRepository) AddPriceHistory(productID int, price float64) error {
	query := `
		INSERT INTO price_history (product_id, price, checked_at)
		VALUES ($1, $2, $3)
	`

	_, err := database.DB.Exec(query, productID, price, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add price history: %v", err)
	}

	return nil
}

// GetPriceHistory returns price history for a product
func (r *ProductRepository) GetPriceHistory(productID int, limit int) ([]models.PriceHistory, error) {
	if limit <= 0 {
		limit = 50 // default limit
	}

	query := `
		SELECT id, product_id, price, checked_at
		FROM price_history
		WHERE product_id = $1
		ORDER BY checked_at DESC
		LIMIT $2
	`

	rows, err := database.DB.Query(query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get price history: %v", err)
	}
	defer rows.Close()

	var history []models.PriceHistory
	for rows.Next() {
		var entry models.PriceHistory
		err := rows.Scan(&entry.ID, &entry.ProductID, &entry.Price, &entry.CheckedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price history: %v", err)
		}
		history = append(history, entry)
	}

	return history, nil
}
