package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Product represents a product page being monitored for price changes.
type Product struct {
	ID           int             `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	URL          string          `json:"url" db:"url"`
	Email        string          `json:"email" db:"email"`
	CSSSelector  sql.NullString  `json:"css_selector" db:"css_selector"`
	CurrentPrice sql.NullFloat64 `json:"current_price" db:"current_price"`
	UseBrowser   bool            `json:"use_browser" db:"use_browser"`
	LastChecked  *time.Time      `json:"last_checked" db:"last_checked"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// GetCurrentPrice returns the current price as float64, or 0 if NULL
func (p *Product) GetCurrentPrice() float64 {
	if p.CurrentPrice.Valid {
		return p.CurrentPrice.Float64
	}
	return 0.0
}

// HasPrice returns true if the product has a detected price
func (p *Product) HasPrice() bool {
	return p.CurrentPrice.Valid
}

// GetSelector returns the user-supplied CSS selector, or "" if none
func (p *Product) GetSelector() string {
	if p.CSSSelector.Valid {
		return p.CSSSelector.String
	}
	return ""
}

// MarshalJSON implements custom JSON marshaling for Product
func (p *Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		*Alias
		CSSSelector  *string  `json:"css_selector"`
		CurrentPrice *float64 `json:"current_price"`
	}{
		Alias:        (*Alias)(p),
		CSSSelector:  p.getSelectorPtr(),
		CurrentPrice: p.getCurrentPricePtr(),
	})
}

func (p *Product) getSelectorPtr() *string {
	if p.CSSSelector.Valid {
		selector := p.CSSSelector.String
		return &selector
	}
	return nil
}

func (p *Product) getCurrentPricePtr() *float64 {
	if p.CurrentPrice.Valid {
		price := p.CurrentPrice.Float64
		return &price
	}
	return nil
}

// PriceHistory represents a price point in time
type PriceHistory struct {
	ID        int       `json:"id" db:"id"`
	ProductID int       `json:"product_id" db:"product_id"`
	Price     float64   `json:"price" db:"price"`
	CheckedAt time.Time `json:"checked_at" db:"checked_at"`
}

// AddProductRequest represents the request to add a new product to track
type AddProductRequest struct {
	Name        string `json:"name" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	Email       string `json:"email" validate:"required,email"`
	CSSSelector string `json:"css_selector"`
	UseBrowser  bool   `json:"use_browser"`
}
