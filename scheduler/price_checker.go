package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/F-Parkar/price-tracker/models"
	"github.com/F-Parkar/price-tracker/repository"
	"github.com/F-Parkar/price-tracker/scraper"
	"github.com/F-Parkar/price-tracker/services"

	"github.com/robfig/cron/v3"
)

// PriceChecker periodically walks the product list, re-checks every price
// and emails the owner when a price changed. Pacing lives here, not in the
// scraping engine.
type PriceChecker struct {
	cron        *cron.Cron
	interval    time.Duration
	productRepo *repository.ProductRepository
	fetcher     *scraper.PriceFetcher
	mailer      *services.EmailService
}

func NewPriceChecker(interval time.Duration, fetcher *scraper.PriceFetcher, mailer *services.EmailService) *PriceChecker {
	return &PriceChecker{
		cron:        cron.New(),
		interval:    interval,
		productRepo: repository.NewProductRepository(),
		fetcher:     fetcher,
		mailer:      mailer,
	}
}

// Start schedules the recurring price check and runs one immediately.
func (pc *PriceChecker) Start() {
	spec := fmt.Sprintf("@every %s", pc.interval)
	_, err := pc.cron.AddFunc(spec, pc.checkAllPrices)
	if err != nil {
		log.Printf("Failed to schedule price checker: %v", err)
		return
	}

	go pc.checkAllPrices()

	pc.cron.Start()
	log.Printf("Price checker scheduled to run every %s", pc.interval)
}

// Stop stops the scheduled price checking
func (pc *PriceChecker) Stop() {
	if pc.cron != nil {
		pc.cron.Stop()
	}
}

// checkAllPrices checks prices for all tracked products, one at a time.
// Sequential on purpose: each check may hold a browser session, and the
// sites being polled don't deserve a thundering herd.
func (pc *PriceChecker) checkAllPrices() {
	log.Println("Starting scheduled price check for all tracked products")

	products, err := pc.productRepo.GetProducts()
	if err != nil {
		log.Printf("Failed to get tracked products: %v", err)
		return
	}

	if len(products) == 0 {
		log.Println("No products to check")
		return
	}

	log.Printf("Checking prices for %d products", len(products))

	checked, changed, misses := 0, 0, 0
	for _, product := range products {
		switch pc.checkProductPrice(product) {
		case checkChanged:
			checked++
			changed++
		case checkUnchanged:
			checked++
		case checkNoPrice:
			misses++
		}
	}

	log.Printf("Price check cycle complete: %d checked, %d changed, %d without a price", checked, changed, misses)
}

type checkResult int

const (
	checkUnchanged checkResult = iota
	checkChanged
	checkNoPrice
)

// checkProductPrice re-checks one product and records the outcome.
func (pc *PriceChecker) checkProductPrice(product models.Product) checkResult {
	log.Printf("Checking price for: %s (%s)", product.Name, product.URL)

	newPrice, ok := pc.fetcher.FetchPrice(context.Background(), product.URL, product.GetSelector(), product.UseBrowser)
	if !ok {
		log.Printf("Could not detect price for %s", product.Name)
		return checkNoPrice
	}

	if err := pc.productRepo.UpdateProductPrice(product.ID, newPrice); err != nil {
		log.Printf("Failed to update price for %s: %v", product.Name, err)
		return checkNoPrice
	}
	if err := pc.productRepo.AddPriceHistory(product.ID, newPrice); err != nil {
		log.Printf("Failed to add price history for %s: %v", product.Name, err)
	}

	if product.HasPrice() && product.GetCurrentPrice() != newPrice {
		oldPrice := product.GetCurrentPrice()
		log.Printf("Price changed for %s: R%.2f -> R%.2f", product.Name, oldPrice, newPrice)

		if err := pc.mailer.SendPriceAlert(product.Email, product.Name, oldPrice, newPrice, product.URL); err != nil {
			log.Printf("Failed to send price alert for %s: %v", product.Name, err)
		}
		return checkChanged
	}

	log.Printf("Price unchanged for %s: R%.2f", product.Name, newPrice)
	return checkUnchanged
}

// ManualCheck allows manual triggering of price checks
func (pc *PriceChecker) ManualCheck() {
	log.Println("Manual price check triggered")
	pc.checkAllPrices()
}
