package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// ParserConfig holds the sanity thresholds for price validation.
// The currency-anchored window and the bare-number floor are deliberately
// separate knobs: the floor exists because fragments like "Qty: 1" are
// common, and unifying the two guards would silently change extraction
// behavior on real sites.
type ParserConfig struct {
	MinPrice        float64 // currency-anchored lower bound, exclusive
	MaxPrice        float64 // currency-anchored upper bound, exclusive
	BareNumberFloor float64 // minimum accepted on the bare-number fallback path
}

// DefaultParserConfig returns the thresholds tuned for typical product pages.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		MinPrice:        0.01,
		MaxPrice:        1000000,
		BareNumberFloor: 10,
	}
}

// Parser converts a raw text fragment into a validated numeric price.
// Recognizes exactly two currency symbols: R and $.
type Parser struct {
	config ParserConfig
}

// Currency-anchored variants, tried in order: symbol before number,
// then number before symbol. The numeric run allows comma- or
// space-grouped triplets and an optional 2-digit decimal fraction.
var currencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[$R]\s*(\d+(?:[,\s]\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d+(?:[,\s]\d{3})*(?:\.\d{2})?)\s*[$R]`),
}

var bareNumberPattern = regexp.MustCompile(`\d+(?:\.\d{2})?`)

// NewParser creates a price parser with the given thresholds.
func NewParser(config ParserConfig) *Parser {
	return &Parser{config: config}
}

// Parse extracts a numeric price from arbitrary text. It tries
// currency-anchored matching first, then falls back to any number that
// clears the bare-number floor. Returns false when nothing validates.
func (p *Parser) Parse(text string) (float64, bool) {
	text = strings.TrimSpace(text)

	for _, pattern := range currencyPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		priceStr := strings.ReplaceAll(match[1], ",", "")
		priceStr = strings.ReplaceAll(priceStr, " ", "")

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			continue
		}

		// Sanity window rejects stray digits, phone numbers, years, etc.
		if price > p.config.MinPrice && price < p.config.MaxPrice {
			return price, true
		}
	}

	// Fallback: any number in the text, but only if it clears the floor,
	// so trivial digits like quantities don't pass as prices.
	for _, numStr := range bareNumberPattern.FindAllString(text, -1) {
		price, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			continue
		}
		if price >= p.config.BareNumberFloor {
			return price, true
		}
	}

	return 0, false
}
