package scraper

import (
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// priceCandidate is a text fragment pulled from the document, tagged with
// the strategy that produced it. Lives only for the duration of one
// extraction call.
type priceCandidate struct {
	Text     string
	Strategy string // "selector", "attribute", "regex"
	Probe    string // attribute probe name, where applicable
}

// attributeProbe is one heuristic attribute-matching rule. Probes are tried
// in a fixed order that encodes a confidence prior: explicit semantic
// markers (itemprop, price-named classes) before looser ones (amount, cost).
type attributeProbe struct {
	name     string
	selector string
}

// The original probes matched attribute substrings case-insensitively;
// the lower/Title case selector variants cover the conventions seen in
// real markup.
var attributeProbes = []attributeProbe{
	{"price", "[class*='price'], [class*='Price'], [id*='price'], [id*='Price']"},
	{"itemprop-price", "[itemprop='price']"},
	{"cost", "[class*='cost'], [class*='Cost'], [id*='cost'], [id*='Cost']"},
	{"amount", "[class*='amount'], [class*='Amount']"},
	{"data-price", "[data-price]"},
	{"product-price", "[class*='product-price']"},
}

// rawPricePattern is scanned over the raw, unparsed markup. This catches
// prices embedded in script tags, data attributes, or comments that a tree
// walk would miss, at the cost of possible false positives.
var rawPricePattern = regexp.MustCompile(`[R$]\s*\d+(?:[,\s]\d{3})*(?:\.\d{2})?`)

// Extractor locates a price inside an HTML document by running a
// prioritized cascade of strategies over a parsed document tree.
type Extractor struct {
	parser *Parser
}

// NewExtractor creates an extractor that delegates fragment-to-number
// conversion to the given parser.
func NewExtractor(parser *Parser) *Extractor {
	return &Extractor{parser: parser}
}

// Extract runs the cascade over the document and returns the first
// validated price: explicit selector first, then attribute-pattern probes,
// then a regex scan of the raw markup. Returns false when every stage is
// exhausted. Malformed or partial markup never fails the call.
func (e *Extractor) Extract(html string, cssSelector string) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unparseable document: skip the tree stages, the raw scan below
		// can still find something.
		log.Printf("Failed to parse document tree: %v", err)
		doc = nil
	}

	if doc != nil {
		if cssSelector != "" {
			for _, c := range selectorCandidates(doc, cssSelector) {
				if price, ok := e.parser.Parse(c.Text); ok {
					log.Printf("Found price with CSS selector %q: %.2f", cssSelector, price)
					return price, true
				}
			}
		}

		for _, c := range attributeCandidates(doc) {
			if price, ok := e.parser.Parse(c.Text); ok {
				log.Printf("Found price with probe %q: %.2f", c.Probe, price)
				return price, true
			}
		}
	}

	for _, c := range regexCandidates(html) {
		if price, ok := e.parser.Parse(c.Text); ok {
			log.Printf("Found price with raw scan: %.2f", price)
			return price, true
		}
	}

	return 0, false
}

// selectorCandidates collects the text of every element matching the
// user-supplied selector, in document order. An invalid selector simply
// matches nothing.
func selectorCandidates(doc *goquery.Document, cssSelector string) []priceCandidate {
	var candidates []priceCandidate
	doc.Find(cssSelector).Each(func(_ int, s *goquery.Selection) {
		candidates = append(candidates, priceCandidate{
			Text:     s.Text(),
			Strategy: "selector",
		})
	})
	return candidates
}

// attributeCandidates collects elements in probe-list order, then in
// document order within each probe.
func attributeCandidates(doc *goquery.Document) []priceCandidate {
	var candidates []priceCandidate
	for _, probe := range attributeProbes {
		doc.Find(probe.selector).Each(func(_ int, s *goquery.Selection) {
			candidates = append(candidates, priceCandidate{
				Text:     s.Text(),
				Strategy: "attribute",
				Probe:    probe.name,
			})
		})
	}
	return candidates
}

// regexCandidates scans the raw markup for currency-anchored fragments,
// in order of appearance.
func regexCandidates(html string) []priceCandidate {
	var candidates []priceCandidate
	for _, match := range rawPricePattern.FindAllString(html, -1) {
		candidates = append(candidates, priceCandidate{
			Text:     match,
			Strategy: "regex",
		})
	}
	return candidates
}
