package scraper

import "testing"

func newTestExtractor() *Extractor {
	return NewExtractor(NewParser(DefaultParserConfig()))
}

func TestExtract_SelectorTakesPrecedence(t *testing.T) {
	e := newTestExtractor()

	html := `<html><body>
		<span class="price">R99.00</span>
		<div id="target">R45.50</div>
	</body></html>`

	price, ok := e.Extract(html, "#target")
	if !ok {
		t.Fatal("expected a price")
	}
	if price != 45.5 {
		t.Errorf("expected the selector element's 45.50, got %v", price)
	}
}

func TestExtract_SelectorSkipsUnparseableElements(t *testing.T) {
	e := newTestExtractor()

	html := `<html><body>
		<i class="x">out of stock</i>
		<i class="x">R15.00</i>
	</body></html>`

	price, ok := e.Extract(html, ".x")
	if !ok {
		t.Fatal("expected a price")
	}
	if price != 15 {
		t.Errorf("expected 15 from the second matching element, got %v", price)
	}
}

func TestExtract_ItempropProbedBeforeAmount(t *testing.T) {
	e := newTestExtractor()

	// The amount element appears first in the document, but itemprop sits
	// earlier in the probe list.
	html := `<html><body>
		<div class="amount">R50</div>
		<span itemprop="price">R1,299.00</span>
	</body></html>`

	price, ok := e.Extract(html, "")
	if !ok {
		t.Fatal("expected a price")
	}
	if price != 1299 {
		t.Errorf("expected 1299 from the itemprop element, got %v", price)
	}
}

func TestExtract_PriceClassProbe(t *testing.T) {
	e := newTestExtractor()

	html := `<html><body><p class="product-price-tag">$12.99</p></body></html>`

	price, ok := e.Extract(html, "")
	if !ok {
		t.Fatal("expected a price")
	}
	if price != 12.99 {
		t.Errorf("expected 12.99, got %v", price)
	}
}

func TestExtract_DataPriceProbe(t *testing.T) {
	e := newTestExtractor()

	html := `<html><body><div data-price="89.99">$89.99</div></body></html>`

	price, ok := e.Extract(html, "")
	if !ok {
		t.Fatal("expected a price")
	}
	if price != 89.99 {
		t.Errorf("expected 89.99, got %v", price)
	}
}

func TestExtract_RawScanFindsScriptEmbeddedPrice(t *testing.T) {
	e := newTestExtractor()

	// No price-named attributes anywhere; only the raw markup scan can
	// see inside the script tag.
	html := `<html><head><script>var p = "$49.99";</script></head><body><p>Loading</p></body></html>`

	price, ok := e.Extract(html, "")
	if !ok {
		t.Fatal("expected a price from the raw scan")
	}
	if price != 49.99 {
		t.Errorf("expected 49.99, got %v", price)
	}
}

func TestExtract_NoPriceAnywhere(t *testing.T) {
	e := newTestExtractor()

	if _, ok := e.Extract(`<html><body><p>hello world</p></body></html>`, ""); ok {
		t.Error("expected no price")
	}
}

func TestExtract_MalformedMarkup(t *testing.T) {
	e := newTestExtractor()

	price, ok := e.Extract(`<div><span class="price">R20`, "")
	if !ok {
		t.Fatal("expected the parser to tolerate unclosed markup")
	}
	if price != 20 {
		t.Errorf("expected 20, got %v", price)
	}
}

func TestExtract_InvalidSelectorFallsThrough(t *testing.T) {
	e := newTestExtractor()

	html := `<html><body><span class="price">R75.00</span></body></html>`

	// A broken selector matches nothing; the probe stage still runs.
	price, ok := e.Extract(html, "p[")
	if !ok {
		t.Fatal("expected the cascade to continue past an invalid selector")
	}
	if price != 75 {
		t.Errorf("expected 75, got %v", price)
	}
}

func TestExtract_SelectorMissFallsBackToProbes(t *testing.T) {
	e := newTestExtractor()

	html := `<html><body><span class="cost">R30.00</span></body></html>`

	price, ok := e.Extract(html, "#does-not-exist")
	if !ok {
		t.Fatal("expected a price")
	}
	if price != 30 {
		t.Errorf("expected 30, got %v", price)
	}
}
