package scraper

import (
	"fmt"
	"testing"
)

func newTestParser() *Parser {
	return NewParser(DefaultParserConfig())
}

func TestParse_CurrencyBeforeNumber(t *testing.T) {
	p := newTestParser()

	price, ok := p.Parse("R495")
	if !ok {
		t.Fatal("expected a price for R495")
	}
	if price != 495 {
		t.Errorf("expected 495, got %v", price)
	}
}

func TestParse_NumberBeforeCurrency(t *testing.T) {
	p := newTestParser()

	price, ok := p.Parse("499 R")
	if !ok {
		t.Fatal("expected a price for '499 R'")
	}
	if price != 499 {
		t.Errorf("expected 499, got %v", price)
	}
}

func TestParse_CommaGroupingWithCents(t *testing.T) {
	p := newTestParser()

	price, ok := p.Parse("$1,299.00")
	if !ok {
		t.Fatal("expected a price for $1,299.00")
	}
	if price != 1299 {
		t.Errorf("expected 1299, got %v", price)
	}
}

func TestParse_SpaceGrouping(t *testing.T) {
	p := newTestParser()

	// Space-grouped triplets with trailing cents normalize the same way
	// comma grouping does.
	price, ok := p.Parse("R 1 299,00")
	if !ok {
		t.Fatal("expected a price for 'R 1 299,00'")
	}
	if price != 1299 {
		t.Errorf("expected 1299, got %v", price)
	}
}

func TestParse_CurrencyAnchorWinsOverEarlierBareNumber(t *testing.T) {
	p := newTestParser()

	price, ok := p.Parse("2 items at $5.50 each")
	if !ok {
		t.Fatal("expected a price")
	}
	if price != 5.5 {
		t.Errorf("expected the currency-anchored 5.50, got %v", price)
	}
}

func TestParse_BareNumberFallback(t *testing.T) {
	p := newTestParser()

	price, ok := p.Parse("Price: 49")
	if !ok {
		t.Fatal("expected a fallback price for 'Price: 49'")
	}
	if price != 49 {
		t.Errorf("expected 49, got %v", price)
	}
}

func TestParse_SmallDigitsRejected(t *testing.T) {
	p := newTestParser()

	if _, ok := p.Parse("Qty: 1"); ok {
		t.Error("expected no price for a small bare digit")
	}
}

func TestParse_BelowSanityWindow(t *testing.T) {
	p := newTestParser()

	// The anchored match parses to 0.00, which fails the sanity window,
	// and the leftover fragments don't clear the bare-number floor.
	if _, ok := p.Parse("$0.005"); ok {
		t.Error("expected no price for $0.005")
	}
}

func TestParse_EmptyText(t *testing.T) {
	p := newTestParser()

	if _, ok := p.Parse(""); ok {
		t.Error("expected no price for empty text")
	}
	if _, ok := p.Parse("no numbers here"); ok {
		t.Error("expected no price for text without digits")
	}
}

func TestParse_ReparsingIsStable(t *testing.T) {
	p := newTestParser()

	price, ok := p.Parse("R1,299.00")
	if !ok {
		t.Fatal("expected a price")
	}

	again, ok := p.Parse(fmt.Sprintf("%.2f", price))
	if !ok {
		t.Fatal("expected the canonical decimal string to re-parse")
	}
	if again != price {
		t.Errorf("re-parse changed the value: %v != %v", again, price)
	}
}

func TestParse_AnchoredBoundsAreEnforced(t *testing.T) {
	p := newTestParser()

	cases := []string{"$495", "R12.50", "$999,999.00"}
	for _, text := range cases {
		price, ok := p.Parse(text)
		if !ok {
			t.Errorf("expected a price for %q", text)
			continue
		}
		if price <= 0.01 || price >= 1000000 {
			t.Errorf("accepted anchored price %v outside the sanity window for %q", price, text)
		}
	}
}

func TestParse_ConfigurableThresholds(t *testing.T) {
	p := NewParser(ParserConfig{MinPrice: 0.01, MaxPrice: 100, BareNumberFloor: 500})

	if _, ok := p.Parse("$250"); ok {
		// 250 fails the tightened window and the fallback floor.
		t.Error("expected 250 to be rejected with MaxPrice 100 and floor 500")
	}

	price, ok := p.Parse("$75")
	if !ok || price != 75 {
		t.Errorf("expected 75 inside the tightened window, got %v, %v", price, ok)
	}
}
