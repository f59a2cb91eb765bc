package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/domain/supplements"
)

var (
	whey = supplements.Supplement{ID: "s1", Name: "Whey", Price: decimal.NewFromInt(2499), Stock: 5}
	bcaa = supplements.Supplement{ID: "s2", Name: "BCAA", Price: decimal.RequireFromString("899.50"), Stock: 1}
)

func TestAddSameItemIncrementsLine(t *testing.T) {
	c := New()
	_ = c.Add(whey)
	_ = c.Add(whey)
	lines := c.Lines()
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("lines = %+v", lines)
	}
}

func TestDecrementLastUnitRemovesLine(t *testing.T) {
	c := New()
	_ = c.Add(whey)
	_ = c.Add(bcaa)
	if err := c.Decrement("s1"); err != nil {
		t.Fatal(err)
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0].Supplement.ID != "s2" {
		t.Fatalf("lines = %+v", lines)
	}
	if err := c.Decrement("s1"); !errors.Is(err, ErrNotInCart) {
		t.Fatalf("err = %v", err)
	}
}

func TestTotalIsSumOfPriceTimesQuantity(t *testing.T) {
	c := New()
	_ = c.Add(whey)
	_ = c.Add(whey)
	_ = c.Add(bcaa)
	want := decimal.RequireFromString("5897.50")
	if !c.Total().Equal(want) {
		t.Fatalf("total = %s, want %s", c.Total(), want)
	}
	if c.Count() != 3 {
		t.Fatalf("count = %d", c.Count())
	}
}

func TestAddRespectsStock(t *testing.T) {
	c := New()
	if err := c.Add(bcaa); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(bcaa); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("err = %v", err)
	}
	if err := c.Add(supplements.Supplement{ID: "s3", Stock: 0}); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("err = %v", err)
	}
}

func TestOrderRequest(t *testing.T) {
	c := New()
	_ = c.Add(whey)
	_ = c.Add(bcaa)
	_ = c.Add(whey)
	r := c.Order("m7")
	if r.MemberID != "m7" || len(r.Items) != 2 || r.Items[0].Quantity != 2 || !r.Total.Equal(c.Total()) {
		t.Fatalf("request = %+v", r)
	}
	c.Clear()
	if !c.Empty() {
		t.Fatal("not empty after Clear")
	}
}
