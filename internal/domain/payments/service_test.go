package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/storage"
)

func TestTotals(t *testing.T) {
	got := Totals([]Payment{
		{Status: StatusPaid, Amount: decimal.NewFromInt(1000)},
		{Status: StatusPaid, Amount: decimal.NewFromInt(500)},
		{Status: StatusOverdue, Amount: decimal.NewFromInt(200)},
	})
	if !got[StatusPaid].Equal(decimal.NewFromInt(1500)) || !got[StatusOverdue].Equal(decimal.NewFromInt(200)) {
		t.Fatalf("totals = %v", got)
	}
	if !got[StatusPending].IsZero() {
		t.Fatalf("pending = %v", got[StatusPending])
	}
}

func TestCreateRejectsZeroAmount(t *testing.T) {
	s := NewService(api.New("http://127.0.0.1:1", storage.NewMemory()))
	if _, err := s.Create(context.Background(), Form{MemberID: "m1"}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err = %v", err)
	}
}
