package validate

import (
	"errors"
	"math"
	"testing"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
)

func validOrder() *domain.Order {
	return &domain.Order{
		ID:        "O1",
		Status:    domain.StatusPending,
		Amount:    10,
		CreatedAt: 1,
		UpdatedAt: 1,
	}
}

func TestValidateOrder_OK(t *testing.T) {
	if err := ValidateOrder(validOrder()); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}
}

func TestValidateOrder_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Order)
	}{
		{"nil order", nil},
		{"empty id", func(o *domain.Order) { o.ID = "" }},
		{"unknown status", func(o *domain.Order) { o.Status = "SHIPPED" }},
		{"negative amount", func(o *domain.Order) { o.Amount = -1 }},
		{"NaN amount", func(o *domain.Order) { o.Amount = math.NaN() }},
		{"Inf amount", func(o *domain.Order) { o.Amount = math.Inf(1) }},
		{"zero createdAt", func(o *domain.Order) { o.CreatedAt = 0 }},
		{"zero updatedAt", func(o *domain.Order) { o.UpdatedAt = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var order *domain.Order
			if tt.mutate != nil {
				order = validOrder()
				tt.mutate(order)
			}
			err := ValidateOrder(order)
			if !errors.Is(err, ErrInvalidOrder) {
				t.Fatalf("want ErrInvalidOrder, got %v", err)
			}
		})
	}
}

func TestValidateOrderID(t *testing.T) {
	valid := []string{"O1", "abc-123", "a_b-C", "x"}
	for _, id := range valid {
		if err := ValidateOrderID(id); err != nil {
			t.Fatalf("id %q rejected: %v", id, err)
		}
	}

	invalid := []string{"", "has space", "semi;colon", "тест", "a/b"}
	for _, id := range invalid {
		if err := ValidateOrderID(id); err == nil {
			t.Fatalf("id %q accepted", id)
		}
	}

	// ровно 128 символов — верхняя граница включительно
	long := make([]byte, 128)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateOrderID(string(long)); err != nil {
		t.Fatalf("128-char id rejected: %v", err)
	}
	if err := ValidateOrderID(string(long) + "a"); err == nil {
		t.Fatalf("129-char id accepted")
	}
}

func TestValidateBatchSize(t *testing.T) {
	if got, err := ValidateBatchSize(0, 100); err != nil || got != 100 {
		t.Fatalf("default: got (%d, %v)", got, err)
	}
	if got, err := ValidateBatchSize(10, 100); err != nil || got != 10 {
		t.Fatalf("explicit: got (%d, %v)", got, err)
	}
	if _, err := ValidateBatchSize(-1, 100); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("negative size accepted: %v", err)
	}
	if _, err := ValidateBatchSize(1001, 100); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("oversized chunk accepted: %v", err)
	}
}

func TestValidIdempotencyKey(t *testing.T) {
	if !ValidIdempotencyKey("abc-123") {
		t.Fatalf("valid key rejected")
	}
	if ValidIdempotencyKey("") || ValidIdempotencyKey("bad key!") {
		t.Fatalf("invalid key accepted")
	}
}
