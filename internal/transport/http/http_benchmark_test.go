//go:build !integration

package rest_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// --- Бенчмарки ---

// Чтение заказа из прогретого кэша (X-Cache: HIT).
func BenchmarkHTTP_GetOrder(b *testing.B) {
	e := newEnv(b)

	w := e.do(http.MethodPost, "/api/orders/batch", []byte(happyBatch), idemHeaders("bench-seed"))
	if w.Code != http.StatusCreated {
		b.Fatalf("seed failed: %d", w.Code)
	}

	b.Run("cache-hit", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/orders/O1", http.NoBody)
			w := httptest.NewRecorder()
			e.router.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				b.Fatalf("want 200, got %d", w.Code)
			}
		}
	})
}

// Пакетная вставка: цена конвейера на пачку из 100 заказов.
func BenchmarkHTTP_BatchInsert(b *testing.B) {
	e := newEnv(b)

	body := []byte(batchBody(100))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := e.do(http.MethodPost, "/api/orders/batch", body, idemHeaders(fmt.Sprintf("bench-%d", i)))
		if w.Code != http.StatusCreated {
			b.Fatalf("want 201, got %d", w.Code)
		}
	}
}

func batchBody(n int) string {
	s := "["
	for i := 0; i < n; i++ {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf(`{"id":"bench-%d","status":"PENDING","amount":%d,"createdAt":1,"updatedAt":1}`, i, i)
	}
	return s + "]"
}
