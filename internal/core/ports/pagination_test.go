package ports

import (
	"errors"
	"testing"

	"github.com/giftvault/catalog-api/internal/core/domain"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		wantErr  bool
	}{
		{"first page", 1, 20, false},
		{"deep page", 50, 5, false},
		{"zero page", 0, 20, true},
		{"negative page", -1, 20, true},
		{"zero page size", 1, 0, true},
		{"negative page size", 1, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPagination(tt.page, tt.pageSize)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrPaginationInvalid) {
					t.Fatalf("expected ErrPaginationInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPagination_Offset(t *testing.T) {
	p, err := NewPagination(3, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Offset() != 20 {
		t.Fatalf("expected offset 20, got %d", p.Offset())
	}
	if p.Limit() != 10 {
		t.Fatalf("expected limit 10, got %d", p.Limit())
	}
}
