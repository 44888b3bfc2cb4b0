package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/service"
)

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, service.ValidateTitle("Fix the build"))
	assert.NoError(t, service.ValidateTitle(strings.Repeat("a", 255)))

	assert.ErrorIs(t, service.ValidateTitle(""), domain.ErrEmptyTitle)
	assert.ErrorIs(t, service.ValidateTitle("   "), domain.ErrEmptyTitle)
	assert.ErrorIs(t, service.ValidateTitle(strings.Repeat("a", 256)), domain.ErrTitleTooLong)
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		perPage int
		wantErr error
	}{
		{"defaults", 1, 20, nil},
		{"minimum per_page", 1, 1, nil},
		{"maximum per_page", 1, 100, nil},
		{"deep page", 9999, 50, nil},
		{"page zero", 0, 20, domain.ErrInvalidPage},
		{"negative page", -1, 20, domain.ErrInvalidPage},
		{"per_page zero", 1, 0, domain.ErrInvalidPerPage},
		{"per_page over limit", 1, 101, domain.ErrInvalidPerPage},
		{"negative per_page", 1, -5, domain.ErrInvalidPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePagination(tt.page, tt.perPage)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestResolveSort(t *testing.T) {
	tests := []struct {
		name       string
		sortBy     string
		order      string
		wantColumn string
		wantDesc   bool
	}{
		{"empty input falls back", "", "", "created_at", true},
		{"explicit asc", "deadline", "asc", "deadline", false},
		{"explicit desc", "priority", "desc", "priority", true},
		{"unknown column falls back", "password", "asc", "created_at", false},
		{"unknown order treated as desc", "status", "sideways", "status", true},
		{"injection attempt falls back", "created_at; DROP TABLE tasks", "asc", "created_at", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column, desc := service.ResolveSort(tt.sortBy, tt.order)
			assert.Equal(t, tt.wantColumn, column)
			assert.Equal(t, tt.wantDesc, desc)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, service.TotalPages(0, 20))
	assert.Equal(t, 1, service.TotalPages(1, 20))
	assert.Equal(t, 1, service.TotalPages(20, 20))
	assert.Equal(t, 2, service.TotalPages(21, 20))
	assert.Equal(t, 5, service.TotalPages(100, 20))
	assert.Equal(t, 100, service.TotalPages(100, 1))
}
