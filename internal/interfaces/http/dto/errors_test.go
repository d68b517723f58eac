package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"SLOT_UNAVAILABLE", http.StatusConflict},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"CLIENT_ARCHIVED", http.StatusUnprocessableEntity},
		{"COLUMN_NOT_EMPTY", http.StatusUnprocessableEntity},
		{"DOCUMENT_TOO_LARGE", http.StatusRequestEntityTooLarge},
		{"INVALID_DATE", http.StatusBadRequest},
		{"INVALID_TIME", http.StatusBadRequest},
		{"STORAGE_ERROR", http.StatusBadGateway},
		{"SOMETHING_UNMAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMetaRoundsPagesUp(t *testing.T) {
	resp := NewSuccessResponseWithMeta(nil, 21, 1, 10)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	resp = NewSuccessResponseWithMeta(nil, 20, 1, 10)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}
