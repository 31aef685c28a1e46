package dto

import (
	"net/http"
	"testing"

	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{shared.CodeInvalidInput, http.StatusBadRequest},
		{shared.CodeInvalidRange, http.StatusBadRequest},
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeEntityInUse, http.StatusConflict},
		{shared.CodeInvalidTransition, http.StatusConflict},
		{shared.CodeReferentialIntegrity, http.StatusUnprocessableEntity},
		{shared.CodeOrderLocked, http.StatusUnprocessableEntity},
		{shared.CodeEmptyOrder, http.StatusUnprocessableEntity},
		{shared.CodeOverpayment, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}
