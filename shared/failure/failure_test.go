package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"careops/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequestFromString("endTime must be after startTime"), wantCode: http.StatusBadRequest, wantMsg: "endTime must be after startTime"},
		{name: "bad request from error", err: failure.BadRequest(errors.New("unexpected EOF")), wantCode: http.StatusBadRequest, wantMsg: "unexpected EOF"},
		{name: "unauthorized", err: failure.Unauthorized("Not authenticated"), wantCode: http.StatusUnauthorized, wantMsg: "Not authenticated"},
		{name: "not found", err: failure.NotFound("booking not found"), wantCode: http.StatusNotFound, wantMsg: "booking not found"},
		{name: "conflict", err: failure.Conflict("sku already exists"), wantCode: http.StatusConflict, wantMsg: "sku already exists"},
		{name: "too many requests", err: failure.TooManyRequests("slow down"), wantCode: http.StatusTooManyRequests, wantMsg: "slow down"},
		{name: "invalid date", err: failure.InvalidDateParam, wantCode: http.StatusBadRequest, wantMsg: "invalid date parameter, expected RFC3339 or YYYY-MM-DD"},
		{name: "invalid bool", err: failure.InvalidBoolParam, wantCode: http.StatusBadRequest, wantMsg: "invalid boolean parameter"},
		{name: "forbidden", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "plain error", err: errors.New("pq: connection refused"), want: http.StatusInternalServerError},
		{name: "wrapped failure", err: fmt.Errorf("failed to update booking: %w", failure.NotFound("booking not found")), want: http.StatusNotFound},
		{name: "nil", err: nil, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestIsClientError(t *testing.T) {
	assert.True(t, failure.IsClientError(failure.NotFound("contact not found")))
	assert.True(t, failure.IsClientError(fmt.Errorf("wrapped: %w", failure.Conflict("duplicate"))))
	assert.False(t, failure.IsClientError(errors.New("database error")))
	assert.False(t, failure.IsClientError(&failure.Failure{Code: http.StatusServiceUnavailable, Message: "down"}))
}
