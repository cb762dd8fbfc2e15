package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"careops/internal/domains/booking/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusNoShow, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusConfirmed, model.StatusPending, true},
		{model.StatusCompleted, model.StatusCompleted, true},
		{model.StatusCompleted, model.StatusConfirmed, false},
		{model.StatusCancelled, model.StatusPending, false},
		{model.StatusNoShow, model.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}
