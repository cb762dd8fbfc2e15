package validator_test

import (
	"careops/shared/failure"
	"careops/shared/validator"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactLike struct {
	Name     string `json:"name"     validate:"required,notblank"`
	Email    string `json:"email"    validate:"required,email"`
	Age      int    `json:"age"      validate:"gte=0,lte=120"`
	Category string `json:"category" validate:"omitempty,oneof=user admin guest"`
}

type window struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime"   validate:"required,gtfield=StartTime"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        contactLike
		expectedErr string
	}{
		{
			name: "valid struct",
			data: contactLike{Name: "Alice", Email: "alice@example.com", Age: 25, Category: "user"},
		},
		{
			name:        "missing name reports json field name",
			data:        contactLike{Email: "alice@example.com"},
			expectedErr: "name is required",
		},
		{
			name:        "blank name",
			data:        contactLike{Name: "   ", Email: "alice@example.com"},
			expectedErr: "name must not be blank",
		},
		{
			name:        "invalid email",
			data:        contactLike{Name: "Alice", Email: "invalid-email"},
			expectedErr: "email must be a valid email address",
		},
		{
			name:        "age out of range",
			data:        contactLike{Name: "Alice", Email: "alice@example.com", Age: 150},
			expectedErr: "age must be less than or equal to 120",
		},
		{
			name:        "invalid category",
			data:        contactLike{Name: "Alice", Email: "alice@example.com", Category: "invalid"},
			expectedErr: "category must be one of user admin guest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectedErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.expectedErr, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateStruct_GtField(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	err := validator.ValidateStruct(&window{StartTime: start, EndTime: start})
	require.Error(t, err)
	assert.Equal(t, "endTime must be after startTime", err.Error())

	err = validator.ValidateStruct(&window{StartTime: start, EndTime: start.Add(time.Hour)})
	assert.NoError(t, err)
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid email", field: "test@example.com", tag: "email"},
		{name: "invalid email", field: "invalid-email", tag: "email", expectError: true},
		{name: "valid uuid", field: "550e8400-e29b-41d4-a716-446655440000", tag: "uuid"},
		{name: "invalid uuid", field: "nope", tag: "uuid", expectError: true},
		{name: "valid oneof", field: "admin", tag: "oneof=user admin guest"},
		{name: "invalid oneof", field: "invalid", tag: "oneof=user admin guest", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"name":"Alice","email":"alice@example.com","age":25,"category":"user"}`,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"name":"Alice","email":"invalid-email"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Alice","email":}`,
			expectError: true,
		},
		{
			name:        "wrong type",
			jsonBody:    `{"name":"Alice","email":"alice@example.com","age":"old"}`,
			expectError: true,
		},
		{
			name:        "trailing document",
			jsonBody:    `{"name":"Alice","email":"alice@example.com"} {"name":"Bob"}`,
			expectError: true,
		},
		{
			name:        "empty body fails required fields",
			jsonBody:    ``,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data contactLike

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	var data contactLike

	err := validator.Validate(strings.NewReader(`{"name":"Alice","email":"alice@example.com","age":"old"}`), &data)
	assert.EqualError(t, err, "age must be of type int")

	err = validator.Validate(strings.NewReader(`{"name":"Alice","email":"a@b.co"}{}`), &data)
	assert.EqualError(t, err, "request body must contain a single JSON object")
}

func TestValidateStruct_UnmappedTag(t *testing.T) {
	type code struct {
		Value string `json:"code" validate:"numeric"`
	}

	err := validator.ValidateStruct(&code{Value: "abc"})

	assert.EqualError(t, err, "code is invalid")
}
