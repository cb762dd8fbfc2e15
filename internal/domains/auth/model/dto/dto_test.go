package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careops/infras/jwt"
	"careops/internal/domains/auth/model/dto"
	userModel "careops/internal/domains/user/model"
	"careops/shared/constant"
)

func TestLoginRequest_ToUserModel(t *testing.T) {
	req := dto.LoginRequest{Email: "  Alice.Smith@Example.com ", Password: "anything"}

	user := req.ToUserModel()

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice.smith@example.com", user.Email)
	assert.Equal(t, "alice.smith", user.FirstName)
	assert.Empty(t, user.LastName)
	assert.Equal(t, constant.RoleStaff, user.Role)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
}

func TestLoginResponse_JSONIsFlat(t *testing.T) {
	var res dto.LoginResponse
	res.UserResponse.FromModel(userModel.User{ID: "user-id", Email: "alice@example.com", FirstName: "alice", Role: constant.RoleStaff})
	res.FromTokenPair(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 3600})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "user-id", body["id"])
	assert.Equal(t, "alice", body["firstName"])
	assert.Equal(t, "access", body["accessToken"])
	assert.Equal(t, "Bearer", body["tokenType"])
}
