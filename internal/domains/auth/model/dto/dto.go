package dto

import (
	"careops/infras/jwt"
	userModel "careops/internal/domains/user/model"
	userDto "careops/internal/domains/user/model/dto"
	"careops/shared/constant"
	gModel "careops/shared/model"
	"careops/shared/timezone"

	"github.com/google/uuid"
)

// LoginRequest carries the credentials. The password is accepted but never verified.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password"`
}

// ToUserModel builds the account created on the first login of an unknown email.
func (r *LoginRequest) ToUserModel() userModel.User {
	email := userModel.NormalizeEmail(r.Email)

	return userModel.User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: userModel.DefaultFirstName(email),
		Role:      constant.RoleStaff,
		Metadata:  gModel.NewMetadata(constant.ContextGuest, timezone.Now()),
	}
}

// LoginResponse is the user object with the issued token pair alongside.
type LoginResponse struct {
	userDto.UserResponse
	TokenResponse
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

func (t *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	t.AccessToken = tokenPair.AccessToken
	t.RefreshToken = tokenPair.RefreshToken
	t.TokenType = tokenPair.TokenType
	t.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
