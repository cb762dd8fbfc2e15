package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"careops/infras/jwt"
	"careops/infras/otel"
	"careops/internal/domains/auth/model/dto"
	userModel "careops/internal/domains/user/model"
	userDto "careops/internal/domains/user/model/dto"
	userRepository "careops/internal/domains/user/repository"
	"careops/shared"
	"careops/shared/cache"
	"careops/shared/constant"
	"careops/shared/failure"
	"careops/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, accessToken string) error
	Me(ctx context.Context) (userDto.UserResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
}

type serviceImpl struct {
	userRepo   userRepository.User
	jwtService jwt.JWT
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(userRepo userRepository.User, jwtService jwt.JWT, cache cache.RedisCache, otel otel.Otel) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cache,
		otel:       otel,
	}
}

// Login finds the user by email, creating it on first sight, and issues a
// token pair. Passwords are not checked.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.findOrCreate(ctx, req)
	if err != nil {
		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.UserResponse.FromModel(user)
	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) findOrCreate(ctx context.Context, req dto.LoginRequest) (userModel.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email")

		return user, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.ID != "" {
		return user, nil
	}

	user = req.ToUserModel()

	err = s.userRepo.Insert(ctx, user)
	if err == nil {
		log.Info().Str("userId", user.ID).Msg("created user on first login")

		return user, nil
	}

	// a concurrent login may have created the same email first
	if !shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
		log.Error().Err(err).Msg("failed to create user")

		return user, fmt.Errorf("failed to create user: %w", err)
	}

	user, err = s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return user, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// Logout revokes the access token until it would have expired anyway. A
// missing or already invalid token has nothing to revoke.
func (s *serviceImpl) Logout(ctx context.Context, accessToken string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if accessToken == "" {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(accessToken, jwt.AccessToken)
	if err != nil {
		log.Debug().Err(err).Msg("logout with unusable token")

		return nil
	}

	ttl := int(claims.RemainingTTL(timezone.Now()).Seconds())
	if ttl <= 0 {
		return nil
	}

	if err = s.cache.Save(ctx, jwt.RevocationKey(claims.TokenID()), true, ttl); err != nil {
		log.Error().Err(err).Str("tokenId", claims.TokenID()).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *serviceImpl) Me(ctx context.Context) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return res, failure.Unauthorized("Not authenticated") // nolint:wrapcheck
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get current user")

		return res, fmt.Errorf("failed to get current user: %w", err)
	}

	if user.ID == "" {
		return res, failure.Unauthorized("Not authenticated") // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}
