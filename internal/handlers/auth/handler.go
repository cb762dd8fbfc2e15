package auth

import (
	"careops/infras/jwt"
	"careops/infras/otel"
	"careops/internal/domains/auth/model/dto"
	"careops/internal/domains/auth/service"
	"careops/shared/constant"
	"careops/shared/validator"
	"careops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const messageLoggedOut = "Logged out successfully"

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the auth routes. authenticate guards the routes that need a
// current user, whether or not the rest of the API requires auth.
func (handler *Handler) Router(router chi.Router, authenticate func(http.Handler) http.Handler) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/login", handler.Login)
		routerGroup.Post("/logout", handler.Logout)
		routerGroup.Post("/refresh-token", handler.RefreshToken)
		routerGroup.With(authenticate).Get("/me", handler.Me)
		routerGroup.With(authenticate).Get("/user", handler.Me)
	})

	router.Get("/logout", handler.Logout)
}

// Login signs a user in, creating the account for an unknown email.
// @Summary Login
// @Description Passwords are not verified.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged in " + res.ID)

	response.WithJSON(w, http.StatusOK, res)
}

// Logout revokes the bearer token, if any. It always answers with a message.
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/auth/logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	token, _ := jwt.ExtractTokenFromHeader(r.Header.Get(constant.RequestHeaderAuthorization))

	if err := handler.service.Logout(ctx, token); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout user")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, messageLoggedOut)
}

// @Summary Get the current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userDto.UserResponse
// @Failure 401 {object} response.Message
// @Router /api/auth/me [get]
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	user, err := handler.service.Me(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to get current user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// @Summary Refresh the token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} response.Message
// @Failure 401 {object} response.Message
// @Router /api/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
