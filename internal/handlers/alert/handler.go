package alert

import (
	"careops/infras/otel"
	"careops/internal/domains/alert/model/dto"
	"careops/internal/domains/alert/service"
	"careops/shared/constant"
	"careops/shared/validator"
	"careops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Alert
	otel    otel.Otel
}

func New(service service.Alert, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/alerts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAlert)
		routerGroup.Get("/", handler.GetAlerts)
		routerGroup.Patch("/{id}/read", handler.MarkAlertRead)
		routerGroup.Delete("/{id}", handler.DeleteAlert)
	})
}

// @Summary Create an alert
// @Tags Alert
// @Accept json
// @Produce json
// @Param request body dto.CreateAlertRequest true "Create Alert Request"
// @Success 201 {object} dto.AlertResponse
// @Failure 400 {object} response.Message
// @Router /api/alerts [post]
func (handler *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAlert")
	defer scope.End()

	req := dto.CreateAlertRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	alert, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create alert")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, alert)
}

// GetAlerts lists alerts, newest first.
// @Summary Get all alerts
// @Tags Alert
// @Produce json
// @Param isRead query bool false "Filter by read state"
// @Param type query string false "Filter by alert type"
// @Success 200 {array} dto.AlertResponse
// @Failure 400 {object} response.Message
// @Router /api/alerts [get]
func (handler *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlerts")
	defer scope.End()

	query := dto.AlertQuery{}
	if err := query.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	alerts, err := handler.service.GetAll(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get alerts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, alerts)
}

// @Summary Mark an alert as read
// @Tags Alert
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} dto.AlertResponse
// @Failure 404 {object} response.Message
// @Router /api/alerts/{id}/read [patch]
func (handler *Handler) MarkAlertRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkAlertRead")
	defer scope.End()

	alert, err := handler.service.MarkRead(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark alert as read")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, alert)
}

// @Summary Delete an alert
// @Tags Alert
// @Param id path string true "Alert ID"
// @Success 204
// @Failure 404 {object} response.Message
// @Router /api/alerts/{id} [delete]
func (handler *Handler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAlert")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete alert")

		response.WithError(w, err)

		return
	}

	response.WithNoContent(w)
}
