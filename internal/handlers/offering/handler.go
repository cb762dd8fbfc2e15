package offering

import (
	"careops/infras/otel"
	"careops/internal/domains/offering/model/dto"
	"careops/internal/domains/offering/service"
	"careops/shared/constant"
	"careops/shared/validator"
	"careops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Offering
	otel    otel.Otel
}

func New(service service.Offering, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOffering)
		routerGroup.Get("/", handler.GetOfferings)
		routerGroup.Get("/{id}", handler.GetOfferingByID)
		routerGroup.Patch("/{id}", handler.UpdateOffering)
		routerGroup.Put("/{id}", handler.UpdateOffering)
		routerGroup.Delete("/{id}", handler.DeleteOffering)
	})
}

// CreateOffering handles the creation of a new service.
// @Summary Create a new service
// @Tags Service
// @Accept json
// @Produce json
// @Param request body dto.CreateOfferingRequest true "Create Offering Request"
// @Success 201 {object} dto.OfferingResponse
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/services [post]
func (handler *Handler) CreateOffering(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOffering")
	defer scope.End()

	req := dto.CreateOfferingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	offering, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Service created " + offering.ID)

	response.WithJSON(writer, http.StatusCreated, offering)
}

// GetOfferings lists services ordered by name.
// @Summary Get all services
// @Tags Service
// @Produce json
// @Param category query string false "Filter by category"
// @Param isActive query boolean false "Filter by active flag"
// @Success 200 {array} dto.OfferingResponse
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/services [get]
func (handler *Handler) GetOfferings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOfferings")
	defer scope.End()

	query := dto.OfferingQuery{}
	if err := query.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	offerings, err := handler.service.GetAll(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, offerings)
}

// GetOfferingByID retrieves a service by its ID.
// @Summary Get a service by ID
// @Tags Service
// @Produce json
// @Param id path string true "Offering ID"
// @Success 200 {object} dto.OfferingResponse
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/services/{id} [get]
func (handler *Handler) GetOfferingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOfferingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	offering, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, offering)
}

// UpdateOffering applies a partial update to a service.
// @Summary Update a service by ID
// @Tags Service
// @Accept json
// @Produce json
// @Param id path string true "Offering ID"
// @Param request body dto.UpdateOfferingRequest true "Update Offering Request"
// @Success 200 {object} dto.OfferingResponse
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/services/{id} [patch]
func (handler *Handler) UpdateOffering(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOffering")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateOfferingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	offering, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, offering)
}

// DeleteOffering deletes a service by its ID.
// @Summary Delete a service by ID
// @Tags Service
// @Param id path string true "Offering ID"
// @Success 204
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/services/{id} [delete]
func (handler *Handler) DeleteOffering(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOffering")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service deleted " + id)

	response.WithNoContent(w)
}
