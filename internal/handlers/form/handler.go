package form

import (
	"careops/infras/otel"
	"careops/internal/domains/form/model/dto"
	"careops/internal/domains/form/service"
	"careops/shared/constant"
	"careops/shared/validator"
	"careops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Form
	otel    otel.Otel
}

func New(service service.Form, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/forms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateForm)
		routerGroup.Get("/", handler.GetForms)
		routerGroup.Get("/{id}", handler.GetFormByID)
		routerGroup.Patch("/{id}", handler.UpdateForm)
		routerGroup.Put("/{id}", handler.UpdateForm)
	})
}

// CreateForm sends a new form.
// @Summary Create a form
// @Tags Form
// @Accept json
// @Produce json
// @Param request body dto.CreateFormRequest true "Create Form Request"
// @Success 201 {object} dto.FormResponse
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/forms [post]
func (handler *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateForm")
	defer scope.End()

	req := dto.CreateFormRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	form, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create form")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Form created " + form.ID)

	response.WithJSON(w, http.StatusCreated, form)
}

// GetForms lists forms, most recently sent first.
// @Summary Get all forms
// @Tags Form
// @Produce json
// @Param status query string false "pending or completed"
// @Param type query string false "intake, agreement or feedback"
// @Success 200 {array} dto.FormResponse
// @Failure 500 {object} response.Message
// @Router /api/forms [get]
func (handler *Handler) GetForms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetForms")
	defer scope.End()

	query := dto.FormQuery{}
	query.FromRequest(r)

	forms, err := handler.service.GetAll(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get forms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, forms)
}

// @Summary Get a form by ID
// @Tags Form
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} response.Message
// @Router /api/forms/{id} [get]
func (handler *Handler) GetFormByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFormByID")
	defer scope.End()

	form, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get form by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, form)
}

// UpdateForm applies a partial update. completedAt follows status.
// @Summary Update a form by ID
// @Tags Form
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param request body dto.UpdateFormRequest true "Update Form Request"
// @Success 200 {object} dto.FormResponse
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /api/forms/{id} [patch]
func (handler *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateForm")
	defer scope.End()

	req := dto.UpdateFormRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	form, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update form")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, form)
}
