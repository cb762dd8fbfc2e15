package contact

import (
	"careops/infras/otel"
	"careops/internal/domains/contact/model/dto"
	"careops/internal/domains/contact/service"
	"careops/shared/constant"
	"careops/shared/validator"
	"careops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contacts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContact)
		routerGroup.Get("/", handler.GetContacts)
		routerGroup.Get("/{id}", handler.GetContactByID)
		routerGroup.Patch("/{id}", handler.UpdateContact)
		routerGroup.Put("/{id}", handler.UpdateContact)
		routerGroup.Delete("/{id}", handler.DeleteContact)
	})
}

// CreateContact handles the creation of a new contact.
// @Summary Create a new contact
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Create Contact Request"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/contacts [post]
func (handler *Handler) CreateContact(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContact")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	contact, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Contact created " + contact.ID)

	response.WithJSON(writer, http.StatusCreated, contact)
}

// GetContacts lists contacts, newest first.
// @Summary Get all contacts
// @Tags Contact
// @Produce json
// @Param search query string false "Case-insensitive match on name or email"
// @Param status query string false "Filter by status"
// @Success 200 {array} dto.ContactResponse
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/contacts [get]
func (handler *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContacts")
	defer scope.End()

	query := dto.ContactQuery{}
	query.FromRequest(r)

	contacts, err := handler.service.GetAll(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contacts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contacts)
}

// GetContactByID retrieves a contact by its ID.
// @Summary Get a contact by ID
// @Tags Contact
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/contacts/{id} [get]
func (handler *Handler) GetContactByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	contact, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contact)
}

// UpdateContact applies a partial update to a contact.
// @Summary Update a contact by ID
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateContactRequest true "Update Contact Request"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/contacts/{id} [patch]
func (handler *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContact")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateContactRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	contact, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contact)
}

// DeleteContact deletes a contact by its ID.
// @Summary Delete a contact by ID
// @Tags Contact
// @Param id path string true "Contact ID"
// @Success 204
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /api/contacts/{id} [delete]
func (handler *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact deleted " + id)

	response.WithNoContent(w)
}
