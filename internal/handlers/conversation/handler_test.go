package conversation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"careops/infras/otel/mocks"
	"careops/internal/domains/conversation/model/dto"
	serviceMocks "careops/internal/domains/conversation/service/mocks"
	"careops/internal/handlers/conversation"
	"careops/shared/failure"
)

func newRouter(t *testing.T) (*chi.Mux, *serviceMocks.MockConversation) {
	t.Helper()

	mockService := serviceMocks.NewMockConversation(gomock.NewController(t))
	handler := conversation.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, mockService
}

func TestHandler_GetConversations(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().GetAll(gomock.Any()).Return([]dto.ConversationResponse{{ID: "c1", Title: "Weekend cleaning"}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conversations", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lastMessage":null`)
}

func TestHandler_GetMessages_UnknownConversation(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().GetMessages(gomock.Any(), "missing").Return(nil, failure.NotFound("conversation not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conversations/missing/messages", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_CreateMessage(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expectCall bool
		wantStatus int
	}{
		{name: "created", body: `{"role":"agent","content":"We have Saturday slots."}`, expectCall: true, wantStatus: http.StatusCreated},
		{name: "unknown role", body: `{"role":"bot","content":"hi"}`, wantStatus: http.StatusBadRequest},
		{name: "empty content", body: `{"role":"user","content":""}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)

			if tt.expectCall {
				mockService.EXPECT().
					CreateMessage(gomock.Any(), dto.CreateMessageRequest{Role: "agent", Content: "We have Saturday slots."}, "c1").
					Return(dto.MessageResponse{ID: "m1", ConversationID: "c1"}, nil)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/conversations/c1/messages", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
