package health

import (
	"careops/infras/postgres"
	"careops/shared/constant"
	"careops/shared/timezone"
	"careops/transport/http/response"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	statusOK      = "ok"
	statusReady   = "ready"
	statusMessage = "Care Ops Hub API is running!"

	readyTimeout = 2 * time.Second
)

type Response struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type ReadyResponse struct {
	Status string   `json:"status"`
	Checks []string `json:"checks"`
}

// Check probes one backing service.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Handler struct {
	checks []Check
}

// New checks the write pool and Redis on readiness probes.
func New(db *postgres.Connection, redisClient *goRedis.Client) Handler {
	return NewWithChecks(
		Check{Name: "postgres", Ping: db.Write.PingContext},
		Check{Name: "redis", Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
	)
}

func NewWithChecks(checks ...Check) Handler {
	return Handler{checks: checks}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
	router.Get("/health/ready", handler.Ready)
}

// Health reports liveness. Once shutdown starts the server answers 503 before
// this handler is reached.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Router /api/health [get]
func (handler *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, Response{
		Status:    statusOK,
		Message:   statusMessage,
		Timestamp: timezone.Format(timezone.Now(), constant.DateFormat),
	})
}

// Ready pings every dependency and answers 503 on the first failure.
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} response.Message
// @Router /api/health/ready [get]
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	passed := make([]string, 0, len(handler.checks))

	for _, check := range handler.checks {
		if err := check.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("check", check.Name).Msg("readiness check failed")
			response.WithUnhealthy(w)

			return
		}

		passed = append(passed, check.Name)
	}

	response.WithJSON(w, http.StatusOK, ReadyResponse{Status: statusReady, Checks: passed})
}
