// Package wizard provides the registration-wizard bounded context module.
package wizard

import (
	"github.com/redis/go-redis/v9"

	"intake_gateway/internal/bridge"
	"intake_gateway/internal/compose"
	"intake_gateway/internal/dupgate"
	"intake_gateway/internal/events"
	apphttp "intake_gateway/internal/http"
	"intake_gateway/internal/upstream"
	"intake_gateway/internal/wizard/handler"
	"intake_gateway/internal/wizard/repository"
	"intake_gateway/internal/wizard/service"
	"intake_gateway/platform/config"
	"intake_gateway/platform/logger"
	"intake_gateway/platform/validator"
)

// Module is the wizard bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the wizard module. durations is the
// catalogue lookup backing the estimate when markup carries no weights; nil
// disables the fallback.
func NewModule(client *upstream.Client, rdb *redis.Client, cfg config.WizardConfig, durations service.DurationResolver, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	sessions := repository.New(rdb, cfg.GetSessionTTL())
	bridgeStore := bridge.NewStore(rdb, cfg.GetBridgeTTL())
	gate := dupgate.New(client, log)

	svc := service.New(client, sessions, bridgeStore, gate, compose.New(), durations, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "wizard"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts wizard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	wizard := ctx.V1.Group("/wizard")
	wizard.POST("", m.handler.Start)
	wizard.GET("/:id", m.handler.Get)
	wizard.POST("/:id/actions", m.handler.Dispatch)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
