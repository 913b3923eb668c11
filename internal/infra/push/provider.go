package push

import (
	"context"
	"log/slog"

	"counsel/config"
	"counsel/internal/domain/constants"
	"counsel/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopService drops every send. Used when push delivery is disabled.
// Sandbox mode is decided above the gateway, in the orchestrator, so a
// sandbox build never reaches any PushService at all.
type noopService struct {
	logger *slog.Logger
}

func (s *noopService) Send(_ context.Context, msg *service.PushMessage) error {
	s.logger.Debug("[Push] Delivery disabled, dropping message",
		slog.String("to", msg.To),
	)

	return nil
}

// Params holds dependencies for PushService, injected by Fx.
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewPushService creates a PushService based on configuration.
func NewPushService(params Params) (service.PushService, error) {
	cfg := params.Config.Push
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.PushProviderDisabled {
		logger.Info("Push delivery not configured, using no-op service")

		return &noopService{logger: logger}, nil
	}

	switch cfg.Provider {
	case constants.PushProviderExpo:
		if cfg.Endpoint == "" {
			return nil, errors.New("endpoint is required for expo provider")
		}
		logger.Info("Using Expo push gateway",
			slog.String("endpoint", cfg.Endpoint),
		)

		return NewExpoClient(cfg.Endpoint, cfg.Timeout, logger), nil

	case constants.PushProviderFirebase:
		if params.Config.Firebase == nil || params.Config.Firebase.CredentialsPath == "" {
			return nil, errors.New("firebase credentials path is required for fcm provider")
		}
		logger.Info("Using Firebase Cloud Messaging",
			slog.String("project_id", params.Config.Firebase.ProjectID),
		)

		return NewFirebaseService(params.Ctx, params.Config.Firebase.CredentialsPath)

	default:
		return nil, errors.Errorf("unknown push provider: %s", cfg.Provider)
	}
}

// Module provides the push FX module.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewPushService),
)
