package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"counsel/config"
	deliverycontext "counsel/internal/delivery/context"
	"counsel/internal/domain/constants"
	"counsel/internal/domain/service"
	"counsel/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// CaseEventHandler turns platform events arriving on the bus into
// notification deliveries.
type CaseEventHandler struct {
	verifyPushAuth bool
	adminUserID    uuid.UUID
	logger         *slog.Logger
	notificationUC usecase.NotificationUsecase
}

// CaseEventHandlerParams holds dependencies for the CaseEventHandler
type CaseEventHandlerParams struct {
	fx.In

	Config         *config.Config
	Logger         *slog.Logger
	NotificationUC usecase.NotificationUsecase
}

// NewCaseEventHandler creates a new Pub/Sub push handler for platform events
func NewCaseEventHandler(params CaseEventHandlerParams) *CaseEventHandler {
	// Verify push auth only for the Google provider outside development
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	var adminUserID uuid.UUID
	if params.Config.Notification != nil && params.Config.Notification.AdminUserID != "" {
		if parsed, err := uuid.Parse(params.Config.Notification.AdminUserID); err == nil {
			adminUserID = parsed
		} else {
			params.Logger.Warn("Invalid admin user ID in config, admin copies disabled",
				slog.String("admin_user_id", params.Config.Notification.AdminUserID),
			)
		}
	}

	return &CaseEventHandler{
		verifyPushAuth: verifyPushAuth,
		adminUserID:    adminUserID,
		logger:         params.Logger,
		notificationUC: params.NotificationUC,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *CaseEventHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.Event
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Prefer the attribute over the event field for tracing continuity
	requestID := pushMsg.Message.Attributes["request_id"]
	if requestID == "" {
		requestID = event.RequestID
	}
	if requestID == "" {
		requestID = deliverycontext.GetRequestIDFromContext(ctx)
	}

	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing event",
		slog.String("event_type", event.Type),
		slog.String("user_id", event.UserID),
	)

	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		reqLogger.Error("[Worker] Invalid user ID in event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	switch event.Type {
	case constants.EventCaseSubmitted:
		h.handleCaseSubmitted(ctx, userID, &event)
	case constants.EventUserLoggedIn:
		h.handleUserLoggedIn(ctx, userID, &event)
	case constants.EventUserRegistered:
		h.handleUserRegistered(ctx, userID, &event)
	default:
		reqLogger.Info("[Worker] Ignoring unknown event type",
			slog.String("event_type", event.Type),
		)
	}

	// Deliveries are total; the message is always acked so the bus never
	// redelivers it.
	return c.NoContent(http.StatusNoContent)
}

// handleCaseSubmitted notifies the client and the intake team about a new
// case submission.
func (h *CaseEventHandler) handleCaseSubmitted(ctx context.Context, userID uuid.UUID, event *service.Event) {
	data := map[string]string{
		constants.DataKeyScreen: fmt.Sprintf("/cases/%s", event.CaseID),
		constants.DataKeyAction: "view_case",
	}
	for k, v := range event.Data {
		data[k] = v
	}

	title := event.Title
	if title == "" {
		title = "Case submitted"
	}
	body := event.Body
	if body == "" {
		body = "Your case was submitted and is being reviewed."
	}

	result := h.notificationUC.CreateNotification(ctx, usecase.CreateNotificationParams{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Type:     constants.NotificationTypeCase,
		Category: event.Type,
		Data:     data,
	})
	h.logDelivery(ctx, event, userID, result)

	if h.adminUserID != uuid.Nil {
		adminResult := h.notificationUC.CreateNotification(ctx, usecase.CreateNotificationParams{
			UserID:   h.adminUserID,
			Title:    "New case submission",
			Body:     fmt.Sprintf("Case %s was submitted.", event.CaseID),
			Type:     constants.NotificationTypeCase,
			Category: event.Type,
			Data:     data,
		})
		h.logDelivery(ctx, event, h.adminUserID, adminResult)
	}
}

// handleUserLoggedIn sends a security notice about a new sign-in.
func (h *CaseEventHandler) handleUserLoggedIn(ctx context.Context, userID uuid.UUID, event *service.Event) {
	title := event.Title
	if title == "" {
		title = "New sign-in"
	}
	body := event.Body
	if body == "" {
		body = "Your account was signed in on a new session."
	}

	result := h.notificationUC.CreateNotification(ctx, usecase.CreateNotificationParams{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Type:     constants.NotificationTypeSecurity,
		Category: event.Type,
		Data:     event.Data,
	})
	h.logDelivery(ctx, event, userID, result)
}

// handleUserRegistered welcomes a new user.
func (h *CaseEventHandler) handleUserRegistered(ctx context.Context, userID uuid.UUID, event *service.Event) {
	title := event.Title
	if title == "" {
		title = "Welcome"
	}
	body := event.Body
	if body == "" {
		body = "Your account is ready."
	}

	result := h.notificationUC.CreateNotification(ctx, usecase.CreateNotificationParams{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Type:     constants.NotificationTypeInfo,
		Category: event.Type,
		Data:     event.Data,
	})
	h.logDelivery(ctx, event, userID, result)
}

func (h *CaseEventHandler) logDelivery(ctx context.Context, event *service.Event, userID uuid.UUID, result *usecase.DeliveryResult) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	logger.Info("[Worker] Delivery finished",
		slog.String("event_type", event.Type),
		slog.String("user_id", userID.String()),
		slog.Bool("database", result.Database),
		slog.Bool("push", result.Push),
		slog.Bool("local", result.Local),
		slog.Bool("fallback", result.Fallback),
	)
}

// verifyPubSubToken validates the OIDC token Google Pub/Sub attaches to
// push deliveries.
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this push endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "https://accounts.google.com" && payload.Issuer != "accounts.google.com" {
		return errors.Errorf("unexpected token issuer: %s", payload.Issuer)
	}

	return nil
}
