package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"counsel/config"
	"counsel/internal/domain/constants"
	"counsel/internal/domain/service"
	mockUC "counsel/internal/mocks/usecase"
	"counsel/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, adminUserID string) (*CaseEventHandler, *mockUC.MockNotificationUsecase) {
	notificationUC := mockUC.NewMockNotificationUsecase(t)

	cfg := &config.Config{}
	cfg.Env.Env = constants.EnvDevelop
	if adminUserID != "" {
		cfg.Notification = &config.NotificationConfig{AdminUserID: adminUserID}
	}

	h := NewCaseEventHandler(CaseEventHandlerParams{
		Config:         cfg,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		NotificationUC: notificationUC,
	})

	return h, notificationUC
}

func pushRequest(t *testing.T, event *service.Event) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(raw)
	msg.Message.MessageID = uuid.NewString()
	msg.Subscription = "projects/test/subscriptions/counsel-events-sub"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func deliveredResult() *usecase.DeliveryResult {
	return &usecase.DeliveryResult{Database: true, Push: true, Local: true, Success: true}
}

func TestCaseEventHandler_CaseSubmitted_NotifiesClientAndAdmin(t *testing.T) {
	adminID := uuid.New()
	h, notificationUC := newTestHandler(t, adminID.String())

	clientID := uuid.New()
	caseID := uuid.NewString()

	var created []usecase.CreateNotificationParams
	notificationUC.EXPECT().CreateNotification(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, params usecase.CreateNotificationParams) *usecase.DeliveryResult {
			created = append(created, params)

			return deliveredResult()
		}).Times(2)

	c, rec := pushRequest(t, &service.Event{
		Type:   constants.EventCaseSubmitted,
		UserID: clientID.String(),
		CaseID: caseID,
	})

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	require.Len(t, created, 2)
	assert.Equal(t, clientID, created[0].UserID)
	assert.Equal(t, constants.NotificationTypeCase, created[0].Type)
	assert.Equal(t, "/cases/"+caseID, created[0].Data[constants.DataKeyScreen])
	assert.Equal(t, "view_case", created[0].Data[constants.DataKeyAction])

	assert.Equal(t, adminID, created[1].UserID)
	assert.Equal(t, "/cases/"+caseID, created[1].Data[constants.DataKeyScreen])
}

func TestCaseEventHandler_CaseSubmitted_NoAdminConfigured(t *testing.T) {
	h, notificationUC := newTestHandler(t, "")

	clientID := uuid.New()

	notificationUC.EXPECT().CreateNotification(mock.Anything, mock.Anything).
		Return(deliveredResult()).Once()

	c, rec := pushRequest(t, &service.Event{
		Type:   constants.EventCaseSubmitted,
		UserID: clientID.String(),
		CaseID: uuid.NewString(),
	})

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCaseEventHandler_UserLoggedIn_SecurityNotice(t *testing.T) {
	h, notificationUC := newTestHandler(t, "")

	clientID := uuid.New()

	var params usecase.CreateNotificationParams
	notificationUC.EXPECT().CreateNotification(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, p usecase.CreateNotificationParams) *usecase.DeliveryResult {
			params = p

			return deliveredResult()
		}).Once()

	c, rec := pushRequest(t, &service.Event{
		Type:   constants.EventUserLoggedIn,
		UserID: clientID.String(),
	})

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, constants.NotificationTypeSecurity, params.Type)
	assert.Equal(t, clientID, params.UserID)
}

func TestCaseEventHandler_UnknownEventTypeIsAcked(t *testing.T) {
	h, _ := newTestHandler(t, "")

	c, rec := pushRequest(t, &service.Event{
		Type:   "case.billing_cycle",
		UserID: uuid.NewString(),
	})

	// Unknown types are skipped without creating anything, and still acked.
	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCaseEventHandler_BadEnvelope(t *testing.T) {
	h, _ := newTestHandler(t, "")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader([]byte(`{"message":{"data":"%%%not-base64%%%"}}`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandlePush(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCaseEventHandler_InvalidUserID(t *testing.T) {
	h, _ := newTestHandler(t, "")

	c, rec := pushRequest(t, &service.Event{
		Type:   constants.EventCaseSubmitted,
		UserID: "not-a-uuid",
	})

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
