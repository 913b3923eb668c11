package push

import (
	"context"

	"counsel/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// firebaseService implements PushService using Firebase Cloud Messaging.
// Used when devices register native FCM tokens instead of Expo tokens.
type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates an FCM-backed push service.
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.PushService, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{
		client: client,
	}, nil
}

// Send delivers one message to one FCM token.
func (s *firebaseService) Send(ctx context.Context, msg *service.PushMessage) error {
	message := &messaging.Message{
		Token: msg.To,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			return errors.Wrap(err, "push token rejected by FCM")
		}

		return errors.Wrap(err, "failed to send FCM message")
	}

	return nil
}
