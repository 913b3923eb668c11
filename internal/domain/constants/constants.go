// Package constants defines shared constant values used across layers.
package constants

// Runtime environments.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Push notification providers.
const (
	PushProviderExpo     = "expo"
	PushProviderFirebase = "fcm"
	PushProviderDisabled = "disabled"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Notification type tags.
const (
	NotificationTypeInfo     = "info"
	NotificationTypeSecurity = "security"
	NotificationTypeCase     = "case"
)

// Event types carried on the event bus.
const (
	EventCaseSubmitted  = "case.submitted"
	EventUserLoggedIn   = "user.logged_in"
	EventUserRegistered = "user.registered"
	EventLocalDelivery  = "notification.local"
)

// Keys of the opaque notification data payload interpreted by the client
// when routing a tapped notification.
const (
	DataKeyScreen = "screen"
	DataKeyAction = "action"
)
