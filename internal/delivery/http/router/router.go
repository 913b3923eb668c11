// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"counsel/internal/delivery/http/middleware"
	"counsel/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	NotificationHandler *handler.NotificationHandler
	DeviceHandler       *handler.DeviceHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	notificationHandler *handler.NotificationHandler
	deviceHandler       *handler.DeviceHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		notificationHandler: params.NotificationHandler,
		deviceHandler:       params.DeviceHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Notification routes require authentication
	notificationGroup := e.Group("/notifications")
	notificationGroup.Use(r.authMiddleware.Authenticate)
	{
		notificationGroup.GET("", r.notificationHandler.GetNotifications)
		notificationGroup.POST("", r.notificationHandler.CreateNotification)
		notificationGroup.GET("/unread-count", r.notificationHandler.GetUnreadCount)
		notificationGroup.PATCH("/:id/read", r.notificationHandler.MarkAsRead)
		notificationGroup.POST("/read-all", r.notificationHandler.MarkAllAsRead)
		notificationGroup.DELETE("/:id", r.notificationHandler.DeleteNotification)
	}

	// Device registration routes
	deviceGroup := e.Group("/devices")
	deviceGroup.Use(r.authMiddleware.Authenticate)
	{
		deviceGroup.POST("", r.deviceHandler.RegisterDevice)
		deviceGroup.DELETE("", r.deviceHandler.UnregisterDevice)
	}
}
