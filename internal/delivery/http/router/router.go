// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"coursehub/internal/delivery/http/middleware"
	"coursehub/internal/delivery/http/router/handler"
	"coursehub/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	userHandler       *handler.UserHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		userHandler:       params.UserHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes, no session required
	publicAuth := e.Group("/public/auth")
	{
		publicAuth.POST("/register", r.authHandler.Register)
		publicAuth.POST("/login", r.authHandler.Login)
		publicAuth.POST("/logout", r.authHandler.Logout)
	}

	// Everything under /api sits behind the session gate
	api := e.Group("/api")
	api.Use(r.sessionMiddleware.Authenticate)
	{
		api.POST("/auth/pin/verify", r.authHandler.VerifyPin)
		api.PATCH("/auth/pin/update", r.authHandler.UpdatePin)

		api.GET("/users/me", r.userHandler.Me)

		// Admin surface, gated per permission
		api.GET("/users", r.userHandler.List,
			r.sessionMiddleware.RequirePermission(entity.PermissionManage))
		api.PATCH("/users/:id/status", r.userHandler.UpdateStatus,
			r.sessionMiddleware.RequirePermission(entity.PermissionManage))
		api.PATCH("/users/:id/role", r.userHandler.UpdateRole,
			r.sessionMiddleware.RequirePermission(entity.PermissionOwn))
		api.DELETE("/users/:id", r.userHandler.Delete,
			r.sessionMiddleware.RequirePermission(entity.PermissionDelete))
	}
}
