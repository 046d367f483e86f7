// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"recallguard-server/commons"
	"recallguard-server/handlers"
	"recallguard-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering api routes")
	api := e.Group("/api")
	api.POST("/users", handlers.RegisterHandler)
	api.POST("/users/login", handlers.LoginHandler)
	api.POST("/users/requestResetPassword", handlers.RequestPasswordResetHandler)
	api.POST("/users/resetPassword", handlers.ResetPasswordHandler)
	api.POST("/users/newPassword", handlers.ChangePasswordHandler, middlewares.VerifyAuthMiddleware)
	api.GET("/users/me", handlers.GetMeHandler, middlewares.VerifyAuthMiddleware)
	api.GET("/recalls", handlers.ListRecallsHandler, middlewares.VerifyAuthMiddleware)
	commons.Logger.Info("api routes registered successfully")
}
