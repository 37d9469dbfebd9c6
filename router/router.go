package router

import (
	"github.com/labstack/echo/v4"

	agreementCtrl "github.com/lcorrigan704/client-management-system/pkg/agreement/controller"
	authCtrl "github.com/lcorrigan704/client-management-system/pkg/auth/controller"
	authSvc "github.com/lcorrigan704/client-management-system/pkg/auth/service"
	clientCtrl "github.com/lcorrigan704/client-management-system/pkg/client/controller"
	"github.com/lcorrigan704/client-management-system/pkg/middleware"
	proposalCtrl "github.com/lcorrigan704/client-management-system/pkg/proposal/controller"
)

func New(
	e *echo.Echo,
	auth authSvc.AuthService,
	aCtrl authCtrl.AuthController,
	cCtrl clientCtrl.ClientController,
	agCtrl agreementCtrl.AgreementController,
	prCtrl proposalCtrl.ProposalController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.Session(auth))

	e.GET("/health", healthCtrl.Health)
	e.POST("/auth/login", aCtrl.Login)

	api := e.Group("", middleware.RequireUser())

	api.POST("/auth/logout", aCtrl.Logout)
	api.GET("/auth/whoami", aCtrl.WhoAmI)
	api.GET("/users/search", aCtrl.SearchUsers)

	api.GET("/clients", cCtrl.List)
	api.POST("/clients", cCtrl.Create)
	api.GET("/clients/:id", cCtrl.Get)
	api.PUT("/clients/:id", cCtrl.Update)
	api.DELETE("/clients/:id", cCtrl.Delete)

	api.POST("/clients/:id/agreements", agCtrl.Create)
	api.GET("/agreements", agCtrl.List)
	api.GET("/agreements/:id", agCtrl.Get)
	api.PUT("/agreements/:id", agCtrl.Update)
	api.DELETE("/agreements/:id", agCtrl.Delete)
	api.GET("/agreements/:id/versions", agCtrl.Versions)
	api.GET("/agreements/:id/versions/export", agCtrl.ExportVersions)
	api.GET("/agreements/:id/versions/:number", agCtrl.VersionDetail)
	api.POST("/agreements/:id/versions/:number/restore", agCtrl.Restore)
	api.GET("/agreements/:id/comments", agCtrl.Comments)
	api.GET("/agreements/:id/versions/:number/comments", agCtrl.VersionComments)
	api.POST("/agreements/:id/versions/:number/comments", agCtrl.AddComment)
	api.PATCH("/agreement-comments/:comment_id/status", agCtrl.SetCommentStatus)
	api.POST("/agreement-comments/:comment_id/reaction", agCtrl.React)

	api.POST("/clients/:id/proposals", prCtrl.Create)
	api.GET("/proposals", prCtrl.List)
	api.GET("/proposals/:id", prCtrl.Get)
	api.PUT("/proposals/:id", prCtrl.Update)
	api.DELETE("/proposals/:id", prCtrl.Delete)
	api.GET("/proposals/:id/versions", prCtrl.Versions)
	api.GET("/proposals/:id/versions/export", prCtrl.ExportVersions)
	api.GET("/proposals/:id/versions/:number", prCtrl.VersionDetail)
	api.POST("/proposals/:id/versions/:number/restore", prCtrl.Restore)
	api.GET("/proposals/:id/comments", prCtrl.Comments)
	api.GET("/proposals/:id/versions/:number/comments", prCtrl.VersionComments)
	api.POST("/proposals/:id/versions/:number/comments", prCtrl.AddComment)
	api.PATCH("/proposal-comments/:comment_id/status", prCtrl.SetCommentStatus)
	api.POST("/proposal-comments/:comment_id/reaction", prCtrl.React)

	return e
}
