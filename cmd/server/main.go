package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/lcorrigan704/client-management-system/config"
	"github.com/lcorrigan704/client-management-system/database"
	"github.com/lcorrigan704/client-management-system/router"

	// Auth
	authCtrlImp "github.com/lcorrigan704/client-management-system/pkg/auth/controllerImp"
	authSvcImp "github.com/lcorrigan704/client-management-system/pkg/auth/serviceImp"

	// Client
	clientCtrlImp "github.com/lcorrigan704/client-management-system/pkg/client/controllerImp"
	clientRepoImp "github.com/lcorrigan704/client-management-system/pkg/client/repositoryImp"

	// Agreement
	agreementCtrlImp "github.com/lcorrigan704/client-management-system/pkg/agreement/controllerImp"
	agreementRepoImp "github.com/lcorrigan704/client-management-system/pkg/agreement/repositoryImp"
	agreementSvcImp "github.com/lcorrigan704/client-management-system/pkg/agreement/serviceImp"

	// Proposal
	proposalCtrlImp "github.com/lcorrigan704/client-management-system/pkg/proposal/controllerImp"
	proposalRepoImp "github.com/lcorrigan704/client-management-system/pkg/proposal/repositoryImp"
	proposalSvcImp "github.com/lcorrigan704/client-management-system/pkg/proposal/serviceImp"

	// Health
	healthCtrlImp "github.com/lcorrigan704/client-management-system/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// 4) Auth
	authSvc := authSvcImp.New(db, cfg.SessionTTL)
	if err := authSvc.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	authCtrl := authCtrlImp.New(authSvc, cfg.CookieSecure)

	// 5) Repos/Services/Controllers
	clientCtrl := clientCtrlImp.New(clientRepoImp.New(db))

	agreementSvc := agreementSvcImp.New(db, agreementRepoImp.New(db))
	agreementCtrl := agreementCtrlImp.New(agreementSvc)

	proposalSvc := proposalSvcImp.New(db, proposalRepoImp.New(db))
	proposalCtrl := proposalCtrlImp.New(proposalSvc)

	healthCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 6) Router
	r := router.New(e, authSvc, authCtrl, clientCtrl, agreementCtrl, proposalCtrl, healthCtrl)

	// 7) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
