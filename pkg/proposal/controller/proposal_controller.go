package controller

import "github.com/labstack/echo/v4"

type ProposalController interface {
	Create(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error

	Versions(c echo.Context) error
	VersionDetail(c echo.Context) error
	Restore(c echo.Context) error
	ExportVersions(c echo.Context) error

	Comments(c echo.Context) error
	VersionComments(c echo.Context) error
	AddComment(c echo.Context) error
	SetCommentStatus(c echo.Context) error
	React(c echo.Context) error
}
