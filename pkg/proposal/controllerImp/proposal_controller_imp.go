package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lcorrigan704/client-management-system/pkg/export"
	"github.com/lcorrigan704/client-management-system/pkg/proposal/controller"
	"github.com/lcorrigan704/client-management-system/pkg/proposal/service"
	"github.com/lcorrigan704/client-management-system/pkg/web"
)

type ProposalCtrl struct{ svc service.ProposalService }

func New(svc service.ProposalService) controller.ProposalController {
	return &ProposalCtrl{svc}
}

type commentBody struct {
	FieldKey string   `json:"field_key"`
	Comment  string   `json:"comment"`
	Mentions []string `json:"mentions"`
}

type statusBody struct {
	Implemented bool `json:"implemented"`
}

type reactionBody struct {
	Reaction string `json:"reaction"`
}

func (h *ProposalCtrl) Create(c echo.Context) error {
	clientID, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad client id")
	}
	var in service.ProposalInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "bad json")
	}
	out, _, err := h.svc.Create(clientID, in, web.ActorID(c))
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProposalCtrl) List(c echo.Context) error {
	out, err := h.svc.List()
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalCtrl) Get(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad id")
	}
	out, err := h.svc.Get(id)
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalCtrl) Update(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad id")
	}
	var in service.ProposalInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "bad json")
	}
	out, _, err := h.svc.Update(id, in, web.ActorID(c))
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalCtrl) Delete(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad id")
	}
	if err := h.svc.Delete(id); err != nil {
		return web.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProposalCtrl) Versions(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad id")
	}
	out, err := h.svc.Versions(id)
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalCtrl) VersionDetail(c echo.Context) error {
	id, number, err := versionParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.svc.VersionDetail(id, number)
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalCtrl) Restore(c echo.Context) error {
	id, number, err := versionParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	out, _, err := h.svc.RestoreVersion(id, number, web.ActorID(c))
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalCtrl) ExportVersions(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad id")
	}
	p, err := h.svc.Get(id)
	if err != nil {
		return web.Error(c, err)
	}
	rows, err := h.svc.Versions(id)
	if err != nil {
		return web.Error(c, err)
	}
	f, err := export.VersionHistory(p.DisplayID, rows)
	if err != nil {
		return web.Error(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s-versions.xlsx"`, p.DisplayID))
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

func (h *ProposalCtrl) Comments(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad id")
	}
	out, err := h.svc.Comments(id)
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalCtrl) VersionComments(c echo.Context) error {
	id, number, err := versionParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.svc.VersionComments(id, number)
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalCtrl) AddComment(c echo.Context) error {
	id, number, err := versionParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body commentBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "bad json")
	}
	out, err := h.svc.AddComment(id, number, body.FieldKey, body.Comment, body.Mentions, web.ActorID(c))
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProposalCtrl) SetCommentStatus(c echo.Context) error {
	commentID, err := param(c, "comment_id")
	if err != nil {
		return badRequest(c, "bad comment id")
	}
	var body statusBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "bad json")
	}
	out, err := h.svc.SetCommentImplemented(commentID, body.Implemented)
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalCtrl) React(c echo.Context) error {
	commentID, err := param(c, "comment_id")
	if err != nil {
		return badRequest(c, "bad comment id")
	}
	var body reactionBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "bad json")
	}
	u := web.User(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}
	out, err := h.svc.React(commentID, u.ID, body.Reaction)
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func param(c echo.Context, name string) (uint, error) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("bad %s", name)
	}
	return uint(n), nil
}

func versionParams(c echo.Context) (uint, int, error) {
	id, err := param(c, "id")
	if err != nil {
		return 0, 0, fmt.Errorf("bad id")
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		return 0, 0, fmt.Errorf("bad version number")
	}
	return id, number, nil
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
