package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/client/controller"
	"github.com/lcorrigan704/client-management-system/pkg/client/repository"
	"github.com/lcorrigan704/client-management-system/pkg/web"
)

type ClientCtrl struct{ repo repository.ClientRepository }

func New(repo repository.ClientRepository) controller.ClientController {
	return &ClientCtrl{repo}
}

type clientBody struct {
	Name         *string `json:"name"`
	ContactName  *string `json:"contact_name"`
	Email        *string `json:"email"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
	Company      *string `json:"company"`
	Website      *string `json:"website"`
	Address      *string `json:"address"`
}

func (h *ClientCtrl) Create(c echo.Context) error {
	var body clientBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "bad json")
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		return badRequest(c, "name is required")
	}
	cl := &entities.Client{Name: strings.TrimSpace(*body.Name)}
	body.apply(cl)
	if err := h.repo.Create(cl); err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusCreated, cl)
}

func (h *ClientCtrl) List(c echo.Context) error {
	out, err := h.repo.List()
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClientCtrl) Get(c echo.Context) error {
	id, err := param(c)
	if err != nil {
		return badRequest(c, "bad id")
	}
	cl, err := h.repo.Get(id)
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *ClientCtrl) Update(c echo.Context) error {
	id, err := param(c)
	if err != nil {
		return badRequest(c, "bad id")
	}
	cl, err := h.repo.Get(id)
	if err != nil {
		return web.Error(c, err)
	}
	var body clientBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "bad json")
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		return badRequest(c, "name cannot be empty")
	}
	if body.Name != nil {
		cl.Name = strings.TrimSpace(*body.Name)
	}
	body.apply(cl)
	if err := h.repo.Update(cl); err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *ClientCtrl) Delete(c echo.Context) error {
	id, err := param(c)
	if err != nil {
		return badRequest(c, "bad id")
	}
	if err := h.repo.Delete(id); err != nil {
		return web.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (b *clientBody) apply(cl *entities.Client) {
	if b.ContactName != nil {
		cl.ContactName = *b.ContactName
	}
	if b.Email != nil {
		cl.Email = *b.Email
	}
	if b.ContactEmail != nil {
		cl.ContactEmail = *b.ContactEmail
	}
	if b.Phone != nil {
		cl.Phone = *b.Phone
	}
	if b.Company != nil {
		cl.Company = *b.Company
	}
	if b.Website != nil {
		cl.Website = *b.Website
	}
	if b.Address != nil {
		cl.Address = *b.Address
	}
}

func param(c echo.Context) (uint, error) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("bad id")
	}
	return uint(n), nil
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
