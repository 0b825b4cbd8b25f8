package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vitrine/internal/service"
	"github.com/Skotchmaster/vitrine/internal/transport"
	"github.com/Skotchmaster/vitrine/pkg/logging"
	middleware "github.com/Skotchmaster/vitrine/pkg/middleware/auth"
)

type LojistaHTTP struct {
	Svc *service.LojistaService
}

func (h *LojistaHTTP) CreateLojista(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "lojista.create")

	userID, err := middleware.UserID(c)
	if err != nil {
		l.Warn("create_lojista_error", "status", 401, "reason", "no user in context", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.LojistaRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "create_lojista_error", err)
	}

	lojista, err := h.Svc.Create(ctx, userID, req)
	if err != nil {
		return fail(l, "create_lojista_error", err)
	}

	l.Info("create_lojista_success", "lojista_id", lojista.ID)
	return c.JSON(http.StatusCreated, lojista)
}

func (h *LojistaHTTP) GetLojistas(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "lojista.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "get_lojistas_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *LojistaHTTP) GetMyLojistas(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "lojista.my")

	userID, err := middleware.UserID(c)
	if err != nil {
		l.Warn("get_my_lojistas_error", "status", 401, "reason", "no user in context", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.ListMine(ctx, userID)
	if err != nil {
		return fail(l, "get_my_lojistas_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *LojistaHTTP) GetLojista(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "lojista.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "get_lojista_error", err)
	}

	lojista, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_lojista_error", err)
	}
	return c.JSON(http.StatusOK, lojista)
}

func (h *LojistaHTTP) PatchLojista(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "lojista.patch")

	userID, err := middleware.UserID(c)
	if err != nil {
		l.Warn("patch_lojista_error", "status", 401, "reason", "no user in context", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "patch_lojista_error", err)
	}

	var req transport.PatchLojistaRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "patch_lojista_error", err)
	}

	lojista, err := h.Svc.Update(ctx, userID, id, req)
	if err != nil {
		return fail(l, "patch_lojista_error", err)
	}

	l.Info("patch_lojista_success", "lojista_id", id)
	return c.JSON(http.StatusOK, lojista)
}

func (h *LojistaHTTP) DeleteLojista(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "lojista.delete")

	userID, err := middleware.UserID(c)
	if err != nil {
		l.Warn("delete_lojista_error", "status", 401, "reason", "no user in context", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "delete_lojista_error", err)
	}

	if err := h.Svc.Delete(ctx, userID, id); err != nil {
		return fail(l, "delete_lojista_error", err)
	}

	l.Info("delete_lojista_success", "lojista_id", id)
	return c.NoContent(http.StatusNoContent)
}
