package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vitrine/internal/repo"
	"github.com/Skotchmaster/vitrine/internal/service"
	"github.com/Skotchmaster/vitrine/internal/transport"
	"github.com/Skotchmaster/vitrine/pkg/logging"
	"github.com/Skotchmaster/vitrine/pkg/util"
)

type PedidoHTTP struct {
	Svc *service.PedidoService
}

func (h *PedidoHTTP) CreatePedido(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pedido.create")

	var req transport.CreatePedidoRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "create_pedido_error", err)
	}

	pedido, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_pedido_error", err)
	}

	l.Info("create_pedido_success", "pedido_id", pedido.ID)
	return c.JSON(http.StatusCreated, pedido)
}

func (h *PedidoHTTP) GetPedidos(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pedido.list")

	var f repo.PedidoFilter
	if raw := c.QueryParam("lojistaId"); raw != "" {
		id := util.ParseIntDefault(raw, -1)
		if id <= 0 {
			l.Warn("get_pedidos_error", "status", 400, "reason", "invalid lojistaId")
			return echo.NewHTTPError(http.StatusBadRequest, "lojistaId must be a positive integer")
		}
		f.LojistaID = uint(id)
	}
	f.Status = c.QueryParam("status")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	page = offset/limit + 1

	res, err := h.Svc.List(ctx, f, offset, limit)
	if err != nil {
		return fail(l, "get_pedidos_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": res.Items,
		"meta": meta(page, limit, offset, res.Total),
	})
}

func (h *PedidoHTTP) GetPedido(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pedido.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "get_pedido_error", err)
	}

	pedido, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_pedido_error", err)
	}
	return c.JSON(http.StatusOK, pedido)
}

func (h *PedidoHTTP) PatchPedido(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pedido.patch")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "patch_pedido_error", err)
	}

	var req transport.PatchPedidoRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "patch_pedido_error", err)
	}

	pedido, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "patch_pedido_error", err)
	}

	l.Info("patch_pedido_success", "pedido_id", id, "status", pedido.Status)
	return c.JSON(http.StatusOK, pedido)
}

func (h *PedidoHTTP) DeletePedido(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pedido.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "delete_pedido_error", err)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_pedido_error", err)
	}

	l.Info("delete_pedido_success", "pedido_id", id)
	return c.NoContent(http.StatusNoContent)
}
