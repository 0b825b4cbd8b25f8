package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vitrine/internal/service"
	"github.com/Skotchmaster/vitrine/internal/transport"
	"github.com/Skotchmaster/vitrine/pkg/logging"
	"github.com/Skotchmaster/vitrine/pkg/util"
)

type ProdutoHTTP struct {
	Svc *service.ProdutoService
}

func (h *ProdutoHTTP) GetProdutos(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "produto.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "get_produtos_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProdutoHTTP) GetVitrine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "produto.vitrine")

	items, err := h.Svc.ListVitrine(ctx)
	if err != nil {
		return fail(l, "get_vitrine_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProdutoHTTP) GetVitrineByLojista(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "produto.vitrine_lojista")

	lojistaID, err := parseID(c, "lojistaId")
	if err != nil {
		return fail(l, "get_vitrine_lojista_error", err)
	}

	items, err := h.Svc.ListVitrineByLojista(ctx, lojistaID)
	if err != nil {
		return fail(l, "get_vitrine_lojista_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProdutoHTTP) SearchProdutos(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "produto.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)
	page = from/limit + 1

	res, err := h.Svc.Search(ctx, c.QueryParam("q"), from, limit)
	if err != nil {
		return fail(l, "search_produtos_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": res.Items,
		"meta": meta(page, limit, from, res.Total),
	})
}

func (h *ProdutoHTTP) GetProduto(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "produto.get")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "get_produto_error", err)
	}

	p, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_produto_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProdutoHTTP) CreateProduto(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "produto.create")

	var req transport.CreateProdutoRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "create_produto_error", err)
	}

	p, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_produto_error", err)
	}

	l.Info("create_produto_success", "produto_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProdutoHTTP) PatchProduto(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "produto.patch")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "patch_produto_error", err)
	}

	var req transport.PatchProdutoRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "patch_produto_error", err)
	}

	p, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "patch_produto_error", err)
	}

	l.Info("patch_produto_success", "produto_id", id)
	return c.JSON(http.StatusOK, p)
}

func (h *ProdutoHTTP) DeleteProduto(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "produto.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "delete_produto_error", err)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_produto_error", err)
	}

	l.Info("delete_produto_success", "produto_id", id)
	return c.NoContent(http.StatusNoContent)
}

func meta(page, limit, offset int, total int64) map[string]any {
	return map[string]any{
		"page":        page,
		"size":        limit,
		"total":       total,
		"total_pages": util.Pages(total, limit),
		"has_prev":    page > 1,
		"has_next":    int64(offset+limit) < total,
	}
}
