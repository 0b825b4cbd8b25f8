package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vitrine/internal/service"
	"github.com/Skotchmaster/vitrine/internal/storefront"
	"github.com/Skotchmaster/vitrine/pkg/logging"
	"github.com/Skotchmaster/vitrine/pkg/util"
)

type VitrineHTTP struct {
	Svc *service.VitrineService
}

// GetCategorias serves /vitrine/categorias?q=&categoria=&lojistaId=&sort=.
func (h *VitrineHTTP) GetCategorias(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vitrine.categorias")

	var lojistaID uint
	if raw := c.QueryParam("lojistaId"); raw != "" {
		id := util.ParseIntDefault(raw, -1)
		if id <= 0 {
			l.Warn("get_categorias_error", "status", 400, "reason", "invalid lojistaId")
			return echo.NewHTTPError(http.StatusBadRequest, "lojistaId must be a positive integer")
		}
		lojistaID = uint(id)
	}

	q := storefront.Query{Q: c.QueryParam("q"), Categoria: c.QueryParam("categoria")}
	res, err := h.Svc.Categorias(ctx, lojistaID, q, c.QueryParam("sort"))
	if err != nil {
		return fail(l, "get_categorias_error", err)
	}
	return c.JSON(http.StatusOK, res)
}
