package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vitrine/internal/service"
	"github.com/Skotchmaster/vitrine/internal/transport"
	"github.com/Skotchmaster/vitrine/pkg/logging"
)

type CartHTTP struct {
	Pedidos *service.PedidoService
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "carrinho.checkout")

	var req transport.CheckoutRequest
	if err := bind(c, &req); err != nil {
		return fail(l, "checkout_error", err)
	}

	pedido, err := h.Pedidos.Checkout(ctx, req)
	if err != nil {
		return fail(l, "checkout_error", err)
	}

	l.Info("checkout_success", "pedido_id", pedido.ID, "numero_venda", pedido.NumeroVenda)
	return c.JSON(http.StatusCreated, pedido)
}
