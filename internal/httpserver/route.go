package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/vitrine/pkg/db"
	middleware "github.com/Skotchmaster/vitrine/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/vitrine/pkg/middleware/logging"
	"github.com/Skotchmaster/vitrine/pkg/validate"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	LojistaHandler *LojistaHTTP
	ProdutoHandler *ProdutoHTTP
	PedidoHandler  *PedidoHTTP
	VitrineHandler *VitrineHTTP
	CartHandler    *CartHTTP
	DB             *gorm.DB
	JWTSecret      []byte
}

// NewEcho returns an echo instance with the standard middleware chain.
func NewEcho(logger *slog.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	return e
}

func Register(e *echo.Echo, d *Deps) {
	if e.Validator == nil {
		e.Validator = validate.New()
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.DB == nil {
			return c.NoContent(http.StatusOK)
		}
		if err := pkgdb.Ping(c.Request().Context(), d.DB); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewBearerAuth(d.JWTSecret)

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.Logout)
	auth.GET("/me", d.AuthHandler.Me, authMW.RequireAuth)

	lojistas := e.Group("/lojistas")
	lojistas.GET("", d.LojistaHandler.GetLojistas)
	lojistas.GET("/:id", d.LojistaHandler.GetLojista)

	owner := lojistas.Group("", authMW.RequireAuth)
	owner.POST("", d.LojistaHandler.CreateLojista)
	owner.GET("/my", d.LojistaHandler.GetMyLojistas)
	owner.PATCH("/:id", d.LojistaHandler.PatchLojista)
	owner.DELETE("/:id", d.LojistaHandler.DeleteLojista)

	// Product management carries no ownership check.
	produtos := e.Group("/produtos")
	produtos.GET("", d.ProdutoHandler.GetProdutos)
	produtos.GET("/vitrine", d.ProdutoHandler.GetVitrine)
	produtos.GET("/search", d.ProdutoHandler.SearchProdutos)
	produtos.GET("/:id", d.ProdutoHandler.GetProduto)
	produtos.POST("", d.ProdutoHandler.CreateProduto)
	produtos.PATCH("/:id", d.ProdutoHandler.PatchProduto)
	produtos.DELETE("/:id", d.ProdutoHandler.DeleteProduto)

	vitrine := e.Group("/vitrine")
	vitrine.GET("", d.ProdutoHandler.GetVitrine)
	vitrine.GET("/categorias", d.VitrineHandler.GetCategorias)
	vitrine.GET("/:lojistaId", d.ProdutoHandler.GetVitrineByLojista)

	pedidos := e.Group("/pedidos")
	pedidos.POST("", d.PedidoHandler.CreatePedido)
	pedidos.GET("", d.PedidoHandler.GetPedidos)
	pedidos.GET("/:id", d.PedidoHandler.GetPedido)
	pedidos.PATCH("/:id", d.PedidoHandler.PatchPedido)
	pedidos.DELETE("/:id", d.PedidoHandler.DeletePedido)

	e.POST("/carrinho/checkout", d.CartHandler.Checkout)
}
