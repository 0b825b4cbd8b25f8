package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/vitrine/internal/models"
	"github.com/Skotchmaster/vitrine/internal/repo"
	"github.com/Skotchmaster/vitrine/internal/service"
	"github.com/Skotchmaster/vitrine/internal/testutil"
	"github.com/Skotchmaster/vitrine/pkg/logging"
	"github.com/Skotchmaster/vitrine/pkg/util"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	t  *testing.T
	e  *echo.Echo
	db *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	r := &repo.GormRepo{DB: db}

	e := NewEcho(logging.NewWithWriter(io.Discard, "error"), nil)
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testSecret}},
		LojistaHandler: &LojistaHTTP{Svc: &service.LojistaService{Repo: r}},
		ProdutoHandler: &ProdutoHTTP{Svc: &service.ProdutoService{Repo: r}},
		PedidoHandler:  &PedidoHTTP{Svc: &service.PedidoService{Repo: r}},
		VitrineHandler: &VitrineHTTP{Svc: &service.VitrineService{Repo: r}},
		CartHandler:    &CartHTTP{Pedidos: &service.PedidoService{Repo: r}},
		DB:             db,
		JWTSecret:      testSecret,
	})

	return &testEnv{t: t, e: e, db: db}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// signup registers and logs in a user, returning the bearer token.
func (env *testEnv) signup(name, email string) string {
	env.t.Helper()

	rec := env.do(http.MethodPost, "/auth/register", map[string]string{"name": name, "email": email, "password": "secret1"}, "")
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": "secret1"}, "")
	require.Equal(env.t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[struct {
		AccessToken string `json:"access_token"`
	}](env.t, rec)
	require.NotEmpty(env.t, resp.AccessToken)
	return resp.AccessToken
}

func (env *testEnv) createLojista(token, nome string) models.Lojista {
	env.t.Helper()
	rec := env.do(http.MethodPost, "/lojistas", map[string]string{"nome": nome, "email": "loja@example.com"}, token)
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Lojista](env.t, rec)
}

func (env *testEnv) createProduto(lojistaID uint, nome, preco string, active bool) models.Produto {
	env.t.Helper()
	rec := env.do(http.MethodPost, "/produtos", map[string]any{
		"nome":      nome,
		"preco":     preco,
		"categoria": "Camisetas",
		"estoque":   5,
		"isActive":  active,
		"lojistaId": lojistaID,
	}, "")
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Produto](env.t, rec)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/live", nil, "").Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/ready", nil, "").Code)
}

func TestOwnershipScenario(t *testing.T) {
	env := newTestEnv(t)

	tokenA := env.signup("Ana", "ana@example.com")
	tokenB := env.signup("Beto", "beto@example.com")
	s := env.createLojista(tokenA, "Loja S")
	path := fmt.Sprintf("/lojistas/%d", s.ID)

	rec := env.do(http.MethodDelete, path, nil, tokenB)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodDelete, "/lojistas/9999", nil, tokenA)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, path, nil, tokenA)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchLojista_Authorization(t *testing.T) {
	env := newTestEnv(t)

	tokenA := env.signup("Ana", "ana@example.com")
	tokenB := env.signup("Beto", "beto@example.com")
	s := env.createLojista(tokenA, "Loja S")
	path := fmt.Sprintf("/lojistas/%d", s.ID)

	tests := []struct {
		name  string
		path  string
		token string
		body  map[string]any
		want  int
	}{
		{name: "no token", path: path, body: map[string]any{"nome": "x"}, want: http.StatusUnauthorized},
		{name: "not owner", path: path, token: tokenB, body: map[string]any{"nome": "hacked"}, want: http.StatusForbidden},
		{name: "missing id is not found for a non-owner too", path: "/lojistas/9999", token: tokenB, body: map[string]any{"nome": "x"}, want: http.StatusNotFound},
		{name: "bad plano", path: path, token: tokenA, body: map[string]any{"plano": "ouro"}, want: http.StatusBadRequest},
		{name: "owner", path: path, token: tokenA, body: map[string]any{"plano": "premium"}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPatch, tt.path, tt.body, tt.token)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	got := decode[models.Lojista](t, env.do(http.MethodGet, path, nil, ""))
	assert.Equal(t, "Loja S", got.Nome)
	assert.Equal(t, models.PlanoPremium, got.Plano)
}

func TestMyLojistas(t *testing.T) {
	env := newTestEnv(t)

	tokenA := env.signup("Ana", "ana@example.com")
	tokenB := env.signup("Beto", "beto@example.com")
	env.createLojista(tokenA, "A1")
	env.createLojista(tokenA, "A2")
	env.createLojista(tokenB, "B1")

	mine := decode[[]models.Lojista](t, env.do(http.MethodGet, "/lojistas/my", nil, tokenA))
	assert.Len(t, mine, 2)

	all := decode[[]models.Lojista](t, env.do(http.MethodGet, "/lojistas", nil, ""))
	assert.Len(t, all, 3)

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/lojistas/my", nil, "").Code)
}

func TestRegister_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	env.signup("Ana", "ana@example.com")

	rec := env.do(http.MethodPost, "/auth/register", map[string]string{"name": "Outra", "email": "ANA@example.com", "password": "outrasenha"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodPost, "/auth/login", map[string]string{"email": "ana@example.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "short password", body: map[string]string{"name": "Ana", "email": "ana@example.com", "password": "123"}},
		{name: "bad email", body: map[string]string{"name": "Ana", "email": "ana", "password": "secret1"}},
		{name: "missing name", body: map[string]string{"email": "ana@example.com", "password": "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.signup("Ana", "ana@example.com")

	wrongPass := env.do(http.MethodPost, "/auth/login", map[string]string{"email": "ana@example.com", "password": "nope123"}, "")
	unknown := env.do(http.MethodPost, "/auth/login", map[string]string{"email": "zz@example.com", "password": "nope123"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ana", "ana@example.com")

	rec := env.do(http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "ana@example.com", me["email"])
	assert.NotContains(t, rec.Body.String(), "PasswordHash")

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/auth/me", nil, "bad.token").Code)
}

func TestProdutos_VitrineHidesInactive(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ana", "ana@example.com")
	s := env.createLojista(token, "Loja")

	env.createProduto(s.ID, "Ativo", "10", true)
	env.createProduto(s.ID, "Inativo", "10", false)

	for _, path := range []string{"/produtos/vitrine", "/vitrine", fmt.Sprintf("/vitrine/%d", s.ID)} {
		items := decode[[]models.Produto](t, env.do(http.MethodGet, path, nil, ""))
		require.Len(t, items, 1, path)
		assert.Equal(t, "Ativo", items[0].Nome)
	}

	all := decode[[]models.Produto](t, env.do(http.MethodGet, "/produtos", nil, ""))
	assert.Len(t, all, 2)

	found := decode[struct {
		Data []models.Produto `json:"data"`
	}](t, env.do(http.MethodGet, "/produtos/search?q=ativo", nil, ""))
	require.Len(t, found.Data, 1)
	assert.Equal(t, "Ativo", found.Data[0].Nome)
}

func TestProduto_CRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ana", "ana@example.com")
	s := env.createLojista(token, "Loja")

	rec := env.do(http.MethodPost, "/produtos", map[string]any{"nome": "x", "preco": "1", "lojistaId": 999}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/produtos", map[string]any{"nome": "x", "preco": "-1", "lojistaId": s.ID}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	p := env.createProduto(s.ID, "Camiseta", "59.90", true)
	path := fmt.Sprintf("/produtos/%d", p.ID)

	rec = env.do(http.MethodPatch, path, map[string]any{"preco": "49.90", "isActive": false, "cores": []string{"azul"}}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[models.Produto](t, rec)
	assert.True(t, got.Preco.Equal(decimal.RequireFromString("49.9")))
	assert.False(t, got.IsActive)
	assert.Equal(t, []string{"azul"}, got.Cores)

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, path, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, path, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, path, nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/produtos/abc", nil, "").Code)
}

func TestPedido_TotalIsExact(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ana", "ana@example.com")
	s := env.createLojista(token, "Loja")
	p1 := env.createProduto(s.ID, "Bala", "0.10", true)
	p2 := env.createProduto(s.ID, "Camiseta", "19.99", true)

	rec := env.do(http.MethodPost, "/pedidos", map[string]any{
		"clienteNome":     "Bia",
		"clienteEmail":    "bia@example.com",
		"clienteTelefone": "11999990000",
		"lojistaId":       s.ID,
		"itens": []map[string]any{
			{"produtoId": p1.ID, "quantidade": 3, "precoUnit": "0.10"},
			{"produtoId": p2.ID, "quantidade": 2, "precoUnit": "19.99", "tamanho": "M"},
		},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[models.Pedido](t, rec)
	assert.True(t, created.ValorTotal.Equal(decimal.RequireFromString("40.28")), created.ValorTotal.String())
	assert.Equal(t, models.StatusPendente, created.Status)
	assert.Regexp(t, `^PED-\d{8}-[0-9A-F]{8}$`, created.NumeroVenda)

	got := decode[models.Pedido](t, env.do(http.MethodGet, fmt.Sprintf("/pedidos/%d", created.ID), nil, ""))
	assert.True(t, got.ValorTotal.Equal(decimal.RequireFromString("40.28")))
	require.Len(t, got.Itens, 2)
	require.NotNil(t, got.Itens[0].Produto)
	assert.Equal(t, "Bala", got.Itens[0].Produto.Nome)

	var stock models.Produto
	require.NoError(t, env.db.First(&stock, p1.ID).Error)
	assert.Equal(t, 5, stock.Estoque)
}

func TestPedido_PriceSnapshot(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ana", "ana@example.com")
	s := env.createLojista(token, "Loja")
	p := env.createProduto(s.ID, "Camiseta", "20", true)

	rec := env.do(http.MethodPost, "/pedidos", map[string]any{
		"clienteNome": "Bia", "clienteEmail": "bia@example.com", "clienteTelefone": "1",
		"lojistaId": s.ID,
		"itens":     []map[string]any{{"produtoId": p.ID, "quantidade": 1, "precoUnit": "20"}},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Pedido](t, rec)

	rec = env.do(http.MethodPatch, fmt.Sprintf("/produtos/%d", p.ID), map[string]any{"preco": "99"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[models.Pedido](t, env.do(http.MethodGet, fmt.Sprintf("/pedidos/%d", created.ID), nil, ""))
	assert.True(t, got.Itens[0].PrecoUnit.Equal(decimal.NewFromInt(20)))
	assert.True(t, got.ValorTotal.Equal(decimal.NewFromInt(20)))
}

func TestPedido_Rejections(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ana", "ana@example.com")
	s := env.createLojista(token, "Loja")
	p := env.createProduto(s.ID, "Camiseta", "20", true)

	base := func(itens []map[string]any, lojistaID uint) map[string]any {
		return map[string]any{
			"clienteNome": "Bia", "clienteEmail": "bia@example.com", "clienteTelefone": "1",
			"lojistaId": lojistaID, "itens": itens,
		}
	}

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{name: "empty items", body: base([]map[string]any{}, s.ID), want: http.StatusBadRequest},
		{name: "zero quantity", body: base([]map[string]any{{"produtoId": p.ID, "quantidade": 0, "precoUnit": "1"}}, s.ID), want: http.StatusBadRequest},
		{name: "negative price", body: base([]map[string]any{{"produtoId": p.ID, "quantidade": 1, "precoUnit": "-1"}}, s.ID), want: http.StatusBadRequest},
		{name: "unknown produto", body: base([]map[string]any{{"produtoId": 777, "quantidade": 1, "precoUnit": "1"}}, s.ID), want: http.StatusNotFound},
		{name: "unknown lojista", body: base([]map[string]any{{"produtoId": p.ID, "quantidade": 1, "precoUnit": "1"}}, 777), want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/pedidos", tt.body, "")
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	var n int64
	require.NoError(t, env.db.Model(&models.Pedido{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPedido_ListUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ana", "ana@example.com")
	s := env.createLojista(token, "Loja")
	p := env.createProduto(s.ID, "Camiseta", "20", true)

	var ids []uint
	for i := 0; i < 3; i++ {
		rec := env.do(http.MethodPost, "/pedidos", map[string]any{
			"clienteNome": "Bia", "clienteEmail": "bia@example.com", "clienteTelefone": "1",
			"lojistaId": s.ID,
			"itens":     []map[string]any{{"produtoId": p.ID, "quantidade": 1, "precoUnit": "20"}},
		}, "")
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[models.Pedido](t, rec).ID)
	}

	path := fmt.Sprintf("/pedidos/%d", ids[0])
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPatch, path, map[string]any{"status": "voando"}, "").Code)
	rec := env.do(http.MethodPatch, path, map[string]any{"status": "pago", "observacoes": "pix"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pago", decode[models.Pedido](t, rec).Status)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPatch, "/pedidos/9999", map[string]any{"status": "pago"}, "").Code)

	page := decode[struct {
		Data []models.Pedido `json:"data"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"meta"`
	}](t, env.do(http.MethodGet, fmt.Sprintf("/pedidos?lojistaId=%d&size=2", s.ID), nil, ""))
	assert.EqualValues(t, 3, page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)
	assert.Len(t, page.Data, 2)

	huge := decode[struct {
		Data []models.Pedido `json:"data"`
		Meta struct {
			Page    int  `json:"page"`
			HasPrev bool `json:"has_prev"`
		} `json:"meta"`
	}](t, env.do(http.MethodGet, "/pedidos?page=9223372036854775807&size=2", nil, ""))
	assert.Empty(t, huge.Data)
	assert.Equal(t, util.MaxPage, huge.Meta.Page)
	assert.True(t, huge.Meta.HasPrev)

	pagos := decode[struct {
		Data []models.Pedido `json:"data"`
	}](t, env.do(http.MethodGet, "/pedidos?status=pago", nil, ""))
	require.Len(t, pagos.Data, 1)
	assert.Equal(t, ids[0], pagos.Data[0].ID)

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, path, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, path, nil, "").Code)
}

func TestCheckout_MergesCartLines(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ana", "ana@example.com")
	s := env.createLojista(token, "Loja")
	p := env.createProduto(s.ID, "Camiseta", "25.50", true)

	line := map[string]any{"produtoId": p.ID, "nome": "Camiseta", "preco": "25.50", "quantidade": 1, "tamanho": "M", "cor": "azul", "lojistaId": s.ID}
	rec := env.do(http.MethodPost, "/carrinho/checkout", map[string]any{
		"cliente": map[string]string{"nome": "Bia", "email": "bia@example.com", "telefone": "1"},
		"itens":   []map[string]any{line, line},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	pedido := decode[models.Pedido](t, rec)
	require.Len(t, pedido.Itens, 1)
	assert.Equal(t, 2, pedido.Itens[0].Quantidade)
	assert.True(t, pedido.ValorTotal.Equal(decimal.RequireFromString("51")))

	rec = env.do(http.MethodPost, "/carrinho/checkout", map[string]any{
		"cliente": map[string]string{"nome": "Bia", "email": "bia@example.com", "telefone": "1"},
		"itens":   []map[string]any{},
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVitrineCategorias(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ana", "ana@example.com")
	s := env.createLojista(token, "Loja")
	env.createProduto(s.ID, "Camiseta Azul", "10", true)
	env.createProduto(s.ID, "Camiseta Oculta", "10", false)

	res := decode[struct {
		Categorias []string `json:"categorias"`
		Grupos     []struct {
			Categoria string           `json:"categoria"`
			Produtos  []models.Produto `json:"produtos"`
		} `json:"grupos"`
		Total int `json:"total"`
	}](t, env.do(http.MethodGet, "/vitrine/categorias?q=camiseta&categoria=todos", nil, ""))

	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []string{"Camisetas"}, res.Categorias)
	require.Len(t, res.Grupos, 1)
	assert.Equal(t, "Camiseta Azul", res.Grupos[0].Produtos[0].Nome)
}
