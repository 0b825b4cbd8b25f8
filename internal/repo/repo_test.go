package repo_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/vitrine/internal/models"
	"github.com/Skotchmaster/vitrine/internal/repo"
	"github.com/Skotchmaster/vitrine/internal/testutil"
)

type fixture struct {
	r       *repo.GormRepo
	user    models.User
	lojista models.Lojista
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	r := &repo.GormRepo{DB: testutil.NewDB(t)}
	u := models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, r.CreateUser(ctx, &u))

	l := models.Lojista{Nome: "Loja da Ana", Email: "loja@example.com", Plano: models.PlanoBasico, UserID: u.ID}
	require.NoError(t, r.CreateLojista(ctx, &l))

	return &fixture{r: r, user: u, lojista: l}
}

func (f *fixture) produto(t *testing.T, nome string, preco string, active bool) models.Produto {
	t.Helper()
	p := models.Produto{
		Nome:      nome,
		Descricao: "descricao de " + nome,
		Preco:     decimal.RequireFromString(preco),
		Categoria: "Camisetas",
		Tamanhos:  []string{"P", "M"},
		IsActive:  active,
		LojistaID: f.lojista.ID,
	}
	require.NoError(t, f.r.CreateProduto(context.Background(), &p))
	return p
}

func TestCreateProduto_UnknownLojista(t *testing.T) {
	f := newFixture(t)

	p := models.Produto{Nome: "x", Preco: decimal.NewFromInt(1), LojistaID: 999}
	err := f.r.CreateProduto(context.Background(), &p)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProduto_ArraysRoundTrip(t *testing.T) {
	f := newFixture(t)
	p := f.produto(t, "Camiseta", "59.90", true)

	got, err := f.r.GetProduto(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"P", "M"}, got.Tamanhos)
	assert.True(t, got.Preco.Equal(decimal.RequireFromString("59.90")))
	require.NotNil(t, got.Lojista)
	assert.Equal(t, f.lojista.ID, got.Lojista.ID)
}

func TestListActiveProdutos_ExcludesInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.produto(t, "ativo", "10", true)
	f.produto(t, "inativo", "10", false)

	items, err := f.r.ListActiveProdutos(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ativo", items[0].Nome)

	items, err = f.r.ListActiveProdutos(ctx, f.lojista.ID+1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchActiveProdutos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.produto(t, "Camiseta Azul", "10", true)
	f.produto(t, "Camiseta Verde", "10", false)
	f.produto(t, "Boné", "10", true)

	total, items, err := f.r.SearchActiveProdutos(ctx, "CAMISETA", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Camiseta Azul", items[0].Nome)

	total, _, err = f.r.SearchActiveProdutos(ctx, "100%", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestUpdateAndDeleteProduto_Missing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.r.UpdateProduto(ctx, 42, map[string]any{"nome": "x"}, repo.ProdutoArrays{})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = f.r.UpdateProduto(ctx, 42, nil, repo.ProdutoArrays{Cores: []string{"azul"}})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = f.r.DeleteProduto(ctx, 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateProduto_FieldsAndArrays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.produto(t, "Camiseta", "10", true)

	got, err := f.r.UpdateProduto(ctx, p.ID, map[string]any{"nome": "Regata"}, repo.ProdutoArrays{Cores: []string{"azul", "preto"}})
	require.NoError(t, err)
	assert.Equal(t, "Regata", got.Nome)
	assert.Equal(t, []string{"azul", "preto"}, got.Cores)
	assert.Equal(t, []string{"P", "M"}, got.Tamanhos)
}

func TestUpdateProduto_FailedFieldsKeepArrays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.produto(t, "Camiseta", "10", true)

	_, err := f.r.UpdateProduto(ctx, p.ID, map[string]any{"no_such_column": 1}, repo.ProdutoArrays{Tamanhos: []string{"GG"}})
	require.Error(t, err)

	got, err := f.r.GetProduto(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"P", "M"}, got.Tamanhos)
	assert.Equal(t, "Camiseta", got.Nome)
}

func TestCreatePedido_Atomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.produto(t, "Camiseta", "10", true)

	pedido := models.Pedido{
		ClienteNome:  "Bia",
		ClienteEmail: "bia@example.com",
		LojistaID:    f.lojista.ID,
		ValorTotal:   decimal.NewFromInt(20),
		NumeroVenda:  "PED-20240101-AAAAAAAA",
		Status:       models.StatusPendente,
		Itens: []models.ItemPedido{
			{ProdutoID: p.ID, Quantidade: 1, PrecoUnit: decimal.NewFromInt(10)},
			{ProdutoID: 9999, Quantidade: 1, PrecoUnit: decimal.NewFromInt(10)},
		},
	}
	err := f.r.CreatePedido(ctx, &pedido)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var n int64
	require.NoError(t, f.r.DB.Model(&models.Pedido{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.r.DB.Model(&models.ItemPedido{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPedido_ReadUpdateDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.produto(t, "Camiseta", "10", true)

	pedido := models.Pedido{
		ClienteNome:  "Bia",
		ClienteEmail: "bia@example.com",
		LojistaID:    f.lojista.ID,
		ValorTotal:   decimal.NewFromInt(30),
		NumeroVenda:  "PED-20240101-BBBBBBBB",
		Status:       models.StatusPendente,
		Itens: []models.ItemPedido{
			{ProdutoID: p.ID, Quantidade: 2, PrecoUnit: decimal.NewFromInt(10), Tamanho: "M"},
			{ProdutoID: p.ID, Quantidade: 1, PrecoUnit: decimal.NewFromInt(10), Tamanho: "P"},
		},
	}
	require.NoError(t, f.r.CreatePedido(ctx, &pedido))

	got, err := f.r.GetPedido(ctx, pedido.ID)
	require.NoError(t, err)
	require.Len(t, got.Itens, 2)
	assert.Less(t, got.Itens[0].ID, got.Itens[1].ID)
	require.NotNil(t, got.Itens[0].Produto)
	assert.Equal(t, "Camiseta", got.Itens[0].Produto.Nome)
	require.NotNil(t, got.Lojista)

	total, list, err := f.r.ListPedidos(ctx, repo.PedidoFilter{LojistaID: f.lojista.ID, Status: models.StatusPendente}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Itens[0].Produto)

	updated, err := f.r.UpdatePedido(ctx, pedido.ID, map[string]any{"status": models.StatusPago})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPago, updated.Status)

	require.NoError(t, f.r.DeletePedido(ctx, pedido.ID))
	_, err = f.r.GetPedido(ctx, pedido.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var n int64
	require.NoError(t, f.r.DB.Model(&models.ItemPedido{}).Count(&n).Error)
	assert.Zero(t, n)

	require.ErrorIs(t, f.r.DeletePedido(ctx, pedido.ID), gorm.ErrRecordNotFound)
}

func TestLojista_ListAndOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := models.Lojista{Nome: "Segunda", Email: "s@example.com", Plano: models.PlanoPremium, UserID: f.user.ID}
	require.NoError(t, f.r.CreateLojista(ctx, &other))

	mine, err := f.r.ListLojistasByUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	got, err := f.r.GetLojista(ctx, f.lojista.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "ana@example.com", got.User.Email)

	ok, err := f.r.LojistaExists(ctx, 12345)
	require.NoError(t, err)
	assert.False(t, ok)
}
