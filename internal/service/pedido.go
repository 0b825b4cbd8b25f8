package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/vitrine/internal/cart"
	"github.com/Skotchmaster/vitrine/internal/models"
	"github.com/Skotchmaster/vitrine/internal/repo"
	"github.com/Skotchmaster/vitrine/internal/transport"
	"github.com/Skotchmaster/vitrine/pkg/logging"
	"github.com/Skotchmaster/vitrine/pkg/mykafka"
)

type PedidoService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Now    func() time.Time
}

type PedidoPage struct {
	Total int64
	Items []models.Pedido
}

// Create validates the request, computes the total from the items and stores
// the order with its items atomically. Stock is neither checked nor reserved.
func (s *PedidoService) Create(ctx context.Context, req transport.CreatePedidoRequest) (*models.Pedido, error) {
	if err := validatePedido(req); err != nil {
		return nil, err
	}

	total := decimal.Zero
	itens := make([]models.ItemPedido, 0, len(req.Itens))
	for _, it := range req.Itens {
		item := models.ItemPedido{
			ProdutoID:  it.ProdutoID,
			Quantidade: it.Quantidade,
			PrecoUnit:  it.PrecoUnit.Round(moneyScale),
			Tamanho:    strings.TrimSpace(it.Tamanho),
			Cor:        strings.TrimSpace(it.Cor),
		}
		total = total.Add(item.Subtotal())
		itens = append(itens, item)
	}
	if err := checkMoney("valorTotal", total, false); err != nil {
		return nil, err
	}

	p := &models.Pedido{
		ClienteNome:     strings.TrimSpace(req.ClienteNome),
		ClienteEmail:    strings.ToLower(strings.TrimSpace(req.ClienteEmail)),
		ClienteTelefone: strings.TrimSpace(req.ClienteTelefone),
		ClienteEndereco: strings.TrimSpace(req.ClienteEndereco),
		LojistaID:       req.LojistaID,
		Observacoes:     req.Observacoes,
		ValorTotal:      total,
		NumeroVenda:     NumeroVenda(s.now()),
		Status:          models.StatusPendente,
		Itens:           itens,
	}
	if err := s.Repo.CreatePedido(ctx, p); err != nil {
		return nil, mapStoreErr(err, "lojista or produto")
	}

	logging.FromContext(ctx).Info("pedido_created",
		"pedido_id", p.ID, "numero_venda", p.NumeroVenda, "lojista_id", p.LojistaID, "valor_total", p.ValorTotal.String())
	s.emit(ctx, "pedido_created", p)
	return p, nil
}

// Checkout folds raw cart lines through the cart reducer and places the
// resulting order.
func (s *PedidoService) Checkout(ctx context.Context, req transport.CheckoutRequest) (*models.Pedido, error) {
	st := cart.NewStore(cart.Fold(cart.FromTransport(req.Itens)))
	return s.CheckoutCart(ctx, st, req.Cliente, req.Observacoes)
}

// CheckoutCart places the order held by st and clears the cart once the order
// is stored. On failure the cart is left untouched.
func (s *PedidoService) CheckoutCart(ctx context.Context, st *cart.Store, c transport.Cliente, observacoes string) (*models.Pedido, error) {
	order, err := st.Checkout(c, observacoes)
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, err
	}

	p, err := s.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	st.Dispatch(cart.Clear())
	return p, nil
}

func (s *PedidoService) List(ctx context.Context, f repo.PedidoFilter, offset, limit int) (*PedidoPage, error) {
	if f.Status != "" && !models.ValidStatus(f.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, f.Status)
	}
	total, items, err := s.Repo.ListPedidos(ctx, f, offset, limit)
	if err != nil {
		return nil, err
	}
	return &PedidoPage{Total: total, Items: items}, nil
}

func (s *PedidoService) Get(ctx context.Context, id uint) (*models.Pedido, error) {
	p, err := s.Repo.GetPedido(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "pedido")
	}
	return p, nil
}

func (s *PedidoService) Update(ctx context.Context, id uint, req transport.PatchPedidoRequest) (*models.Pedido, error) {
	fields := map[string]any{}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
		}
		fields["status"] = *req.Status
	}
	if req.Observacoes != nil {
		fields["observacoes"] = *req.Observacoes
	}

	p, err := s.Repo.UpdatePedido(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err, "pedido")
	}

	s.emit(ctx, "pedido_updated", p)
	return p, nil
}

func (s *PedidoService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeletePedido(ctx, id); err != nil {
		return mapStoreErr(err, "pedido")
	}
	publish(ctx, s.Events, mykafka.TopicPedido, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":     "pedido_deleted",
		"pedidoID": id,
	})
	return nil
}

func (s *PedidoService) emit(ctx context.Context, typ string, p *models.Pedido) {
	publish(ctx, s.Events, mykafka.TopicPedido, strconv.FormatUint(uint64(p.ID), 10), map[string]any{
		"type":        typ,
		"pedidoID":    p.ID,
		"lojistaID":   p.LojistaID,
		"numeroVenda": p.NumeroVenda,
		"status":      p.Status,
		"valorTotal":  p.ValorTotal.StringFixed(2),
	})
}

func (s *PedidoService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func validatePedido(req transport.CreatePedidoRequest) error {
	if strings.TrimSpace(req.ClienteNome) == "" {
		return fmt.Errorf("%w: clienteNome required", ErrValidation)
	}
	if err := check.Var(strings.TrimSpace(req.ClienteEmail), "required,email"); err != nil {
		return fmt.Errorf("%w: invalid clienteEmail", ErrValidation)
	}
	if strings.TrimSpace(req.ClienteTelefone) == "" {
		return fmt.Errorf("%w: clienteTelefone required", ErrValidation)
	}
	if req.LojistaID == 0 {
		return fmt.Errorf("%w: lojistaId required", ErrValidation)
	}
	if len(req.Itens) == 0 {
		return fmt.Errorf("%w: itens required", ErrValidation)
	}
	for i, it := range req.Itens {
		if it.ProdutoID == 0 {
			return fmt.Errorf("%w: itens[%d].produtoId required", ErrValidation, i)
		}
		if it.Quantidade <= 0 {
			return fmt.Errorf("%w: itens[%d].quantidade must be > 0", ErrValidation, i)
		}
		if err := checkMoney(fmt.Sprintf("itens[%d].precoUnit", i), it.PrecoUnit, false); err != nil {
			return err
		}
	}
	return nil
}

// NumeroVenda returns PED-<yyyymmdd>-<8 upper hex digits>.
func NumeroVenda(t time.Time) string {
	u := uuid.New()
	return fmt.Sprintf("PED-%s-%s", t.UTC().Format("20060102"), strings.ToUpper(hex.EncodeToString(u[:4])))
}
