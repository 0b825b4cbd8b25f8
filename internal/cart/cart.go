// Package cart holds the shopping cart state machine. Reduce is pure; Store
// wraps a State for callers that need to share one cart.
package cart

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/vitrine/internal/transport"
)

var ErrEmptyCart = errors.New("cart is empty")

type Line struct {
	ProdutoID  uint            `json:"produtoId"`
	Nome       string          `json:"nome"`
	Preco      decimal.Decimal `json:"preco"`
	Quantidade int             `json:"quantidade"`
	Imagem     string          `json:"imagem,omitempty"`
	Tamanho    string          `json:"tamanho,omitempty"`
	Cor        string          `json:"cor,omitempty"`
	LojistaID  uint            `json:"lojistaId"`
}

// Key identifies a cart line. The same product in another size or color is a
// separate line.
type Key struct {
	ProdutoID uint
	Tamanho   string
	Cor       string
}

func (l Line) Key() Key {
	return Key{ProdutoID: l.ProdutoID, Tamanho: l.Tamanho, Cor: l.Cor}
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Preco.Mul(decimal.NewFromInt(int64(l.Quantidade)))
}

type State struct {
	Lines []Line `json:"lines"`
}

type ActionType int

const (
	ActionAdd ActionType = iota + 1
	ActionRemove
	ActionClear
)

type Action struct {
	Type      ActionType
	Line      Line
	ProdutoID uint
}

func Add(l Line) Action            { return Action{Type: ActionAdd, Line: l} }
func Remove(produtoID uint) Action { return Action{Type: ActionRemove, ProdutoID: produtoID} }
func Clear() Action                { return Action{Type: ActionClear} }

// Reduce returns the state after applying a. The input state is never modified.
//
// Add merges into the line with the same Key by summing quantities, otherwise
// appends. Add with a non-positive quantity is ignored. Remove drops every line
// of the product whatever its size or color.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionAdd:
		if a.Line.Quantidade <= 0 {
			return s
		}
		lines := slices.Clone(s.Lines)
		k := a.Line.Key()
		for i := range lines {
			if lines[i].Key() == k {
				lines[i].Quantidade += a.Line.Quantidade
				return State{Lines: lines}
			}
		}
		return State{Lines: append(lines, a.Line)}

	case ActionRemove:
		lines := make([]Line, 0, len(s.Lines))
		for _, l := range s.Lines {
			if l.ProdutoID != a.ProdutoID {
				lines = append(lines, l)
			}
		}
		return State{Lines: lines}

	case ActionClear:
		return State{}
	}
	return s
}

// Fold applies every Add in order, starting from an empty cart.
func Fold(lines []Line) State {
	var s State
	for _, l := range lines {
		s = Reduce(s, Add(l))
	}
	return s
}

func Total(s State) decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func Count(s State) int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantidade
	}
	return n
}

// Checkout builds the order request for the cart. The order goes to the store
// of the first line.
func Checkout(s State, c transport.Cliente, observacoes string) (transport.CreatePedidoRequest, error) {
	if len(s.Lines) == 0 {
		return transport.CreatePedidoRequest{}, ErrEmptyCart
	}

	itens := make([]transport.CreateItemPedidoRequest, 0, len(s.Lines))
	for _, l := range s.Lines {
		itens = append(itens, transport.CreateItemPedidoRequest{
			ProdutoID:  l.ProdutoID,
			Quantidade: l.Quantidade,
			PrecoUnit:  l.Preco,
			Tamanho:    l.Tamanho,
			Cor:        l.Cor,
		})
	}

	return transport.CreatePedidoRequest{
		ClienteNome:     c.Nome,
		ClienteEmail:    c.Email,
		ClienteTelefone: c.Telefone,
		ClienteEndereco: c.Endereco,
		LojistaID:       s.Lines[0].LojistaID,
		Observacoes:     observacoes,
		Itens:           itens,
	}, nil
}

func FromTransport(lines []transport.CartLine) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{
			ProdutoID:  l.ProdutoID,
			Nome:       l.Nome,
			Preco:      l.Preco,
			Quantidade: l.Quantidade,
			Imagem:     l.Imagem,
			Tamanho:    l.Tamanho,
			Cor:        l.Cor,
			LojistaID:  l.LojistaID,
		})
	}
	return out
}
