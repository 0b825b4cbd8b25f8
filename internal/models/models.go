package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	PlanoBasico  = "basico"
	PlanoPremium = "premium"
)

const (
	StatusPendente  = "pendente"
	StatusPago      = "pago"
	StatusEnviado   = "enviado"
	StatusEntregue  = "entregue"
	StatusCancelado = "cancelado"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name         string    `gorm:"not null"                  json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Role         string    `gorm:"not null;default:user"     json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Lojista struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	Nome      string    `gorm:"not null"                    json:"nome"`
	Email     string    `gorm:"not null"                    json:"email"`
	Telefone  string    `json:"telefone"`
	Endereco  string    `json:"endereco"`
	Cidade    string    `json:"cidade"`
	Estado    string    `json:"estado"`
	CEP       string    `gorm:"column:cep"                  json:"cep"`
	Plano     string    `gorm:"not null;default:basico"     json:"plano"`
	UserID    uint      `gorm:"index;not null"              json:"userId"`
	User      *User     `gorm:"foreignKey:UserID"           json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Produto struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Nome      string          `gorm:"not null"                    json:"nome"`
	Descricao string          `json:"descricao"`
	Preco     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"preco"`
	Categoria string          `gorm:"index"                       json:"categoria"`
	Tamanhos  []string        `gorm:"serializer:json;type:text"   json:"tamanhos"`
	Cores     []string        `gorm:"serializer:json;type:text"   json:"cores"`
	Imagens   []string        `gorm:"serializer:json;type:text"   json:"imagens"`
	Estoque   int             `gorm:"not null"                    json:"estoque"`
	IsActive  bool            `gorm:"index;not null"              json:"isActive"`
	LojistaID uint            `gorm:"index;not null"              json:"lojistaId"`
	Lojista   *Lojista        `gorm:"foreignKey:LojistaID"        json:"lojista,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Pedido struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	ClienteNome     string          `gorm:"not null"                    json:"clienteNome"`
	ClienteEmail    string          `gorm:"not null"                    json:"clienteEmail"`
	ClienteTelefone string          `json:"clienteTelefone"`
	ClienteEndereco string          `json:"clienteEndereco"`
	LojistaID       uint            `gorm:"index;not null"              json:"lojistaId"`
	Lojista         *Lojista        `gorm:"foreignKey:LojistaID"        json:"lojista,omitempty"`
	Observacoes     string          `json:"observacoes"`
	ValorTotal      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valorTotal"`
	NumeroVenda     string          `gorm:"uniqueIndex;not null"        json:"numeroVenda"`
	Status          string          `gorm:"index;not null"              json:"status"`
	Itens           []ItemPedido    `gorm:"foreignKey:PedidoID"         json:"itens"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ItemPedido keeps the unit price charged at order time.
type ItemPedido struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	PedidoID   uint            `gorm:"index;not null"              json:"pedidoId"`
	ProdutoID  uint            `gorm:"index;not null"              json:"produtoId"`
	Produto    *ProdutoResumo  `gorm:"-"                           json:"produto,omitempty"`
	Quantidade int             `gorm:"not null;check:quantidade > 0" json:"quantidade"`
	PrecoUnit  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"precoUnit"`
	Tamanho    string          `json:"tamanho,omitempty"`
	Cor        string          `json:"cor,omitempty"`
}

// ProdutoResumo is the product summary attached to order items on read.
type ProdutoResumo struct {
	ID      uint     `json:"id"`
	Nome    string   `json:"nome"`
	Imagens []string `json:"imagens"`
}

func (Pedido) TableName() string     { return "pedidos" }
func (ItemPedido) TableName() string { return "itens_pedido" }

func (i ItemPedido) Subtotal() decimal.Decimal {
	return i.PrecoUnit.Mul(decimal.NewFromInt(int64(i.Quantidade)))
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPendente, StatusPago, StatusEnviado, StatusEntregue, StatusCancelado:
		return true
	}
	return false
}
