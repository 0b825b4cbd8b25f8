package transport

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LojistaRequest struct {
	Nome     string `json:"nome"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Telefone string `json:"telefone" validate:"omitempty,max=30"`
	Endereco string `json:"endereco" validate:"omitempty,max=255"`
	Cidade   string `json:"cidade"   validate:"omitempty,max=120"`
	Estado   string `json:"estado"   validate:"omitempty,max=60"`
	CEP      string `json:"cep"      validate:"omitempty,max=20"`
	Plano    string `json:"plano"    validate:"omitempty,oneof=basico premium"`
}

type PatchLojistaRequest struct {
	Nome     *string `json:"nome"     validate:"omitempty,min=1,max=120"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefone *string `json:"telefone" validate:"omitempty,max=30"`
	Endereco *string `json:"endereco" validate:"omitempty,max=255"`
	Cidade   *string `json:"cidade"   validate:"omitempty,max=120"`
	Estado   *string `json:"estado"   validate:"omitempty,max=60"`
	CEP      *string `json:"cep"      validate:"omitempty,max=20"`
	Plano    *string `json:"plano"    validate:"omitempty,oneof=basico premium"`
}

type CreateProdutoRequest struct {
	Nome      string          `json:"nome"      validate:"required,max=200"`
	Descricao string          `json:"descricao"`
	Preco     decimal.Decimal `json:"preco"`
	Categoria string          `json:"categoria" validate:"omitempty,max=80"`
	Tamanhos  []string        `json:"tamanhos"  validate:"omitempty,dive,required"`
	Cores     []string        `json:"cores"     validate:"omitempty,dive,required"`
	Imagens   []string        `json:"imagens"   validate:"omitempty,dive,url"`
	Estoque   int             `json:"estoque"   validate:"gte=0"`
	IsActive  *bool           `json:"isActive"`
	LojistaID uint            `json:"lojistaId" validate:"required"`
}

type PatchProdutoRequest struct {
	Nome      *string          `json:"nome"      validate:"omitempty,min=1,max=200"`
	Descricao *string          `json:"descricao"`
	Preco     *decimal.Decimal `json:"preco"`
	Categoria *string          `json:"categoria" validate:"omitempty,max=80"`
	Tamanhos  []string         `json:"tamanhos"  validate:"omitempty,dive,required"`
	Cores     []string         `json:"cores"     validate:"omitempty,dive,required"`
	Imagens   []string         `json:"imagens"   validate:"omitempty,dive,url"`
	Estoque   *int             `json:"estoque"   validate:"omitempty,gte=0"`
	IsActive  *bool            `json:"isActive"`
}

type CreateItemPedidoRequest struct {
	ProdutoID  uint            `json:"produtoId"  validate:"required"`
	Quantidade int             `json:"quantidade" validate:"gt=0"`
	PrecoUnit  decimal.Decimal `json:"precoUnit"`
	Tamanho    string          `json:"tamanho"    validate:"omitempty,max=20"`
	Cor        string          `json:"cor"        validate:"omitempty,max=40"`
}

type CreatePedidoRequest struct {
	ClienteNome     string                    `json:"clienteNome"     validate:"required,max=120"`
	ClienteEmail    string                    `json:"clienteEmail"    validate:"required,email"`
	ClienteTelefone string                    `json:"clienteTelefone" validate:"required,max=30"`
	ClienteEndereco string                    `json:"clienteEndereco" validate:"omitempty,max=255"`
	LojistaID       uint                      `json:"lojistaId"       validate:"required"`
	Observacoes     string                    `json:"observacoes"     validate:"omitempty,max=1000"`
	Itens           []CreateItemPedidoRequest `json:"itens"           validate:"required,min=1,dive"`
}

type PatchPedidoRequest struct {
	Status      *string `json:"status"      validate:"omitempty,oneof=pendente pago enviado entregue cancelado"`
	Observacoes *string `json:"observacoes" validate:"omitempty,max=1000"`
}

type Cliente struct {
	Nome     string `json:"nome"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Telefone string `json:"telefone" validate:"required,max=30"`
	Endereco string `json:"endereco" validate:"omitempty,max=255"`
}

type CartLine struct {
	ProdutoID  uint            `json:"produtoId"  validate:"required"`
	Nome       string          `json:"nome"`
	Preco      decimal.Decimal `json:"preco"`
	Quantidade int             `json:"quantidade" validate:"gt=0"`
	Imagem     string          `json:"imagem"`
	Tamanho    string          `json:"tamanho"`
	Cor        string          `json:"cor"`
	LojistaID  uint            `json:"lojistaId"  validate:"required"`
}

type CheckoutRequest struct {
	Cliente     Cliente    `json:"cliente"`
	Observacoes string     `json:"observacoes" validate:"omitempty,max=1000"`
	Itens       []CartLine `json:"itens"       validate:"required,min=1,dive"`
}
