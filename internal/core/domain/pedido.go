package domain

import "time"

// PedidoStatus represents the lifecycle state of an order.
type PedidoStatus string

const (
	StatusPendente  PedidoStatus = "pendente"
	StatusEmPreparo PedidoStatus = "em-preparo"
	StatusPronto    PedidoStatus = "pronto"
	StatusEntregue  PedidoStatus = "entregue"
)

// validTransitions defines the allowed order state machine.
var validTransitions = map[PedidoStatus][]PedidoStatus{
	StatusPendente:  {StatusEmPreparo},
	StatusEmPreparo: {StatusPronto},
	StatusPronto:    {StatusEntregue},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s PedidoStatus) bool {
	switch s {
	case StatusPendente, StatusEmPreparo, StatusPronto, StatusEntregue:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s PedidoStatus) CanTransitionTo(next PedidoStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Pedido is an order placed for a product.
type Pedido struct {
	ID          uint         `json:"id"`
	ClienteNome string       `json:"cliente_nome"`
	ProdutoID   uint         `json:"produto_id"`
	Produto     *Product     `json:"produto,omitempty"`
	Quantidade  int          `json:"quantidade"`
	Status      PedidoStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
