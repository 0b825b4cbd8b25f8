package cart

import (
	"slices"
	"sync"

	"github.com/Skotchmaster/vitrine/internal/transport"
)

// Store owns one cart. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	state State
}

func NewStore(initial State) *Store {
	return &Store{state: State{Lines: slices.Clone(initial.Lines)}}
}

// Dispatch applies a and returns a copy of the new state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return State{Lines: slices.Clone(s.state.Lines)}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Lines: slices.Clone(s.state.Lines)}
}

// Checkout builds the order request from a consistent snapshot of the cart.
func (s *Store) Checkout(c transport.Cliente, observacoes string) (transport.CreatePedidoRequest, error) {
	return Checkout(s.Snapshot(), c, observacoes)
}
