// Package memory implementa el almacén de calcetines en memoria (SOCKS_STORAGE=memory).
// Útil en desarrollo, en la CLI sin base de datos y en tests. Las transacciones se serializan
// con un mutex y trabajan sobre una copia del estado que solo se publica al confirmar.
package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/jhoicas/socks-api/internal/domain"
	"github.com/jhoicas/socks-api/internal/domain/entity"
	"github.com/jhoicas/socks-api/internal/domain/repository"
)

var _ repository.SocksRepository = (*Store)(nil)

type socksKey struct {
	color  string
	cotton int64
}

type state struct {
	byID  map[string]entity.Socks
	byKey map[socksKey]string
}

func newState() *state {
	return &state{byID: map[string]entity.Socks{}, byKey: map[socksKey]string{}}
}

func (s *state) clone() *state {
	c := &state{
		byID:  make(map[string]entity.Socks, len(s.byID)),
		byKey: make(map[socksKey]string, len(s.byKey)),
	}
	for k, v := range s.byID {
		c.byID[k] = v
	}
	for k, v := range s.byKey {
		c.byKey[k] = v
	}
	return c
}

// Store almacén en memoria. Implementa SocksRepository (lecturas) y socks.TxRunner.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn sobre una copia del estado; si fn devuelve nil la copia reemplaza al estado actual.
func (st *Store) Run(ctx context.Context, fn func(repo repository.SocksRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	work := st.state.clone()
	if err := fn(&txRepo{st: work}); err != nil {
		return err
	}
	st.state = work
	return nil
}

// Len número de registros (útil en tests).
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.state.byID)
}

func (st *Store) read() *txRepo {
	return &txRepo{st: st.state}
}

func (st *Store) GetByIDForUpdate(ctx context.Context, id string) (*entity.Socks, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.read().GetByIDForUpdate(ctx, id)
}

func (st *Store) GetByKeyForUpdate(ctx context.Context, color string, cottonPercentage int64) (*entity.Socks, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.read().GetByKeyForUpdate(ctx, color, cottonPercentage)
}

// CreateIfAbsent y Update fuera de Run se aplican en su propia transacción.
func (st *Store) CreateIfAbsent(ctx context.Context, s *entity.Socks) error {
	return st.Run(ctx, func(repo repository.SocksRepository) error { return repo.CreateIfAbsent(ctx, s) })
}

func (st *Store) Update(ctx context.Context, s *entity.Socks) error {
	return st.Run(ctx, func(repo repository.SocksRepository) error { return repo.Update(ctx, s) })
}

func (st *Store) FindByFilter(ctx context.Context, filter entity.QuantityFilter) ([]*entity.Socks, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.read().FindByFilter(ctx, filter)
}

func (st *Store) Random(ctx context.Context) (*entity.Socks, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.read().Random(ctx)
}

// txRepo repositorio atado a un estado (el publicado o la copia de una transacción).
type txRepo struct {
	st *state
}

func (r *txRepo) byID(id string) *entity.Socks {
	s, ok := r.st.byID[id]
	if !ok {
		return nil
	}
	return &s
}

func (r *txRepo) GetByIDForUpdate(_ context.Context, id string) (*entity.Socks, error) {
	return r.byID(id), nil
}

func (r *txRepo) GetByKeyForUpdate(_ context.Context, color string, cottonPercentage int64) (*entity.Socks, error) {
	id, ok := r.st.byKey[socksKey{color, cottonPercentage}]
	if !ok {
		return nil, nil
	}
	return r.byID(id), nil
}

func (r *txRepo) CreateIfAbsent(_ context.Context, s *entity.Socks) error {
	key := socksKey{s.Color, s.CottonPercentage}
	if _, ok := r.st.byKey[key]; ok {
		return nil
	}
	if _, ok := r.st.byID[s.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.byID[s.ID] = *s
	r.st.byKey[key] = s.ID
	return nil
}

func (r *txRepo) Update(_ context.Context, s *entity.Socks) error {
	prev, ok := r.st.byID[s.ID]
	if !ok {
		return domain.ErrSocksNotFound
	}
	key := socksKey{s.Color, s.CottonPercentage}
	if owner, taken := r.st.byKey[key]; taken && owner != s.ID {
		return domain.ErrConflict
	}
	delete(r.st.byKey, socksKey{prev.Color, prev.CottonPercentage})
	r.st.byKey[key] = s.ID
	updated := *s
	updated.CreatedAt = prev.CreatedAt
	r.st.byID[s.ID] = updated
	return nil
}

func (r *txRepo) FindByFilter(_ context.Context, filter entity.QuantityFilter) ([]*entity.Socks, error) {
	var list []*entity.Socks
	for _, id := range r.sortedIDs() {
		s := r.st.byID[id]
		if filter.Matches(&s) {
			list = append(list, &s)
		}
	}
	filter.Sort(list)
	return list, nil
}

func (r *txRepo) Random(_ context.Context) (*entity.Socks, error) {
	ids := r.sortedIDs()
	if len(ids) == 0 {
		return nil, nil
	}
	s := r.st.byID[ids[rand.Intn(len(ids))]]
	return &s, nil
}

func (r *txRepo) sortedIDs() []string {
	ids := make([]string, 0, len(r.st.byID))
	for id := range r.st.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
