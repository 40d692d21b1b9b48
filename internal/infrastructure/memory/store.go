// Package memory implementa los puertos de persistencia en memoria (tests y modo demo sin BD).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/pos-stock/internal/application/inventory"
	"github.com/jhoicas/pos-stock/internal/application/orders"
	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
	"github.com/jhoicas/pos-stock/internal/domain/repository"
)

var (
	_ inventory.TxRunner                 = (*Store)(nil)
	_ orders.TxRunner                    = (*Store)(nil)
	_ repository.ProductRepository       = productRepo{}
	_ repository.EmployeeRepository      = employeeRepo{}
	_ repository.InventoryRepository     = (*InventoryRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// Store guarda productos, empleados, inventario y movimientos.
// Las transacciones se serializan y trabajan sobre una copia que se publica solo en Commit.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *state

	products  map[string]*entity.Product
	employees map[string]*entity.Employee
}

type state struct {
	inventory map[string]*entity.Inventory
	movements []*entity.StockMovement
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		data:      &state{inventory: map[string]*entity.Inventory{}},
		products:  map[string]*entity.Product{},
		employees: map[string]*entity.Employee{},
	}
}

// AddProduct registra un producto en el catálogo.
func (s *Store) AddProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	s.products[p.ID] = &c
}

// AddEmployee registra un empleado.
func (s *Store) AddEmployee(e *entity.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *e
	s.employees[e.ID] = &c
}

// Products devuelve el repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return productRepo{s: s} }

// Employees devuelve el repositorio de empleados.
func (s *Store) Employees() repository.EmployeeRepository { return employeeRepo{s: s} }

// Inventory repositorio de inventario fuera de transacción.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{s: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{s: s} }

// Run ejecuta fn con repositorios sobre una copia del estado. Si fn falla la copia se descarta.
func (s *Store) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	if err := fn(&InventoryRepo{s: s, tx: work}, &StockMovementRepo{s: s, tx: work}); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

// view ejecuta fn sobre el estado: el de la tx si existe, si no el confirmado.
func (s *Store) view(tx *state, write bool, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	if write {
		s.mu.Lock()
		defer s.mu.Unlock()
	} else {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn(s.data)
}

func (st *state) clone() *state {
	out := &state{
		inventory: make(map[string]*entity.Inventory, len(st.inventory)),
		movements: make([]*entity.StockMovement, len(st.movements)),
	}
	for k, v := range st.inventory {
		out.inventory[k] = cloneInventory(v)
	}
	copy(out.movements, st.movements) // los movimientos son inmutables
	return out
}

type productRepo struct{ s *Store }

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

type employeeRepo struct{ s *Store }

func (r employeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, nil
	}
	c := *e
	return &c, nil
}

// InventoryRepo InventoryRepository en memoria. Devuelve copias: los cambios solo se guardan con Update.
type InventoryRepo struct {
	s  *Store
	tx *state
}

func (r *InventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	return r.s.view(r.tx, true, func(st *state) error {
		for _, existing := range st.inventory {
			if existing.ProductID == inv.ProductID {
				return domain.Duplicate("ya existe inventario para el producto %s", inv.ProductID)
			}
		}
		st.inventory[inv.ID] = cloneInventory(inv)
		return nil
	})
}

func (r *InventoryRepo) Update(_ context.Context, inv *entity.Inventory) error {
	return r.s.view(r.tx, true, func(st *state) error {
		cur, ok := st.inventory[inv.ID]
		if !ok || cur.Version != inv.Version {
			return domain.ErrConflict
		}
		inv.Version++
		st.inventory[inv.ID] = cloneInventory(inv)
		return nil
	})
}

func (r *InventoryRepo) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	var out *entity.Inventory
	err := r.s.view(r.tx, false, func(st *state) error {
		if inv, ok := st.inventory[id]; ok {
			out = cloneInventory(inv)
		}
		return nil
	})
	return out, err
}

func (r *InventoryRepo) GetByProduct(_ context.Context, productID string) (*entity.Inventory, error) {
	var out *entity.Inventory
	err := r.s.view(r.tx, false, func(st *state) error {
		for _, inv := range st.inventory {
			if inv.ProductID == productID {
				out = cloneInventory(inv)
				break
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: las transacciones ya están serializadas.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryRepo) GetByProductForUpdate(ctx context.Context, productID string) (*entity.Inventory, error) {
	return r.GetByProduct(ctx, productID)
}

func (r *InventoryRepo) List(_ context.Context) ([]*entity.Inventory, error) {
	return r.filter(func(*entity.Inventory) bool { return true })
}

func (r *InventoryRepo) ListLowStock(_ context.Context) ([]*entity.Inventory, error) {
	return r.filter(func(inv *entity.Inventory) bool { return inv.IsActive && inv.IsLowStock() })
}

func (r *InventoryRepo) filter(keep func(*entity.Inventory) bool) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	err := r.s.view(r.tx, false, func(st *state) error {
		for _, inv := range st.inventory {
			if keep(inv) {
				out = append(out, cloneInventory(inv))
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

// StockMovementRepo StockMovementRepository en memoria.
type StockMovementRepo struct {
	s  *Store
	tx *state
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.s.view(r.tx, true, func(st *state) error {
		c := *m
		st.movements = append(st.movements, &c)
		return nil
	})
}

func (r *StockMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.s.view(r.tx, false, func(st *state) error {
		for _, m := range st.movements {
			if m.ID == id {
				c := *m
				out = &c
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	return r.filter(func(m *entity.StockMovement) bool {
		if m.ProductID != productID {
			return false
		}
		if from != nil && m.CreatedAt.Before(*from) {
			return false
		}
		return to == nil || !m.CreatedAt.After(*to)
	})
}

func (r *StockMovementRepo) ListByReference(_ context.Context, referenceNumber string) ([]*entity.StockMovement, error) {
	return r.filter(func(m *entity.StockMovement) bool { return m.ReferenceNumber == referenceNumber })
}

func (r *StockMovementRepo) List(_ context.Context) ([]*entity.StockMovement, error) {
	return r.filter(func(*entity.StockMovement) bool { return true })
}

// filter devuelve copias del más reciente al más antiguo; a igual fecha, el último insertado primero.
func (r *StockMovementRepo) filter(keep func(*entity.StockMovement) bool) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.s.view(r.tx, false, func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			if keep(st.movements[i]) {
				c := *st.movements[i]
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func cloneInventory(inv *entity.Inventory) *entity.Inventory {
	c := *inv
	if inv.LastRestockDate != nil {
		t := *inv.LastRestockDate
		c.LastRestockDate = &t
	}
	if inv.LastStockCheckDate != nil {
		t := *inv.LastStockCheckDate
		c.LastStockCheckDate = &t
	}
	return &c
}
