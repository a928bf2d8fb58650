// internal/repository/memory/customer_repo.go
package memory

import (
	"context"
	"sort"
	"sync"

	"customer-admin/internal/domain/customer"
	xerrors "customer-admin/internal/pkg/errors"
)

// CustomerRepository keeps customers in process memory. It backs the API
// when no database is configured and is used throughout the tests.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[int64]customer.Customer
	nextID    int64
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[int64]customer.Customer),
		nextID:    1,
	}
}

var _ customer.Repository = (*CustomerRepository)(nil)

func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]customer.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reason := r.conflictLocked(c, 0); reason != customer.ConflictNone {
		return xerrors.NewConflict(reason)
	}

	c.ID = r.nextID
	r.nextID++
	r.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[c.ID]; !ok {
		return xerrors.ErrNotFound
	}
	if reason := r.conflictLocked(c, c.ID); reason != customer.ConflictNone {
		return xerrors.NewConflict(reason)
	}

	r.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *CustomerRepository) ExistsByMobile(ctx context.Context, mobileNo string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, c := range r.customers {
		if id != excludeID && c.MobileNo == mobileNo {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, c := range r.customers {
		if id != excludeID && c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// conflictLocked plays the role of the unique indexes. r.mu must be held.
func (r *CustomerRepository) conflictLocked(c *customer.Customer, excludeID int64) customer.ConflictReason {
	var mobileTaken, emailTaken bool
	for id, existing := range r.customers {
		if id == excludeID {
			continue
		}
		mobileTaken = mobileTaken || existing.MobileNo == c.MobileNo
		emailTaken = emailTaken || existing.Email == c.Email
	}
	return customer.ReasonFor(mobileTaken, emailTaken)
}
