// internal/ui/listing.go
package ui

import (
	"context"
	"fmt"
	"sync"

	"customer-admin/internal/domain/customer"
	"customer-admin/internal/validation"

	"go.uber.org/zap"
)

// Listing holds the fetched customers and launches at most one dialog at
// a time. A refresh marks the held copy stale; the next read re-fetches.
type Listing struct {
	mu        sync.Mutex
	api       CustomerAPI
	validator *validation.Validator
	logger    *zap.Logger
	customers []customer.Customer
	loaded    bool
	stale     bool
	modal     interface{}
}

func NewListing(api CustomerAPI, v *validation.Validator, logger *zap.Logger) *Listing {
	return &Listing{
		api:       api,
		validator: v,
		logger:    logger,
	}
}

// Load fetches the customers once. Later calls only fetch after a refresh.
func (l *Listing) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fetchLocked(ctx)
}

// Customers returns the held customers, re-fetching first when stale.
func (l *Listing) Customers(ctx context.Context) ([]customer.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.fetchLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]customer.Customer, len(l.customers))
	copy(out, l.customers)
	return out, nil
}

func (l *Listing) fetchLocked(ctx context.Context) error {
	if l.loaded && !l.stale {
		return nil
	}
	customers, err := l.api.List(ctx)
	if err != nil {
		l.logger.Error("failed to load customers", zap.Error(err))
		return err
	}
	l.customers = customers
	l.loaded = true
	l.stale = false
	return nil
}

// Refresh implements Refresher.
func (l *Listing) Refresh() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stale = true
}

// Modal returns the open *Form or *Confirm, or nil.
func (l *Listing) Modal() interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.modal
}

func (l *Listing) OpenAdd() (*Form, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.modal != nil {
		return nil, ErrModalOpen
	}
	f := NewCreateForm(l.api, l.validator, l, l.logger)
	l.attachLocked(f, &f.release)
	return f, nil
}

func (l *Listing) OpenEdit(id int64) (*Form, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.modal != nil {
		return nil, ErrModalOpen
	}
	c, err := l.findLocked(id)
	if err != nil {
		return nil, err
	}
	f := NewUpdateForm(l.api, l.validator, l, l.logger, &c)
	l.attachLocked(f, &f.release)
	return f, nil
}

func (l *Listing) OpenDelete(id int64) (*Confirm, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.modal != nil {
		return nil, ErrModalOpen
	}
	c, err := l.findLocked(id)
	if err != nil {
		return nil, err
	}
	d := NewConfirm(l.api, c, l, l.logger)
	l.attachLocked(d, &d.release)
	return d, nil
}

func (l *Listing) attachLocked(modal interface{}, release *func()) {
	l.modal = modal
	*release = func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.modal == modal {
			l.modal = nil
		}
	}
}

func (l *Listing) findLocked(id int64) (customer.Customer, error) {
	for _, c := range l.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return customer.Customer{}, fmt.Errorf("%w: %d", ErrUnknownID, id)
}
