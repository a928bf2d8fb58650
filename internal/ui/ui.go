// Package ui holds the admin flows that sit between a rendered page and the
// customer API: the listing, the add/edit form and the delete prompt.
package ui

import (
	"context"
	"errors"

	"customer-admin/internal/client"
	"customer-admin/internal/domain/customer"
)

// GenericFailure is shown when the API could not be reached or failed.
const GenericFailure = "Something went wrong, please try again."

var (
	ErrModalOpen  = errors.New("another dialog is already open")
	ErrNotEditing = errors.New("form is not accepting input")
	ErrUnknownID  = errors.New("customer is not in the listing")
	ErrClosed     = errors.New("dialog already closed")
)

// CustomerAPI is the subset of client.CustomerClient the flows need.
type CustomerAPI interface {
	List(ctx context.Context) ([]customer.Customer, error)
	Create(ctx context.Context, in *customer.Customer) (*client.Ack, error)
	Update(ctx context.Context, id int64, in *customer.Customer) (*client.Ack, error)
	Delete(ctx context.Context, id int64) (*client.Ack, error)
}

// Refresher is told when a dialog closes after a mutation, so the listing
// can be rebuilt from the server.
type Refresher interface {
	Refresh()
}

type RefresherFunc func()

func (f RefresherFunc) Refresh() { f() }
