// internal/ui/confirm.go
package ui

import (
	"context"
	"fmt"

	"customer-admin/internal/domain/customer"

	"go.uber.org/zap"
)

// Confirm is the yes/no delete prompt for one customer.
type Confirm struct {
	target    customer.Customer
	api       CustomerAPI
	refresher Refresher
	release   func()
	logger    *zap.Logger
	closed    bool
	deleted   bool
	notice    string
}

func NewConfirm(api CustomerAPI, target customer.Customer, r Refresher, logger *zap.Logger) *Confirm {
	return &Confirm{
		target:    target,
		api:       api,
		refresher: r,
		logger:    logger,
	}
}

func (d *Confirm) Target() customer.Customer { return d.target }

func (d *Confirm) Closed() bool { return d.closed }

// Deleted reports whether Yes went through.
func (d *Confirm) Deleted() bool { return d.deleted }

func (d *Confirm) Notice() string { return d.notice }

func (d *Confirm) Prompt() string {
	return fmt.Sprintf("Are you sure you want to delete this customer %s ?", d.target.FullName())
}

// No closes the prompt and refreshes the listing.
func (d *Confirm) No() {
	if d.closed {
		return
	}
	d.finish()
}

// Yes deletes the customer. On failure the prompt stays open.
func (d *Confirm) Yes(ctx context.Context) error {
	if d.closed {
		return ErrClosed
	}

	if _, err := d.api.Delete(ctx, d.target.ID); err != nil {
		d.notice = GenericFailure
		d.logger.Error("failed to delete customer",
			zap.Int64("customer_id", d.target.ID),
			zap.Error(err),
		)
		return err
	}

	d.deleted = true
	d.notice = customer.MessageDeleted
	d.finish()
	return nil
}

func (d *Confirm) finish() {
	d.closed = true
	if d.release != nil {
		d.release()
		d.release = nil
	}
	if d.refresher != nil {
		d.refresher.Refresh()
	}
}
