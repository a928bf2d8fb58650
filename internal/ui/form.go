// internal/ui/form.go
package ui

import (
	"context"
	"strconv"

	"customer-admin/internal/client"
	"customer-admin/internal/domain/customer"
	"customer-admin/internal/validation"

	"go.uber.org/zap"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Outcome is the result of one Submit.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeSaved
	OutcomeConflict
	OutcomeFailed
)

// Form is the add/edit dialog. It moves Editing -> Submitting and then to
// Closing on success, or back to Editing on a conflict or failure.
type Form struct {
	mode      Mode
	id        int64
	values    validation.Values
	errs      validation.Errors
	state     State
	notice    string
	api       CustomerAPI
	validator *validation.Validator
	refresher Refresher
	release   func()
	logger    *zap.Logger
}

// NewCreateForm opens an empty form with gender defaulted to male.
func NewCreateForm(api CustomerAPI, v *validation.Validator, r Refresher, logger *zap.Logger) *Form {
	return &Form{
		mode:      ModeCreate,
		values:    validation.Values{Gender: strconv.Itoa(customer.GenderMale)},
		errs:      validation.Errors{},
		api:       api,
		validator: v,
		refresher: r,
		logger:    logger,
	}
}

// NewUpdateForm opens a form pre-populated from c.
func NewUpdateForm(api CustomerAPI, v *validation.Validator, r Refresher, logger *zap.Logger, c *customer.Customer) *Form {
	return &Form{
		mode:      ModeUpdate,
		id:        c.ID,
		values:    validation.FromCustomer(c),
		errs:      validation.Errors{},
		api:       api,
		validator: v,
		refresher: r,
		logger:    logger,
	}
}

func (f *Form) Mode() Mode { return f.mode }
func (f *Form) ID() int64 { return f.id }
func (f *Form) State() State { return f.state }
func (f *Form) Values() validation.Values { return f.values }
func (f *Form) Errors() validation.Errors { return f.errs }
func (f *Form) Notice() string { return f.notice }

func (f *Form) Message(fl validation.Field) string {
	return validation.Message(fl, f.errs[fl])
}

// Set stores one field and re-checks it against the current time. Any
// server conflict on that field is dropped.
func (f *Form) Set(fl validation.Field, value string) error {
	if f.state != StateEditing {
		return ErrNotEditing
	}
	f.values.Put(fl, value)
	f.errs.Set(fl, f.validator.Check(fl, value))
	return nil
}

// SetAll applies every field of values, as a posted form does.
func (f *Form) SetAll(values validation.Values) error {
	for _, fl := range validation.Fields {
		if err := f.Set(fl, values.Get(fl)); err != nil {
			return err
		}
	}
	return nil
}

// Submit validates every field and, if all pass, sends the record.
// Invalid input is a no-op apart from the per-field messages.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	if f.state != StateEditing {
		return OutcomeInvalid, ErrNotEditing
	}

	f.notice = ""
	f.errs = f.validator.Validate(f.values)
	if !f.errs.Valid() {
		return OutcomeInvalid, nil
	}

	rec, err := f.values.Customer()
	if err != nil {
		return OutcomeInvalid, err
	}

	f.state = StateSubmitting
	if f.mode == ModeCreate {
		_, err = f.api.Create(ctx, rec)
	} else {
		_, err = f.api.Update(ctx, f.id, rec)
	}

	if reason, ok := client.AsConflict(err); ok {
		f.state = StateEditing
		if reason.Mobile() {
			f.errs.Set(validation.MobileNo, f.errs[validation.MobileNo].With(validation.Exists))
		}
		if reason.Email() {
			f.errs.Set(validation.Email, f.errs[validation.Email].With(validation.Exists))
		}
		return OutcomeConflict, nil
	}
	if err != nil {
		f.state = StateEditing
		f.notice = GenericFailure
		f.logger.Error("failed to save customer",
			zap.Int64("customer_id", f.id),
			zap.Error(err),
		)
		return OutcomeFailed, err
	}

	f.state = StateClosing
	if f.mode == ModeCreate {
		f.notice = customer.MessageAdded
	} else {
		f.notice = customer.MessageUpdated
	}
	return OutcomeSaved, nil
}

// Close finishes a saved form and asks the listing to refresh.
func (f *Form) Close() {
	if f.state != StateClosing {
		return
	}
	f.state = StateClosed
	f.done()
	if f.refresher != nil {
		f.refresher.Refresh()
	}
}

// Cancel discards an unsaved form without touching the listing. A form
// that already saved is closed as by Close.
func (f *Form) Cancel() {
	if f.state == StateClosing {
		f.Close()
		return
	}
	if f.state == StateClosed || f.state == StateSubmitting {
		return
	}
	f.state = StateClosed
	f.done()
}

func (f *Form) done() {
	if f.release != nil {
		f.release()
		f.release = nil
	}
}
