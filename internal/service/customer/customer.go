// internal/service/customer/customer.go
package customer

import (
	"context"

	"customer-admin/internal/domain/customer"
	xerrors "customer-admin/internal/pkg/errors"
	"customer-admin/internal/validation"

	"go.uber.org/zap"
)

// Change actions sent to the publisher.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangePublisher is told about every successful mutation.
type ChangePublisher interface {
	CustomersChanged(action string, customerID int64)
}

type CustomerService struct {
	customerRepo customer.Repository
	validator    *validation.Validator
	publisher    ChangePublisher
	logger       *zap.Logger
}

func NewCustomerService(
	customerRepo customer.Repository,
	validator *validation.Validator,
	publisher ChangePublisher,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		validator:    validator,
		publisher:    publisher,
		logger:       logger,
	}
}

// ListCustomers returns every customer ordered by id
func (s *CustomerService) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list customers", zap.Error(err))
		return nil, xerrors.Wrap(err, "failed to list customers")
	}
	return customers, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	return s.customerRepo.FindByID(ctx, customerID)
}

// CreateCustomer validates c, rejects taken mobile/email and stores it
func (s *CustomerService) CreateCustomer(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	c.ID = 0
	if err := s.checkSave(ctx, c, 0); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		if _, ok := xerrors.AsConflict(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, xerrors.Wrap(err, "failed to create customer")
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", c.ID),
		zap.String("mobile_no", c.MobileNo),
	)
	s.publish(ActionCreated, c.ID)

	return c, nil
}

// UpdateCustomer overwrites an existing customer. The record's own mobile
// number and email never count as a conflict.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID int64, c *customer.Customer) (*customer.Customer, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	c.ID = customerID
	if err := s.checkSave(ctx, c, customerID); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, c); err != nil {
		if _, ok := xerrors.AsConflict(err); ok || xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update customer", zap.Int64("customer_id", customerID), zap.Error(err))
		return nil, xerrors.Wrap(err, "failed to update customer")
	}

	s.logger.Info("customer updated", zap.Int64("customer_id", customerID))
	s.publish(ActionUpdated, customerID)

	return c, nil
}

// DeleteCustomer permanently removes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete customer", zap.Int64("customer_id", customerID), zap.Error(err))
		return xerrors.Wrap(err, "failed to delete customer")
	}

	s.logger.Info("customer deleted", zap.Int64("customer_id", customerID))
	s.publish(ActionDeleted, customerID)

	return nil
}

func (s *CustomerService) checkSave(ctx context.Context, c *customer.Customer, excludeID int64) error {
	if errs := s.validator.ValidateCustomer(c); !errs.Valid() {
		return &xerrors.ValidationError{Fields: errs.Messages()}
	}

	reason, err := s.conflictReason(ctx, c, excludeID)
	if err != nil {
		return err
	}
	if reason != customer.ConflictNone {
		s.logger.Info("customer rejected, unique field taken",
			zap.String("reason", string(reason)),
			zap.Int64("customer_id", excludeID),
		)
		return xerrors.NewConflict(reason)
	}
	return nil
}

func (s *CustomerService) conflictReason(ctx context.Context, c *customer.Customer, excludeID int64) (customer.ConflictReason, error) {
	mobileTaken, err := s.customerRepo.ExistsByMobile(ctx, c.MobileNo, excludeID)
	if err != nil {
		return customer.ConflictNone, xerrors.Wrap(err, "failed to check mobile number")
	}
	emailTaken, err := s.customerRepo.ExistsByEmail(ctx, c.Email, excludeID)
	if err != nil {
		return customer.ConflictNone, xerrors.Wrap(err, "failed to check email")
	}
	return customer.ReasonFor(mobileTaken, emailTaken), nil
}

func (s *CustomerService) publish(action string, customerID int64) {
	if s.publisher != nil {
		s.publisher.CustomersChanged(action, customerID)
	}
}
