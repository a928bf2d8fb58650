// internal/domain/customer/repository.go
package customer

import "context"

type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	FindByID(ctx context.Context, id int64) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id int64) error

	// Uniqueness checks. excludeID > 0 ignores that record so an update
	// may keep its own mobile number and email.
	ExistsByMobile(ctx context.Context, mobileNo string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}
