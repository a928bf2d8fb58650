// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customer-admin/internal/domain/customer"
	xerrors "customer-admin/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Unique index names created by the migrations.
const (
	mobileIndex = "uq_customers_mobile_no"
	emailIndex  = "uq_customers_email"
)

const customerColumns = `id, first_name, last_name, date_of_birth, mobile_no,
	address_line_one, address_line_two, age, gender, email`

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var _ customer.Repository = (*CustomerRepository)(nil)

// List returns all customers ordered by id
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []customer.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return customers, nil
}

// FindByID retrieves a customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return c, nil
}

// Create inserts c and sets its ID
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			first_name, last_name, date_of_birth, mobile_no,
			address_line_one, address_line_two, age, gender, email
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		c.FirstName, c.LastName, c.DateOfBirth.Time, c.MobileNo,
		c.AddressLineOne, c.AddressLineTwo, c.Age, c.Gender, c.Email,
	).Scan(&c.ID)
	if err != nil {
		if conflict := asUniqueConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// Update overwrites every column of an existing customer
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers SET
			first_name = $2, last_name = $3, date_of_birth = $4, mobile_no = $5,
			address_line_one = $6, address_line_two = $7, age = $8, gender = $9,
			email = $10, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query, c.ID,
		c.FirstName, c.LastName, c.DateOfBirth.Time, c.MobileNo,
		c.AddressLineOne, c.AddressLineTwo, c.Age, c.Gender, c.Email,
	)
	if err != nil {
		if conflict := asUniqueConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete permanently removes a customer
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ExistsByMobile checks for another customer with the same mobile number
func (r *CustomerRepository) ExistsByMobile(ctx context.Context, mobileNo string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE mobile_no = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, mobileNo, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check mobile number: %w", err)
	}
	return exists, nil
}

// ExistsByEmail checks for another customer with the same email
func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	var dob time.Time
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &dob, &c.MobileNo,
		&c.AddressLineOne, &c.AddressLineTwo, &c.Age, &c.Gender, &c.Email,
	)
	if err != nil {
		return nil, err
	}
	c.DateOfBirth = customer.NewDate(dob)
	return &c, nil
}

// asUniqueConflict maps a unique index violation to the field it guards.
// Concurrent writers can slip past the Exists checks; the index still wins.
func asUniqueConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case mobileIndex:
		return xerrors.NewConflict(customer.ConflictMobile)
	case emailIndex:
		return xerrors.NewConflict(customer.ConflictEmail)
	}
	return fmt.Errorf("%w: %s", xerrors.ErrDuplicateEntry, pgErr.ConstraintName)
}
