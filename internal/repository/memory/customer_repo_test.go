package memory

import (
	"context"
	"errors"
	"testing"

	"customer-admin/internal/domain/customer"
	xerrors "customer-admin/internal/pkg/errors"
)

func newCustomer(mobile, email string) *customer.Customer {
	return &customer.Customer{
		FirstName:      "Grace",
		LastName:       "Hopper",
		MobileNo:       mobile,
		AddressLineOne: "1 Navy Yard",
		AddressLineTwo: "Arlington",
		Age:            40,
		Email:          email,
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewCustomerRepository()
	ctx := context.Background()

	a := newCustomer("0711111111", "a@example.com")
	b := newCustomer("0722222222", "b@example.com")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if a.ID != 1 || b.ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", a.ID, b.ID)
	}

	list, _ := repo.List(ctx)
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestCreateRejectsDuplicates(t *testing.T) {
	repo := NewCustomerRepository()
	ctx := context.Background()
	_ = repo.Create(ctx, newCustomer("0711111111", "a@example.com"))

	err := repo.Create(ctx, newCustomer("0711111111", "a@example.com"))
	reason, ok := xerrors.AsConflict(err)
	if !ok || reason != customer.ConflictMobileAndEmail {
		t.Fatalf("expected mobile_and_email conflict, got %v", err)
	}
	if !errors.Is(err, xerrors.ErrConflict) {
		t.Errorf("conflict should match ErrConflict")
	}
}

func TestExistsExcludesOwnRecord(t *testing.T) {
	repo := NewCustomerRepository()
	ctx := context.Background()
	c := newCustomer("0711111111", "a@example.com")
	_ = repo.Create(ctx, c)

	if ok, _ := repo.ExistsByMobile(ctx, c.MobileNo, 0); !ok {
		t.Error("expected mobile to exist")
	}
	if ok, _ := repo.ExistsByMobile(ctx, c.MobileNo, c.ID); ok {
		t.Error("own record should be excluded")
	}
	if ok, _ := repo.ExistsByEmail(ctx, c.Email, c.ID); ok {
		t.Error("own record should be excluded")
	}

	c.FirstName = "Amazing"
	if err := repo.Update(ctx, c); err != nil {
		t.Fatalf("update with unchanged unique fields: %v", err)
	}
}

func TestDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	repo := NewCustomerRepository()
	ctx := context.Background()
	_ = repo.Create(ctx, newCustomer("0711111111", "a@example.com"))

	if err := repo.Delete(ctx, 99); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	list, _ := repo.List(ctx)
	if len(list) != 1 {
		t.Errorf("expected store unchanged, got %d records", len(list))
	}

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, 1); !errors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("expected record gone, got %v", err)
	}
}

func TestUpdateMissing(t *testing.T) {
	repo := NewCustomerRepository()
	c := newCustomer("0711111111", "a@example.com")
	c.ID = 5
	if err := repo.Update(context.Background(), c); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
