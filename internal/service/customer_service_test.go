package service

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/spec-kit/bizops-service/pkg/util"
)

func TestCreateCustomer(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	customer, err := svc.CreateCustomer(context.Background(), CustomerInput{
		Name: "Acme", Email: "  Billing@Acme.COM ", Phone: "555-0101",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if customer.Email != "billing@acme.com" {
		t.Fatalf("email not normalized: %q", customer.Email)
	}
	if customer.Balance != 0 {
		t.Fatalf("new customer must start at zero balance, got %d", customer.Balance)
	}
}

func TestCreateCustomer_NameRequired(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	_, err := svc.CreateCustomer(context.Background(), CustomerInput{})
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) || derr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateCustomer_PreservesBalance(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	customer, err := svc.CreateCustomer(context.Background(), CustomerInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.AdjustBalance(context.Background(), customer.ID, 500); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	updated, err := svc.UpdateCustomer(context.Background(), customer.ID, CustomerInput{Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Acme Corp" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Balance != 500 {
		t.Fatalf("balance must survive profile updates, got %d", updated.Balance)
	}
}

func TestDeleteCustomer_NotFound(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	err := svc.DeleteCustomer(context.Background(), "missing")
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) || derr.Code != "NOT_FOUND" {
		t.Fatalf("expected not found, got %v", err)
	}
}
