package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/repository"
	apperrors "github.com/spec-kit/bizops-service/pkg/util"
)

// CustomerService manages the customer book.
type CustomerService struct {
	customers repository.CustomerRepository
}

// NewCustomerService builds the service.
func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// CustomerInput carries create/update fields.
type CustomerInput struct {
	Name  string
	Phone string
	Email string
	Notes string
}

// CreateCustomer adds a customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	customer := &domain.Customer{
		Name:  input.Name,
		Phone: input.Phone,
		Email: NormalizeEmail(input.Email),
		Notes: input.Notes,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer fetches by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", nil)
		}
		return nil, err
	}
	return customer, nil
}

// ListCustomers lists with the given filter.
func (s *CustomerService) ListCustomers(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	return s.customers.List(ctx, filter)
}

// UpdateCustomer replaces the contact fields of a customer. Balance moves
// only through transactions.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, input CustomerInput) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	customer.Name = input.Name
	customer.Phone = input.Phone
	customer.Email = NormalizeEmail(input.Email)
	customer.Notes = input.Notes

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer", nil)
		}
		return err
	}
	return nil
}
