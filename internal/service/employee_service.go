package service

import (
	"context"
	"fmt"

	"employee-records/internal/domain/employee"
	"employee-records/internal/mapper"
	"employee-records/pkg/logger"
)

// employeeService implements the EmployeeService interface
type employeeService struct {
	employeeRepo employee.EmployeeRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
	}
}

// CreateEmployee persists a new employee. Any client-supplied id is ignored.
func (s *employeeService) CreateEmployee(ctx context.Context, dto *employee.EmployeeDto) (*employee.EmployeeDto, error) {
	logger.Info("Creating employee with email: %s", dto.Email)

	e := mapper.ToEmployee(dto)
	e.ID = 0

	if err := s.employeeRepo.Create(ctx, e); err != nil {
		logger.Error("Failed to create employee: %v", err)
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	logger.Info("Employee created successfully with ID: %d", e.ID)
	return mapper.ToEmployeeDto(e), nil
}

// GetEmployeeByID retrieves an employee by id
func (s *employeeService) GetEmployeeByID(ctx context.Context, id int64) (*employee.EmployeeDto, error) {
	logger.Debug("Getting employee with ID: %d", id)

	e, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	return mapper.ToEmployeeDto(e), nil
}

// GetAllEmployees lists every employee
func (s *employeeService) GetAllEmployees(ctx context.Context) ([]employee.EmployeeDto, error) {
	logger.Debug("Listing all employees")

	employees, err := s.employeeRepo.FindAll(ctx, nil, employee.SortByID)
	if err != nil {
		logger.Error("Failed to list employees: %v", err)
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return mapper.ToEmployeeDtos(employees), nil
}

// UpdateEmployee overwrites first name, last name and email of an existing employee
func (s *employeeService) UpdateEmployee(ctx context.Context, id int64, dto *employee.EmployeeDto) (*employee.EmployeeDto, error) {
	logger.Info("Updating employee with ID: %d", id)

	e, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	e.FirstName = dto.FirstName
	e.LastName = dto.LastName
	e.Email = dto.Email

	if err := s.employeeRepo.Update(ctx, e); err != nil {
		logger.Error("Failed to update employee: %v", err)
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	logger.Info("Employee updated successfully with ID: %d", id)
	return mapper.ToEmployeeDto(e), nil
}

// DeleteEmployee removes an existing employee
func (s *employeeService) DeleteEmployee(ctx context.Context, id int64) error {
	logger.Info("Deleting employee with ID: %d", id)

	if _, err := s.findExisting(ctx, id); err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete employee: %v", err)
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	logger.Info("Employee deleted successfully with ID: %d", id)
	return nil
}

// GetAllEmployeesWithPagination returns the page at offset (a zero-based page index) of pageSize rows
func (s *employeeService) GetAllEmployeesWithPagination(ctx context.Context, offset, pageSize int) (*employee.Page, error) {
	logger.Debug("Getting employees page %d of size %d", offset, pageSize)

	req, err := employee.NewPageRequest(offset, pageSize)
	if err != nil {
		return nil, err
	}

	employees, total, err := s.employeeRepo.FindPage(ctx, req)
	if err != nil {
		logger.Error("Failed to get employees page: %v", err)
		return nil, fmt.Errorf("failed to get employees page: %w", err)
	}

	return employee.NewPage(mapper.ToEmployeeDtos(employees), req, total), nil
}

// GetAllEmployeesWithSorting lists every employee ordered ascending by field
func (s *employeeService) GetAllEmployeesWithSorting(ctx context.Context, field string) ([]employee.EmployeeDto, error) {
	logger.Debug("Listing employees sorted by: %s", field)

	sort, err := employee.SortAscending(field)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.FindAll(ctx, nil, sort)
	if err != nil {
		logger.Error("Failed to list sorted employees: %v", err)
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return mapper.ToEmployeeDtos(employees), nil
}

// GetAllEmployeesWithFilter lists employees whose email contains the given text.
// A blank filter returns everyone.
func (s *employeeService) GetAllEmployeesWithFilter(ctx context.Context, email string) ([]employee.EmployeeDto, error) {
	logger.Debug("Listing employees with email containing: %s", email)

	employees, err := s.employeeRepo.FindAll(ctx, employee.And(employee.FilterByEmail(email)), employee.SortByID)
	if err != nil {
		logger.Error("Failed to filter employees: %v", err)
		return nil, fmt.Errorf("failed to filter employees: %w", err)
	}

	return mapper.ToEmployeeDtos(employees), nil
}

func (s *employeeService) findExisting(ctx context.Context, id int64) (*employee.Employee, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get employee: %v", err)
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if e == nil {
		return nil, employee.NewNotFoundError(id)
	}

	return e, nil
}
