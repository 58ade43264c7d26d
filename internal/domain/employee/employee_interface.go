package employee

import "context"

// EmployeeRepository defines the interface for employee data access.
// GetByID returns nil, nil when no row matches.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	Update(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context, spec Specification, sort Sort) ([]*Employee, error)
	FindPage(ctx context.Context, page PageRequest) ([]*Employee, int64, error)
}

// EmployeeService defines the interface for employee business logic
type EmployeeService interface {
	CreateEmployee(ctx context.Context, dto *EmployeeDto) (*EmployeeDto, error)
	GetEmployeeByID(ctx context.Context, id int64) (*EmployeeDto, error)
	GetAllEmployees(ctx context.Context) ([]EmployeeDto, error)
	UpdateEmployee(ctx context.Context, id int64, dto *EmployeeDto) (*EmployeeDto, error)
	DeleteEmployee(ctx context.Context, id int64) error
	GetAllEmployeesWithPagination(ctx context.Context, offset, pageSize int) (*Page, error)
	GetAllEmployeesWithSorting(ctx context.Context, field string) ([]EmployeeDto, error)
	GetAllEmployeesWithFilter(ctx context.Context, email string) ([]EmployeeDto, error)
}
