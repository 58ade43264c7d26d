package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"employee-records/internal/domain/employee"
)

// ErrDuplicateEmail mirrors the unique constraint on employees.email_id
var ErrDuplicateEmail = errors.New("duplicate key value violates unique constraint on email_id")

// memoryEmployeeRepository is an in-memory implementation of EmployeeRepository,
// selected with database.driver=memory and used by the service tests
type memoryEmployeeRepository struct {
	employees map[int64]*employee.Employee
	nextID    int64
	mutex     sync.RWMutex
}

// NewMemoryEmployeeRepository creates an empty repository holding the given seed rows.
// Seed ids are reassigned in order.
func NewMemoryEmployeeRepository(seed ...*employee.Employee) employee.EmployeeRepository {
	repo := &memoryEmployeeRepository{
		employees: make(map[int64]*employee.Employee),
	}

	for _, e := range seed {
		_ = repo.Create(context.Background(), e)
	}
	return repo
}

func (r *memoryEmployeeRepository) Create(_ context.Context, e *employee.Employee) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.emailTaken(e.Email, 0) {
		return ErrDuplicateEmail
	}

	r.nextID++
	e.ID = r.nextID
	stored := *e
	r.employees[e.ID] = &stored
	return nil
}

func (r *memoryEmployeeRepository) GetByID(_ context.Context, id int64) (*employee.Employee, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	stored, exists := r.employees[id]
	if !exists {
		return nil, nil
	}

	e := *stored
	return &e, nil
}

func (r *memoryEmployeeRepository) Update(_ context.Context, e *employee.Employee) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.employees[e.ID]; !exists {
		return nil
	}

	if r.emailTaken(e.Email, e.ID) {
		return ErrDuplicateEmail
	}

	stored := *e
	r.employees[e.ID] = &stored
	return nil
}

func (r *memoryEmployeeRepository) Delete(_ context.Context, id int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.employees, id)
	return nil
}

func (r *memoryEmployeeRepository) FindAll(_ context.Context, spec employee.Specification, order employee.Sort) ([]*employee.Employee, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	employees := make([]*employee.Employee, 0, len(r.employees))
	for _, stored := range r.employees {
		if spec != nil && !spec.IsSatisfiedBy(stored) {
			continue
		}
		e := *stored
		employees = append(employees, &e)
	}

	order = order.OrDefault()
	sort.Slice(employees, func(i, j int) bool {
		return order.Less(employees[i], employees[j])
	})

	return employees, nil
}

func (r *memoryEmployeeRepository) FindPage(ctx context.Context, page employee.PageRequest) ([]*employee.Employee, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}

	all, err := r.FindAll(ctx, nil, employee.SortByID)
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(all))
	start := page.Offset()
	if start >= len(all) {
		return []*employee.Employee{}, total, nil
	}

	end := len(all)
	if page.Size < end-start {
		end = start + page.Size
	}

	return all[start:end], total, nil
}

// emailTaken must be called with the lock held
func (r *memoryEmployeeRepository) emailTaken(email string, exceptID int64) bool {
	for id, existing := range r.employees {
		if id != exceptID && existing.Email == email {
			return true
		}
	}
	return false
}
