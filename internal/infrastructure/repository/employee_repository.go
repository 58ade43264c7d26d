package repository

import (
	"context"
	"errors"

	"employee-records/internal/domain/employee"
	"employee-records/internal/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRepository struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

func NewEmployeeRepository(db *gorm.DB, m *metrics.Metrics) employee.EmployeeRepository {
	return &EmployeeRepository{
		db:      db,
		metrics: m,
	}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	defer r.metrics.ObserveQuery("create")()

	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employee.Employee, error) {
	defer r.metrics.ObserveQuery("get_by_id")()

	var e employee.Employee
	err := r.db.WithContext(ctx).First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	defer r.metrics.ObserveQuery("update")()

	return r.db.WithContext(ctx).
		Model(e).
		Select(employee.ColumnFirstName, employee.ColumnLastName, employee.ColumnEmail).
		Updates(e).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	defer r.metrics.ObserveQuery("delete")()

	return r.db.WithContext(ctx).Delete(&employee.Employee{}, id).Error
}

// FindAll returns every employee matching spec, or all of them when spec is nil
func (r *EmployeeRepository) FindAll(ctx context.Context, spec employee.Specification, sort employee.Sort) ([]*employee.Employee, error) {
	defer r.metrics.ObserveQuery("find_all")()

	query := r.db.WithContext(ctx).Model(&employee.Employee{})
	if spec != nil {
		where, args := spec.Clause()
		query = query.Where(where, args...)
	}

	var employees []*employee.Employee
	if err := query.Order(orderBy(sort)).Find(&employees).Error; err != nil {
		return nil, err
	}

	return employees, nil
}

// FindPage returns one page ordered by id together with the total row count
func (r *EmployeeRepository) FindPage(ctx context.Context, page employee.PageRequest) ([]*employee.Employee, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}

	defer r.metrics.ObserveQuery("find_page")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&employee.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*employee.Employee
	err := r.db.WithContext(ctx).
		Order(orderBy(employee.SortByID)).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// orderBy quotes the column so a Sort can never inject SQL
func orderBy(sort employee.Sort) clause.OrderByColumn {
	sort = sort.OrDefault()
	return clause.OrderByColumn{
		Column: clause.Column{Name: sort.Column},
		Desc:   sort.Descending,
	}
}
