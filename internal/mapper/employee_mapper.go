// Package mapper converts between the persisted employee entity and its wire form.
package mapper

import "employee-records/internal/domain/employee"

// ToEmployeeDto maps an entity to its DTO
func ToEmployeeDto(e *employee.Employee) *employee.EmployeeDto {
	return &employee.EmployeeDto{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
	}
}

// ToEmployee maps a DTO to an entity. The id is copied as-is; callers
// creating a new row must clear it.
func ToEmployee(dto *employee.EmployeeDto) *employee.Employee {
	return &employee.Employee{
		ID:        dto.ID,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
	}
}

// ToEmployeeDtos maps a list of entities, never returning nil
func ToEmployeeDtos(employees []*employee.Employee) []employee.EmployeeDto {
	dtos := make([]employee.EmployeeDto, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, *ToEmployeeDto(e))
	}
	return dtos
}
