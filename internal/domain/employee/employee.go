package employee

// Column names of the employees table.
const (
	ColumnID        = "id"
	ColumnFirstName = "first_name"
	ColumnLastName  = "last_name"
	ColumnEmail     = "email_id"
)

// Employee is the persisted record of the employees table
type Employee struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string `gorm:"column:first_name;size:255"`
	LastName  string `gorm:"column:last_name;size:255"`
	Email     string `gorm:"column:email_id;size:255;not null;uniqueIndex"`
}

// TableName pins the table name used by gorm
func (Employee) TableName() string {
	return "employees"
}

// EmployeeDto is the wire representation of an employee.
// ID is assigned by the store and ignored on create and update requests.
type EmployeeDto struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName" validate:"max=255"`
	LastName  string `json:"lastName" validate:"max=255"`
	Email     string `json:"email" validate:"required,max=255"`
}
