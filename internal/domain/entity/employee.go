package entity

import "time"

// Estados válidos de Employee.
const (
	EmployeeActive   = "ACTIVE"
	EmployeeInactive = "INACTIVE"
)

// Employee empleado que procesa movimientos de stock.
type Employee struct {
	ID           string
	EmployeeCode string
	FirstName    string
	LastName     string
	Status       string
	CreatedAt    time.Time
}

// FullName nombre y apellido.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
