// Package department manages the hospital's service catalog (cardiology,
// pediatrics, ...). Admissions reference departments by ID.
package department

import "time"

// Department is a hospital service unit.
type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	FieldName        = "name"
	FieldDescription = "description"
)
