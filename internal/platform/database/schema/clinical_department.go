package schema

// ClinicalDepartmentTable represents the 'clinical.department' table
type ClinicalDepartmentTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// ClinicalDepartment is the schema definition for clinical.department
var ClinicalDepartment = ClinicalDepartmentTable{
	Table:       "clinical.department",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t ClinicalDepartmentTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt}
}
