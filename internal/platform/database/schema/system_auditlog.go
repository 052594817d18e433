package schema

// SystemAuditLogTable represents the 'system.auditlog' table
type SystemAuditLogTable struct {
	Table      string
	ID         string
	AccountID  string
	Action     string
	Resource   string
	ResourceID string
	Details    string
	OccurredAt string
}

// SystemAuditLog is the schema definition for system.auditlog
var SystemAuditLog = SystemAuditLogTable{
	Table:      "system.auditlog",
	ID:         "id",
	AccountID:  "accountid",
	Action:     "action",
	Resource:   "resource",
	ResourceID: "resourceid",
	Details:    "details",
	OccurredAt: "occurredat",
}

func (t SystemAuditLogTable) Columns() []string {
	return []string{t.ID, t.AccountID, t.Action, t.Resource, t.ResourceID, t.Details, t.OccurredAt}
}
