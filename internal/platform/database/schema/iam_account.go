package schema

// IamAccountTable represents the 'iam.account' table
type IamAccountTable struct {
	Table            string
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	AccountNonLocked string
	LockTime         string
	FailedAttempts   string
	CreatedAt        string
	UpdatedAt        string
}

// IamAccount is the schema definition for iam.account
var IamAccount = IamAccountTable{
	Table:            "iam.account",
	ID:               "id",
	Username:         "username",
	Email:            "email",
	PasswordHash:     "passwordhash",
	AccountNonLocked: "accountnonlocked",
	LockTime:         "locktime",
	FailedAttempts:   "failedattempts",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

func (t IamAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.PasswordHash, t.AccountNonLocked,
		t.LockTime, t.FailedAttempts, t.CreatedAt, t.UpdatedAt,
	}
}
