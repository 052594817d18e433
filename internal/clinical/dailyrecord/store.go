package dailyrecord

import "context"

// Repository is the persistence contract for daily records.
type Repository interface {
	ListDailyRecords(ctx context.Context, f Filter, limit, offset int) ([]*DailyRecord, int, error)
	GetDailyRecord(ctx context.Context, id int64) (*DailyRecord, error)
	CreateDailyRecord(ctx context.Context, record *DailyRecord) error
	UpdateDailyRecord(ctx context.Context, record *DailyRecord) error
	DeleteDailyRecord(ctx context.Context, id int64) error
}
