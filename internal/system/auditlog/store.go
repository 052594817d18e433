package auditlog

import "context"

type Repository interface {
	Append(context context.Context, entry *Entry) error
	List(context context.Context, f Filter, limit, offset int) ([]*Entry, int, error)
	PurgeBefore(context context.Context, cutoffDays int) (int64, error)
}
