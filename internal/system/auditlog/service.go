package auditlog

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record appends an audit entry. Failures are logged and swallowed so the
// triggering operation never fails on audit trouble.
func (service *Service) Record(context context.Context, actorID int64, action, resource string, resourceID int64, details string) {
	entry := &Entry{
		AccountID:  actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
	}

	if err := service.repo.Append(context, entry); err != nil {
		service.logger.Error("audit_append_failed",
			slog.String("action", action),
			slog.String("resource", resource),
			slog.Any("error", err),
		)
	}
}

func (service *Service) ListEntries(context context.Context, f Filter, limit, offset int) ([]*Entry, int, error) {
	return service.repo.List(context, f, limit, offset)
}

// Purge removes entries older than the given number of days.
func (service *Service) Purge(context context.Context, olderThanDays int) (int64, error) {
	removed, err := service.repo.PurgeBefore(context, olderThanDays)
	if err != nil {
		return 0, err
	}

	service.logger.Info("audit_purged", slog.Int64("removed", removed), slog.Int("older_than_days", olderThanDays))
	return removed, nil
}
