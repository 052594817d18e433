package consultation

import "context"

// Repository is the persistence contract for consultations.
type Repository interface {
	ListConsultations(ctx context.Context, f Filter, limit, offset int) ([]*Consultation, int, error)
	GetConsultation(ctx context.Context, id int64) (*Consultation, error)
	CreateConsultation(ctx context.Context, c *Consultation) error
	UpdateConsultation(ctx context.Context, c *Consultation) error
	DeleteConsultation(ctx context.Context, id int64) error
}
