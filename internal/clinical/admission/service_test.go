package admission

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hgs/siags/internal/platform/apperr"
)

type fakeRepository struct {
	admissions map[int64]*Admission
	nextID     int64
}

func newFakeRepository(admissions ...*Admission) *fakeRepository {
	repo := &fakeRepository{admissions: map[int64]*Admission{}, nextID: 1}
	for _, a := range admissions {
		repo.admissions[a.ID] = a
		if a.ID >= repo.nextID {
			repo.nextID = a.ID + 1
		}
	}
	return repo
}

func (repo *fakeRepository) ListAdmissions(ctx context.Context, f Filter, limit, offset int) ([]*Admission, int, error) {
	return nil, 0, nil
}

func (repo *fakeRepository) GetAdmission(ctx context.Context, id int64) (*Admission, error) {
	if a, ok := repo.admissions[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, apperr.NotFound("Admission")
}

func (repo *fakeRepository) CreateAdmission(ctx context.Context, a *Admission) error {
	a.ID = repo.nextID
	repo.nextID++
	repo.admissions[a.ID] = a
	return nil
}

func (repo *fakeRepository) UpdateAdmission(ctx context.Context, a *Admission) error {
	if _, ok := repo.admissions[a.ID]; !ok {
		return apperr.NotFound("Admission")
	}
	repo.admissions[a.ID] = a
	return nil
}

func (repo *fakeRepository) DeleteAdmission(ctx context.Context, id int64) error {
	if _, ok := repo.admissions[id]; !ok {
		return apperr.NotFound("Admission")
	}
	delete(repo.admissions, id)
	return nil
}

type nopAuditor struct{}

func (nopAuditor) Record(ctx context.Context, actorID int64, action, resource string, resourceID int64, details string) {
}

func newTestService(repo *fakeRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, nopAuditor{}, logger)
}

func TestCreateAdmission_DefaultsStatusAndPersonnel(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	a := &Admission{PatientID: 7, ReasonForAdmission: "Chest pain"}
	err := service.CreateAdmission(context.Background(), 42, a)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, a.Status)
	assert.Equal(t, int64(42), a.PersonnelID)
	assert.False(t, a.AdmissionDate.IsZero())
}

func TestCreateAdmission_RequiresPatientAndReason(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.CreateAdmission(context.Background(), 42, &Admission{})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestDischarge_ClosesActiveAdmission(t *testing.T) {
	repo := newFakeRepository(&Admission{
		ID:                 1,
		PatientID:          7,
		ReasonForAdmission: "Chest pain",
		Status:             StatusActive,
	})
	service := newTestService(repo)

	discharged, err := service.Discharge(context.Background(), 42, 1, "Recovered, follow-up in two weeks")
	require.NoError(t, err)

	assert.Equal(t, StatusDischarged, discharged.Status)
	assert.Equal(t, "Recovered, follow-up in two weeks", discharged.DischargeSummary)
	require.NotNil(t, discharged.DischargeDate)

	stored, err := repo.GetAdmission(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusDischarged, stored.Status)
}

func TestDischarge_RejectsNonActiveAdmission(t *testing.T) {
	for _, status := range []string{StatusDischarged, StatusTransferred, StatusCancelled} {
		t.Run(status, func(t *testing.T) {
			repo := newFakeRepository(&Admission{ID: 1, PatientID: 7, Status: status})
			service := newTestService(repo)

			_, err := service.Discharge(context.Background(), 42, 1, "Summary")
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 409, appError.HTTPStatus)
		})
	}
}

func TestDischarge_RequiresSummary(t *testing.T) {
	repo := newFakeRepository(&Admission{ID: 1, PatientID: 7, Status: StatusActive})
	service := newTestService(repo)

	_, err := service.Discharge(context.Background(), 42, 1, "")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	// A failed discharge leaves the admission untouched.
	stored, err := repo.GetAdmission(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, stored.Status)
}

func TestUpdateAdmission_PreservesPatientAndPersonnel(t *testing.T) {
	repo := newFakeRepository(&Admission{
		ID:                 1,
		PatientID:          7,
		PersonnelID:        42,
		ReasonForAdmission: "Chest pain",
		Status:             StatusActive,
	})
	service := newTestService(repo)

	input := &Admission{
		PatientID:          999,
		PersonnelID:        999,
		ReasonForAdmission: "Chest pain, observation",
		Status:             StatusTransferred,
	}
	err := service.UpdateAdmission(context.Background(), 42, 1, input)
	require.NoError(t, err)

	assert.Equal(t, int64(7), input.PatientID)
	assert.Equal(t, int64(42), input.PersonnelID)
	assert.Equal(t, StatusTransferred, input.Status)
}

func TestUpdateAdmission_RejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepository(&Admission{ID: 1, PatientID: 7, Status: StatusActive, ReasonForAdmission: "x"})
	service := newTestService(repo)

	err := service.UpdateAdmission(context.Background(), 42, 1, &Admission{
		ReasonForAdmission: "Chest pain",
		Status:             "VANISHED",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}
