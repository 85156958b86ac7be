package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/dinkhousedev/dink-house-scheduler/internal/domain/court"
)

type courtRepoMock struct {
	mock.Mock
}

func (m *courtRepoMock) List(ctx context.Context) ([]court.Court, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]court.Court), args.Error(1)
}

func (m *courtRepoMock) GetByID(ctx context.Context, id string) (court.Court, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(court.Court), args.Bool(1), args.Error(2)
}

func TestCourtService_List_Success(t *testing.T) {
	t.Parallel()

	repo := new(courtRepoMock)
	service := NewCourtService(repo)

	expected := []court.Court{
		{ID: "court-1", Number: 1, Environment: court.EnvironmentIndoor, Status: court.StatusAvailable},
		{ID: "court-6", Number: 6, Environment: court.EnvironmentOutdoor, Status: court.StatusAvailable},
	}
	repo.
		On("List", mock.Anything).
		Return(expected, nil).
		Once()

	got, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("list courts: %v", err)
	}
	if len(got) != len(expected) {
		t.Fatalf("unexpected court count: got=%d want=%d", len(got), len(expected))
	}
	if got[0].ID != expected[0].ID {
		t.Fatalf("unexpected court id: got=%s want=%s", got[0].ID, expected[0].ID)
	}
	repo.AssertExpectations(t)
}

func TestCourtService_List_RegistryOutage(t *testing.T) {
	t.Parallel()

	repo := new(courtRepoMock)
	service := NewCourtService(repo)

	repo.
		On("List", mock.Anything).
		Return(nil, errors.New("connection refused")).
		Once()

	_, err := service.List(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	repo.AssertExpectations(t)
}

func TestCourtService_Get_NotFound(t *testing.T) {
	t.Parallel()

	repo := new(courtRepoMock)
	service := NewCourtService(repo)

	repo.
		On("GetByID", mock.Anything, "court-99").
		Return(court.Court{}, false, nil).
		Once()

	_, err := service.Get(context.Background(), "court-99")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	repo.AssertExpectations(t)
}
