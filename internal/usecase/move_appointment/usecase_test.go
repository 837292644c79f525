package move_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	appointmentRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/appointment"
	configRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
	"github.com/dkmsk/DCS-SchedulingService/pkg/ptr"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func newFakeAppointmentRepo(appointments ...*domain.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, appt := range appointments {
		repo.appointments[appt.ID] = appt
	}
	return repo
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByCompanyWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0, len(f.appointments))
	for _, appt := range f.appointments {
		result = append(result, appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) Move(_ context.Context, id int64, date time.Time, startTime types.TimeString, masterID, postID *int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	moved := *appt
	moved.Date = date
	moved.StartTime = startTime
	moved.MasterID = masterID
	moved.PostID = postID
	f.appointments[id] = &moved
	return &moved, nil
}

type fakeConfigRepo struct {
	config *domain.ScheduleConfig
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeCompanyClient struct {
	company *companyservice.Company
	posts   []companyservice.Resource
	masters []companyservice.Resource
}

func (f *fakeCompanyClient) GetCompany(_ context.Context, _ int64) (*companyservice.Company, error) {
	if f.company == nil {
		return nil, companyservice.ErrCompanyNotFound
	}
	return f.company, nil
}

func (f *fakeCompanyClient) ListActiveResources(_ context.Context, _ int64, kind string) ([]companyservice.Resource, error) {
	if kind == string(domain.ResourceMaster) {
		return f.masters, nil
	}
	return f.posts, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubTimeProvider struct {
	now time.Time
}

func (p *stubTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

func openCompany(open, close string) *companyservice.Company {
	day := companyservice.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &close}
	return &companyservice.Company{
		ID:   1,
		Name: "Test Company",
		WorkingHours: companyservice.WeekSchedule{
			Monday:    day,
			Tuesday:   day,
			Wednesday: day,
			Thursday:  day,
			Friday:    day,
			Saturday:  day,
			Sunday:    day,
		},
	}
}

func makeAppointment(id int64, start types.TimeString, duration int, masterID, postID *int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		CompanyID:       1,
		ClientID:        100,
		Date:            tomorrow,
		StartTime:       start,
		DurationMinutes: duration,
		MasterID:        masterID,
		PostID:          postID,
		Status:          status,
	}
}

var (
	testNow  = time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase(repo *fakeAppointmentRepo, cfg *fakeConfigRepo, client *fakeCompanyClient) *UseCase {
	uc := NewUseCase(repo, cfg, client, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: testNow}
	return uc
}

func defaultClient() *fakeCompanyClient {
	return &fakeCompanyClient{
		company: openCompany("09:00", "18:00"),
		posts: []companyservice.Resource{
			{ID: 1, Name: "Post 1", Kind: "post", Active: true},
			{ID: 2, Name: "Post 2", Kind: "post", Active: true},
		},
		masters: []companyservice.Resource{
			{ID: 7, Name: "Master 7", Kind: "master", Active: true},
			{ID: 8, Name: "Master 8", Kind: "master", Active: true},
		},
	}
}

// Тесты

func TestExecute_MoveToFreeSlot(t *testing.T) {
	repo := newFakeAppointmentRepo(
		makeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1)), domain.StatusConfirmed),
	)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, defaultClient())

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow,
		NewStartTime:  "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("14:00"), resp.Appointment.StartTime)
	// Длительность и назначения не меняются
	assert.Equal(t, 60, resp.Appointment.DurationMinutes)
	require.NotNil(t, resp.Appointment.PostID)
	assert.Equal(t, int64(1), *resp.Appointment.PostID)
}

func TestExecute_MoveWithinOwnWindow(t *testing.T) {
	// Перенос на полчаса вперёд пересекается со старым интервалом самой записи,
	// но запись не конфликтует сама с собой
	repo := newFakeAppointmentRepo(
		makeAppointment(1, "10:00", 60, ptr.Ptr(int64(7)), ptr.Ptr(int64(1)), domain.StatusConfirmed),
	)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, defaultClient())

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow,
		NewStartTime:  "10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.Appointment.StartTime)
}

func TestExecute_ConflictWithOtherAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo(
		makeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1)), domain.StatusConfirmed),
		makeAppointment(2, "14:00", 60, nil, ptr.Ptr(int64(1)), domain.StatusConfirmed),
	)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, defaultClient())

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow,
		NewStartTime:  "14:30",
	})
	assert.ErrorIs(t, err, ErrResourceConflict)
}

func TestExecute_ConflictOnMasterAxisAfterReassign(t *testing.T) {
	// Переносимая запись: мастер 7, пост 1; мастер 8 занят в целевом окне
	repo := newFakeAppointmentRepo(
		makeAppointment(1, "10:00", 60, ptr.Ptr(int64(7)), ptr.Ptr(int64(1)), domain.StatusConfirmed),
		makeAppointment(2, "14:00", 60, ptr.Ptr(int64(8)), nil, domain.StatusConfirmed),
	)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, defaultClient())

	// Смена мастера на занятого в целевом окне
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow,
		NewStartTime:  "14:00",
		NewMasterID:   ptr.Ptr(int64(8)),
	})
	assert.ErrorIs(t, err, ErrResourceConflict)

	// Со своим прежним мастером то же окно свободно
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow,
		NewStartTime:  "14:00",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Appointment.MasterID)
	assert.Equal(t, int64(7), *resp.Appointment.MasterID)
}

func TestExecute_ClearPostUnassigns(t *testing.T) {
	repo := newFakeAppointmentRepo(
		makeAppointment(1, "10:00", 60, ptr.Ptr(int64(7)), ptr.Ptr(int64(1)), domain.StatusConfirmed),
	)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, defaultClient())

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow,
		NewStartTime:  "10:00",
		ClearPost:     true,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Appointment.PostID)
	// Мастер остаётся
	require.NotNil(t, resp.Appointment.MasterID)
	assert.Equal(t, int64(7), *resp.Appointment.MasterID)
}

func TestExecute_TerminalStatusCannotBeMoved(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled} {
		repo := newFakeAppointmentRepo(
			makeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1)), status),
		)
		uc := newTestUseCase(repo, &fakeConfigRepo{}, defaultClient())

		_, err := uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			NewDate:       tomorrow,
			NewStartTime:  "14:00",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeConfigRepo{}, defaultClient())

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 99,
		NewDate:       tomorrow,
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_UnknownTargetResource(t *testing.T) {
	repo := newFakeAppointmentRepo(
		makeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1)), domain.StatusConfirmed),
	)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, defaultClient())

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow,
		NewStartTime:  "14:00",
		NewPostID:     ptr.Ptr(int64(99)),
	})
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestExecute_TargetOutsideWorkingHours(t *testing.T) {
	repo := newFakeAppointmentRepo(
		makeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1)), domain.StatusConfirmed),
	)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, defaultClient())

	// Часовая запись на 17:30 не помещается до закрытия в 18:00
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow,
		NewStartTime:  "17:30",
	})
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_TargetDayClosed(t *testing.T) {
	repo := newFakeAppointmentRepo(
		makeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1)), domain.StatusConfirmed),
	)
	client := defaultClient()
	client.company.WorkingHours.Tuesday = companyservice.DaySchedule{IsOpen: false}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, client)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow, // вторник
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrCompanyClosed)
}

func TestExecute_TargetDateInPast(t *testing.T) {
	repo := newFakeAppointmentRepo(
		makeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1)), domain.StatusConfirmed),
	)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, defaultClient())

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       testNow.AddDate(0, 0, -1),
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeConfigRepo{}, defaultClient())

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 0,
		NewDate:       tomorrow,
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow,
		NewStartTime:  "bad",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Нельзя одновременно назначить и снять пост
	_, err = uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		NewDate:       tomorrow,
		NewStartTime:  "14:00",
		NewPostID:     ptr.Ptr(int64(2)),
		ClearPost:     true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
