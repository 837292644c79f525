package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	configRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
	"github.com/dkmsk/DCS-SchedulingService/pkg/ptr"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	stored := *appt
	stored.ID = f.nextID
	f.created = &stored
	f.appointments = append(f.appointments, &stored)
	return &stored, nil
}

func (f *fakeAppointmentRepo) GetByCompanyWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
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
	service *companyservice.Service
	posts   []companyservice.Resource
	masters []companyservice.Resource
}

func (f *fakeCompanyClient) GetCompany(_ context.Context, _ int64) (*companyservice.Company, error) {
	if f.company == nil {
		return nil, companyservice.ErrCompanyNotFound
	}
	return f.company, nil
}

func (f *fakeCompanyClient) GetService(_ context.Context, _, _ int64) (*companyservice.Service, error) {
	if f.service == nil {
		return nil, companyservice.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeCompanyClient) ListActiveResources(_ context.Context, _ int64, kind string) ([]companyservice.Resource, error) {
	if kind == string(domain.ResourceMaster) {
		return f.masters, nil
	}
	return f.posts, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
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

func twoPosts() []companyservice.Resource {
	return []companyservice.Resource{
		{ID: 1, Name: "Post 1", Kind: "post", Active: true},
		{ID: 2, Name: "Post 2", Kind: "post", Active: true},
	}
}

func activeAppointment(id int64, start types.TimeString, duration int, masterID, postID *int64) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		CompanyID:       1,
		ClientID:        100,
		StartTime:       start,
		DurationMinutes: duration,
		MasterID:        masterID,
		PostID:          postID,
		Status:          domain.StatusConfirmed,
	}
}

var (
	testNow  = time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase(repo *fakeAppointmentRepo, cfg *fakeConfigRepo, client *fakeCompanyClient) *UseCase {
	uc := NewUseCase(repo, cfg, client, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		CompanyID:       1,
		ClientID:        100,
		Date:            tomorrow,
		StartTime:       "10:00",
		DurationMinutes: 30,
		PostID:          ptr.Ptr(int64(1)),
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, client)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Appointment)

	assert.Equal(t, domain.StatusNew, resp.Appointment.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.Appointment.StartTime)
	assert.Equal(t, 30, resp.Appointment.DurationMinutes)
	assert.NotZero(t, resp.Appointment.ID)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(100), repo.created.ClientID)
}

func TestExecute_ConflictOnPostAxis(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		activeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1))),
	}}
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, client)

	req := validRequest()
	req.StartTime = "10:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceConflict)

	// Другой пост в то же время свободен
	req.PostID = ptr.Ptr(int64(2))
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ConflictOnMasterAxis(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		activeAppointment(1, "10:00", 60, ptr.Ptr(int64(7)), ptr.Ptr(int64(2))),
	}}
	client := &fakeCompanyClient{
		company: openCompany("09:00", "18:00"),
		posts:   twoPosts(),
		masters: []companyservice.Resource{{ID: 7, Name: "Master 7", Kind: "master", Active: true}},
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, client)

	// Пост свободен, но мастер занят на другом посту
	req := validRequest()
	req.MasterID = ptr.Ptr(int64(7))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceConflict)
}

func TestExecute_TouchingBoundsDoNotConflict(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		activeAppointment(1, "09:00", 60, nil, ptr.Ptr(int64(1))), // [09:00, 10:00)
	}}
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, client)

	_, err := uc.Execute(context.Background(), validRequest()) // начало 10:00
	assert.NoError(t, err)
}

func TestExecute_CancelledAppointmentFreesResource(t *testing.T) {
	cancelled := activeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1)))
	cancelled.Status = domain.StatusCancelled

	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{cancelled}}
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, client)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_UnassignedPostCapacityExhausted(t *testing.T) {
	// Оба поста заняты: запись без поста не помещается в общую ёмкость
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		activeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1))),
		activeAppointment(2, "10:00", 60, nil, ptr.Ptr(int64(2))),
	}}
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, client)

	req := validRequest()
	req.PostID = nil

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceConflict)
}

func TestExecute_UnassignedAppointmentsCountTowardCapacity(t *testing.T) {
	// Одна запись на посту и одна без поста - ёмкость 2 исчерпана
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		activeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1))),
		activeAppointment(2, "10:00", 60, nil, nil),
	}}
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, client)

	req := validRequest()
	req.PostID = nil

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceConflict)
}

func TestExecute_CapacityAccountingDisabledSkipsCapacityCheck(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		activeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(1))),
		activeAppointment(2, "10:00", 60, nil, ptr.Ptr(int64(2))),
	}}
	cfg := &fakeConfigRepo{config: &domain.ScheduleConfig{
		CompanyID:              1,
		SlotGranularityMinutes: 30,
		CapacityAccounting:     false,
	}}
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(repo, cfg, client)

	req := validRequest()
	req.PostID = nil

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_UnknownResourceRejected(t *testing.T) {
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeConfigRepo{}, client)

	req := validRequest()
	req.PostID = ptr.Ptr(int64(99))
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownResource)

	req = validRequest()
	req.MasterID = ptr.Ptr(int64(99))
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestExecute_InactiveResourceRejected(t *testing.T) {
	client := &fakeCompanyClient{
		company: openCompany("09:00", "18:00"),
		posts: []companyservice.Resource{
			{ID: 1, Name: "Post 1", Kind: "post", Active: false},
		},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeConfigRepo{}, client)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeConfigRepo{}, client)

	// Запись заканчивается после закрытия
	req := validRequest()
	req.StartTime = "17:45"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Начало до открытия
	req = validRequest()
	req.StartTime = "08:30"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Окончание ровно в закрытие допустимо
	req = validRequest()
	req.StartTime = "17:30"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CompanyClosed(t *testing.T) {
	company := openCompany("09:00", "18:00")
	company.WorkingHours.Tuesday = companyservice.DaySchedule{IsOpen: false}

	client := &fakeCompanyClient{company: company, posts: twoPosts()}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeConfigRepo{}, client)

	_, err := uc.Execute(context.Background(), validRequest()) // вторник
	assert.ErrorIs(t, err, ErrCompanyClosed)
}

func TestExecute_BookingNotice(t *testing.T) {
	cfg := &fakeConfigRepo{config: &domain.ScheduleConfig{
		CompanyID:               1,
		SlotGranularityMinutes:  30,
		CapacityAccounting:      true,
		MinBookingNoticeMinutes: 60,
	}}
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(&fakeAppointmentRepo{}, cfg, client)

	// Сейчас 12:00, порог 60 минут: запись на 12:30 сегодня отклоняется
	req := validRequest()
	req.Date = testNow
	req.StartTime = "12:30"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// Ровно на границе порога - принимается (сравнение строгое)
	req.StartTime = "13:00"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)

	// Порог не действует на завтрашние даты
	req = validRequest()
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_PastDateRejected(t *testing.T) {
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeConfigRepo{}, client)

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_AdvanceBookingLimit(t *testing.T) {
	cfg := &fakeConfigRepo{config: &domain.ScheduleConfig{
		CompanyID:              1,
		SlotGranularityMinutes: 30,
		CapacityAccounting:     true,
		AdvanceBookingDays:     7,
	}}
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(&fakeAppointmentRepo{}, cfg, client)

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, 8)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_DurationAndNameFromService(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	client := &fakeCompanyClient{
		company: openCompany("09:00", "18:00"),
		posts:   twoPosts(),
		service: &companyservice.Service{ID: 3, Name: "Diagnostics", DurationMinutes: 60},
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, client)

	req := validRequest()
	req.DurationMinutes = 0
	req.ServiceID = ptr.Ptr(int64(3))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 60, resp.Appointment.DurationMinutes)
	require.NotNil(t, resp.Appointment.ServiceName)
	assert.Equal(t, "Diagnostics", *resp.Appointment.ServiceName)
}

func TestExecute_ExplicitDurationOverridesService(t *testing.T) {
	client := &fakeCompanyClient{
		company: openCompany("09:00", "18:00"),
		posts:   twoPosts(),
		service: &companyservice.Service{ID: 3, Name: "Diagnostics", DurationMinutes: 60},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeConfigRepo{}, client)

	req := validRequest()
	req.DurationMinutes = 45
	req.ServiceID = ptr.Ptr(int64(3))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 45, resp.Appointment.DurationMinutes)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeConfigRepo{}, client)

	req := validRequest()
	req.ServiceID = ptr.Ptr(int64(3))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_CompanyNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeConfigRepo{}, &fakeCompanyClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeConfigRepo{}, &fakeCompanyClient{})

	req := validRequest()
	req.CompanyID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.ClientID = -1
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.StartTime = "25:00"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.DurationMinutes = 0
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_ConflictCheckRunsInsideTransaction(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	client := &fakeCompanyClient{company: openCompany("09:00", "18:00"), posts: twoPosts()}
	txManager := &fakeTxManager{}
	uc := NewUseCase(repo, &fakeConfigRepo{}, client, txManager, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: testNow}

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, txManager.calls)
}
