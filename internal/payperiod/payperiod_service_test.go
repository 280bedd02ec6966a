package payperiod_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"poolops/internal/employee"
	"poolops/internal/messaging/kafka"
	"poolops/internal/payout"
	"poolops/internal/payperiod"
	payperioderrors "poolops/internal/payperiod/errors"
	"poolops/internal/timeentry"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePeriodRepository struct {
	withTxFn              func(tx *sql.Tx) payperiod.Repository
	createFn              func(ctx context.Context, p *payperiod.PayPeriod) error
	findAllFn             func(ctx context.Context, filter payperiod.ListPayPeriodsFilter) ([]payperiod.PayPeriod, error)
	findByIDFn            func(ctx context.Context, id string) (*payperiod.PayPeriod, error)
	updateFn              func(ctx context.Context, p *payperiod.PayPeriod) error
	statusesFn            func(ctx context.Context, dateKey string) ([]string, error)
	upsertRecordFn        func(ctx context.Context, r *payperiod.PayrollRecord) error
	findRecordsByPeriodFn func(ctx context.Context, periodID string) ([]payperiod.PayrollRecord, error)
	findRecordByIDFn      func(ctx context.Context, id string) (*payperiod.PayrollRecord, error)
	updateRecordFn        func(ctx context.Context, r *payperiod.PayrollRecord) error
}

func (f *fakePeriodRepository) WithTx(tx *sql.Tx) payperiod.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePeriodRepository) Create(ctx context.Context, p *payperiod.PayPeriod) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePeriodRepository) FindAll(ctx context.Context, filter payperiod.ListPayPeriodsFilter) ([]payperiod.PayPeriod, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakePeriodRepository) FindByID(ctx context.Context, id string) (*payperiod.PayPeriod, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakePeriodRepository) Update(ctx context.Context, p *payperiod.PayPeriod) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func (f *fakePeriodRepository) StatusesOverlappingDate(ctx context.Context, dateKey string) ([]string, error) {
	if f.statusesFn != nil {
		return f.statusesFn(ctx, dateKey)
	}
	return nil, nil
}

func (f *fakePeriodRepository) UpsertRecord(ctx context.Context, r *payperiod.PayrollRecord) error {
	if f.upsertRecordFn != nil {
		return f.upsertRecordFn(ctx, r)
	}
	return nil
}

func (f *fakePeriodRepository) FindRecordsByPeriod(ctx context.Context, periodID string) ([]payperiod.PayrollRecord, error) {
	if f.findRecordsByPeriodFn != nil {
		return f.findRecordsByPeriodFn(ctx, periodID)
	}
	return nil, nil
}

func (f *fakePeriodRepository) FindRecordByID(ctx context.Context, id string) (*payperiod.PayrollRecord, error) {
	if f.findRecordByIDFn != nil {
		return f.findRecordByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakePeriodRepository) UpdateRecord(ctx context.Context, r *payperiod.PayrollRecord) error {
	if f.updateRecordFn != nil {
		return f.updateRecordFn(ctx, r)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository            { return f }
func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepository) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByPayType(ctx context.Context, payType string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	return nil
}

type fakeTimeEntryRepository struct {
	findApprovedInRange func(ctx context.Context, fromKey, toKey string) ([]timeentry.TimeEntry, error)
}

func (f *fakeTimeEntryRepository) WithTx(tx *sql.Tx) timeentry.Repository { return f }
func (f *fakeTimeEntryRepository) Create(ctx context.Context, e *timeentry.TimeEntry) error {
	return nil
}
func (f *fakeTimeEntryRepository) FindByID(ctx context.Context, id string) (*timeentry.TimeEntry, error) {
	return nil, nil
}
func (f *fakeTimeEntryRepository) FindAll(ctx context.Context, filter timeentry.ListTimeEntriesFilter) ([]timeentry.TimeEntry, error) {
	return nil, nil
}
func (f *fakeTimeEntryRepository) FindApprovedByDate(ctx context.Context, dateKey string) ([]timeentry.TimeEntry, error) {
	return nil, nil
}
func (f *fakeTimeEntryRepository) FindApprovedByEmployeeAndDate(ctx context.Context, employeeID, dateKey string) ([]timeentry.TimeEntry, error) {
	return nil, nil
}

func (f *fakeTimeEntryRepository) FindApprovedInRange(ctx context.Context, fromKey, toKey string) ([]timeentry.TimeEntry, error) {
	if f.findApprovedInRange != nil {
		return f.findApprovedInRange(ctx, fromKey, toKey)
	}
	return nil, nil
}

func (f *fakeTimeEntryRepository) Update(ctx context.Context, e *timeentry.TimeEntry) error {
	return nil
}
func (f *fakeTimeEntryRepository) Delete(ctx context.Context, id string) error { return nil }

type fakePayoutRepository struct {
	findEmployeeInRangeFn func(ctx context.Context, fromKey, toKey string) ([]payout.EmployeePayoutWithDate, error)
}

func (f *fakePayoutRepository) WithTx(tx *sql.Tx) payout.Repository { return f }
func (f *fakePayoutRepository) Create(ctx context.Context, p *payout.PercentagePayout) error {
	return nil
}
func (f *fakePayoutRepository) FindByID(ctx context.Context, id string) (*payout.PercentagePayout, error) {
	return nil, nil
}
func (f *fakePayoutRepository) FindInRange(ctx context.Context, fromKey, toKey string) ([]payout.PercentagePayout, error) {
	return nil, nil
}

func (f *fakePayoutRepository) FindEmployeePayoutsInRange(ctx context.Context, fromKey, toKey string) ([]payout.EmployeePayoutWithDate, error) {
	if f.findEmployeeInRangeFn != nil {
		return f.findEmployeeInRangeFn(ctx, fromKey, toKey)
	}
	return nil, nil
}

func (f *fakePayoutRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type periodServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   payperiod.Service
	repo      *fakePeriodRepository
	employees *fakeEmployeeRepository
	entries   *fakeTimeEntryRepository
	payouts   *fakePayoutRepository
	outbox    *fakeOutboxRepository
}

func setupPeriodServiceTest(t *testing.T) *periodServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePeriodRepository{}
	employees := &fakeEmployeeRepository{}
	entries := &fakeTimeEntryRepository{}
	payouts := &fakePayoutRepository{}
	outbox := &fakeOutboxRepository{}
	svc := payperiod.NewService(db, repo, employees, entries, payouts, outbox)

	return &periodServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		employees: employees,
		entries:   entries,
		payouts:   payouts,
		outbox:    outbox,
	}
}

func floatPtr(v float64) *float64 { return &v }

func lockedPeriod(id uuid.UUID) *payperiod.PayPeriod {
	return &payperiod.PayPeriod{
		ID:        id,
		Name:      "June W1",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		Status:    payperiod.StatusLocked,
	}
}

func TestPayPeriodService_Process_HourlyGrossPay(t *testing.T) {
	ctx := context.Background()
	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	periodID := uuid.New()
	empID := uuid.New()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payperiod.PayPeriod, error) {
		return lockedPeriod(periodID), nil
	}
	deps.entries.findApprovedInRange = func(ctx context.Context, fromKey, toKey string) ([]timeentry.TimeEntry, error) {
		assert.Equal(t, "2024-06-01", fromKey)
		assert.Equal(t, "2024-06-07", toKey)
		return []timeentry.TimeEntry{{
			EmployeeID:    empID,
			EntryDate:     time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			HoursWorked:   10,
			OvertimeHours: 2,
			EntryType:     timeentry.TypeRegular,
			Approved:      true,
		}}, nil
	}
	deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return &employee.Employee{
			ID:                 empID,
			PayTypes:           []string{employee.PayTypeHourly},
			HourlyRate:         floatPtr(20),
			OvertimeMultiplier: 1.5,
		}, nil
	}

	var upserted *payperiod.PayrollRecord
	deps.repo.upsertRecordFn = func(ctx context.Context, r *payperiod.PayrollRecord) error {
		upserted = r
		return nil
	}

	var published *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		published = &event
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Process(ctx, periodID.String())

	assert.NoError(t, err)
	assert.Equal(t, payperiod.StatusProcessed, resp.Status)
	assert.NotNil(t, resp.ProcessedAt)

	assert.NotNil(t, upserted)
	assert.InDelta(t, 10, upserted.TotalRegularHours, 1e-9)
	assert.InDelta(t, 2, upserted.TotalOvertimeHours, 1e-9)

	// (10-2)*20 + 2*20*1.5 = 220
	assert.InDelta(t, 220, upserted.TotalGrossPay, 1e-9)
	assert.Equal(t, 1.5, upserted.OvertimeMultiplierUsed)

	assert.NotNil(t, published)
	assert.Equal(t, "payroll.period.processed.v1", published.Topic)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayPeriodService_Process_SalaryAndPayouts(t *testing.T) {
	ctx := context.Background()
	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	periodID := uuid.New()
	empID := uuid.New()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payperiod.PayPeriod, error) {
		return lockedPeriod(periodID), nil
	}
	deps.entries.findApprovedInRange = func(ctx context.Context, fromKey, toKey string) ([]timeentry.TimeEntry, error) {
		return []timeentry.TimeEntry{{
			EmployeeID:  empID,
			EntryDate:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
			HoursWorked: 8,
			EntryType:   timeentry.TypeRegular,
			Approved:    true,
		}}, nil
	}
	deps.payouts.findEmployeeInRangeFn = func(ctx context.Context, fromKey, toKey string) ([]payout.EmployeePayoutWithDate, error) {
		return []payout.EmployeePayoutWithDate{
			{EmployeePayout: payout.EmployeePayout{EmployeeID: empID, PayType: payout.PayTypePercentage, PayoutAmount: 50}},
			// Hourly payout rows never roll into gross pay.
			{EmployeePayout: payout.EmployeePayout{EmployeeID: empID, PayType: payout.PayTypeHourly, PayoutAmount: 999}},
		}, nil
	}
	deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return &employee.Employee{
			ID:                 empID,
			PayTypes:           []string{employee.PayTypeSalary},
			AnnualSalary:       floatPtr(36500),
			OvertimeMultiplier: 1.5,
		}, nil
	}

	var upserted *payperiod.PayrollRecord
	deps.repo.upsertRecordFn = func(ctx context.Context, r *payperiod.PayrollRecord) error {
		upserted = r
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	_, err := deps.service.Process(ctx, periodID.String())

	assert.NoError(t, err)
	assert.NotNil(t, upserted)

	// 36500/365 * 7 days = 700, plus the 50 percentage payout.
	assert.InDelta(t, 750, upserted.TotalGrossPay, 1e-9)
	assert.InDelta(t, 50, upserted.TotalDailyPayouts, 1e-9)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayPeriodService_Process_RequiresLocked(t *testing.T) {
	ctx := context.Background()
	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	periodID := uuid.New()

	for _, status := range []string{payperiod.StatusOpen, payperiod.StatusProcessed} {
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payperiod.PayPeriod, error) {
			p := lockedPeriod(periodID)
			p.Status = status
			return p, nil
		}

		_, err := deps.service.Process(ctx, periodID.String())
		assert.ErrorIs(t, err, payperioderrors.ErrNotLocked)
	}
}

func TestPayPeriodService_Process_Idempotent(t *testing.T) {
	ctx := context.Background()
	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	periodID := uuid.New()
	empID := uuid.New()

	deps.entries.findApprovedInRange = func(ctx context.Context, fromKey, toKey string) ([]timeentry.TimeEntry, error) {
		return []timeentry.TimeEntry{{
			EmployeeID:    empID,
			EntryDate:     time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			HoursWorked:   10,
			OvertimeHours: 2,
			EntryType:     timeentry.TypeRegular,
			Approved:      true,
		}}, nil
	}
	deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return &employee.Employee{
			ID:                 empID,
			PayTypes:           []string{employee.PayTypeHourly},
			HourlyRate:         floatPtr(20),
			OvertimeMultiplier: 1.5,
		}, nil
	}

	var grosses []float64
	deps.repo.upsertRecordFn = func(ctx context.Context, r *payperiod.PayrollRecord) error {
		grosses = append(grosses, r.TotalGrossPay)
		return nil
	}

	for i := 0; i < 2; i++ {
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payperiod.PayPeriod, error) {
			return lockedPeriod(periodID), nil
		}
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		_, err := deps.service.Process(ctx, periodID.String())
		assert.NoError(t, err)
	}

	assert.Len(t, grosses, 2)
	assert.Equal(t, grosses[0], grosses[1])
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayPeriodService_Lock_OnlyOpen(t *testing.T) {
	ctx := context.Background()
	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	periodID := uuid.New()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payperiod.PayPeriod, error) {
		p := lockedPeriod(periodID)
		p.Status = payperiod.StatusOpen
		return p, nil
	}

	resp, err := deps.service.Lock(ctx, periodID.String())
	assert.NoError(t, err)
	assert.Equal(t, payperiod.StatusLocked, resp.Status)

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payperiod.PayPeriod, error) {
		return lockedPeriod(periodID), nil
	}

	_, err = deps.service.Lock(ctx, periodID.String())
	assert.ErrorIs(t, err, payperioderrors.ErrNotOpen)
}

func TestPayPeriodService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Create(ctx, payperiod.CreatePayPeriodRequest{
		StartDate: "2024-06-01",
		EndDate:   "2024-06-07",
	})
	assert.ErrorIs(t, err, payperioderrors.ErrNameRequired)

	_, err = deps.service.Create(ctx, payperiod.CreatePayPeriodRequest{
		Name:      "June W1",
		StartDate: "2024-06-07",
		EndDate:   "2024-06-01",
	})
	assert.ErrorIs(t, err, payperioderrors.ErrInvalidDateRange)
}

func TestPayPeriodService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	recordID := uuid.New()

	deps.repo.findRecordByIDFn = func(ctx context.Context, id string) (*payperiod.PayrollRecord, error) {
		return &payperiod.PayrollRecord{ID: recordID, PaymentStatus: payperiod.PaymentUnpaid}, nil
	}

	method := "check"
	resp, err := deps.service.MarkPaid(ctx, recordID.String(), payperiod.MarkPaidRequest{
		PaymentStatus: payperiod.PaymentPaid,
		PaymentMethod: &method,
	})

	assert.NoError(t, err)
	assert.Equal(t, payperiod.PaymentPaid, resp.PaymentStatus)
	assert.NotNil(t, resp.PaidAt)

	_, err = deps.service.MarkPaid(ctx, recordID.String(), payperiod.MarkPaidRequest{PaymentStatus: "SENT"})
	assert.ErrorIs(t, err, payperioderrors.ErrInvalidPaymentStatus)
}

func TestPayPeriodService_ExportRows(t *testing.T) {
	ctx := context.Background()
	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	periodID := uuid.New()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payperiod.PayPeriod, error) {
		p := lockedPeriod(periodID)
		p.Status = payperiod.StatusProcessed
		return p, nil
	}
	deps.repo.findRecordsByPeriodFn = func(ctx context.Context, id string) ([]payperiod.PayrollRecord, error) {
		return []payperiod.PayrollRecord{{
			ID:                 uuid.New(),
			PayPeriodID:        periodID,
			Employee:           &payperiod.EmployeeRef{FirstName: `Maria "M," O'Neil`, LastName: "Smith", Email: "maria@example.com"},
			TotalRegularHours:  10,
			TotalOvertimeHours: 2,
			TotalGrossPay:      220,
			PaymentStatus:      payperiod.PaymentUnpaid,
		}}, nil
	}

	name, rows, err := deps.service.ExportRows(ctx, periodID.String())

	assert.NoError(t, err)
	assert.Equal(t, "June W1", name)
	assert.Len(t, rows, 2)
	assert.Equal(t, "employee_name", rows[0][0])

	row := rows[1]
	assert.Equal(t, `Maria "M," O'Neil Smith`, row[0])
	assert.Equal(t, "10.00", row[3])
	assert.Equal(t, "2.00", row[4])
	assert.Equal(t, "220.00", row[6])
	assert.Equal(t, payperiod.PaymentUnpaid, row[7])
}
