package payout_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"poolops/internal/employee"
	"poolops/internal/payout"
	payouterrors "poolops/internal/payout/errors"
	"poolops/internal/timeentry"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePayoutRepository struct {
	withTxFn              func(tx *sql.Tx) payout.Repository
	createFn              func(ctx context.Context, p *payout.PercentagePayout) error
	findByIDFn            func(ctx context.Context, id string) (*payout.PercentagePayout, error)
	findInRangeFn         func(ctx context.Context, fromKey, toKey string) ([]payout.PercentagePayout, error)
	findEmployeeInRangeFn func(ctx context.Context, fromKey, toKey string) ([]payout.EmployeePayoutWithDate, error)
	deleteFn              func(ctx context.Context, id string) error
}

func (f *fakePayoutRepository) WithTx(tx *sql.Tx) payout.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayoutRepository) Create(ctx context.Context, p *payout.PercentagePayout) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayoutRepository) FindByID(ctx context.Context, id string) (*payout.PercentagePayout, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakePayoutRepository) FindInRange(ctx context.Context, fromKey, toKey string) ([]payout.PercentagePayout, error) {
	if f.findInRangeFn != nil {
		return f.findInRangeFn(ctx, fromKey, toKey)
	}
	return nil, nil
}

func (f *fakePayoutRepository) FindEmployeePayoutsInRange(ctx context.Context, fromKey, toKey string) ([]payout.EmployeePayoutWithDate, error) {
	if f.findEmployeeInRangeFn != nil {
		return f.findEmployeeInRangeFn(ctx, fromKey, toKey)
	}
	return nil, nil
}

func (f *fakePayoutRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findByIDFn      func(ctx context.Context, id string) (*employee.Employee, error)
	findByPayTypeFn func(ctx context.Context, payType string) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }
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
	if f.findByPayTypeFn != nil {
		return f.findByPayTypeFn(ctx, payType)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	return nil
}

type fakeTimeEntryRepository struct {
	findApprovedByDateFn func(ctx context.Context, dateKey string) ([]timeentry.TimeEntry, error)
	findApprovedInRange  func(ctx context.Context, fromKey, toKey string) ([]timeentry.TimeEntry, error)
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
	if f.findApprovedByDateFn != nil {
		return f.findApprovedByDateFn(ctx, dateKey)
	}
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

type fakeSettingsProvider struct {
	percent float64
}

func (f *fakeSettingsProvider) ProfitReferencePercent(ctx context.Context) (float64, error) {
	if f.percent == 0 {
		return 20, nil
	}
	return f.percent, nil
}

type payoutServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   payout.Service
	repo      *fakePayoutRepository
	employees *fakeEmployeeRepository
	entries   *fakeTimeEntryRepository
}

func setupPayoutServiceTest(t *testing.T) *payoutServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePayoutRepository{}
	employees := &fakeEmployeeRepository{}
	entries := &fakeTimeEntryRepository{}
	svc := payout.NewService(db, repo, employees, entries, &fakeSettingsProvider{})

	return &payoutServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		employees: employees,
		entries:   entries,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestPayoutService_Create_LaborFromRequests(t *testing.T) {
	ctx := context.Background()
	deps := setupPayoutServiceTest(t)
	defer deps.db.Close()

	hourlyID := uuid.New()
	percentID := uuid.New()

	deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		switch id {
		case hourlyID.String():
			return &employee.Employee{
				ID:                 hourlyID,
				FirstName:          "Hank",
				LastName:           "Hourly",
				PayTypes:           []string{employee.PayTypeHourly},
				HourlyRate:         floatPtr(15),
				OvertimeMultiplier: 1.5,
			}, nil
		case percentID.String():
			return &employee.Employee{
				ID:             percentID,
				FirstName:      "Pat",
				LastName:       "Percent",
				PayTypes:       []string{employee.PayTypePercentage},
				PercentageRate: floatPtr(10),
			}, nil
		}
		return nil, sql.ErrNoRows
	}

	var created *payout.PercentagePayout
	deps.repo.createFn = func(ctx context.Context, p *payout.PercentagePayout) error {
		created = p
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(ctx, payout.CreatePayoutRequest{
		Date:         "2024-06-03",
		TotalRevenue: floatPtr(1000),
		JobCosts:     100,
		Materials:    50,
		EmployeePayouts: []payout.EmployeePayoutRequest{
			{EmployeeID: hourlyID.String(), PayType: payout.PayTypeHourly, HourlyRate: floatPtr(15), Hours: floatPtr(4)},
			{EmployeeID: percentID.String(), PayType: payout.PayTypePercentage},
		},
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)

	assert.InDelta(t, 60, resp.LaborCosts, 1e-9)
	assert.InDelta(t, 210, resp.TotalCosts, 1e-9)
	assert.InDelta(t, 790, resp.TotalProfit, 1e-9)
	assert.InDelta(t, 79, resp.TotalPercentagePayout, 1e-9)
	assert.InDelta(t, 158, resp.CalculatedPayout, 1e-9)
	assert.Equal(t, 20.0, resp.ProfitPercentage)

	assert.Len(t, resp.EmployeePayouts, 2)
	assert.InDelta(t, 60, resp.EmployeePayouts[0].PayoutAmount, 1e-9)
	assert.InDelta(t, 79, resp.EmployeePayouts[1].PayoutAmount, 1e-9)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayoutService_Create_EntryDerivedWins(t *testing.T) {
	ctx := context.Background()
	deps := setupPayoutServiceTest(t)
	defer deps.db.Close()

	empID := uuid.New()
	deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return &employee.Employee{
			ID:                 empID,
			PayTypes:           []string{employee.PayTypeHourly},
			HourlyRate:         floatPtr(20),
			OvertimeMultiplier: 1.5,
		}, nil
	}

	// 10 hours with 2 overtime plus gas money on one approved entry.
	deps.entries.findApprovedByDateFn = func(ctx context.Context, dateKey string) ([]timeentry.TimeEntry, error) {
		assert.Equal(t, "2024-06-03", dateKey)
		return []timeentry.TimeEntry{{
			EmployeeID:    empID,
			EntryDate:     time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			HoursWorked:   10,
			OvertimeHours: 2,
			EntryType:     timeentry.TypeRegular,
			GasMoney:      floatPtr(25),
			Approved:      true,
		}}, nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(ctx, payout.CreatePayoutRequest{
		Date:         "2024-06-03",
		TotalRevenue: floatPtr(1000),
		LaborCosts:   floatPtr(500),
		EmployeePayouts: []payout.EmployeePayoutRequest{
			{EmployeeID: empID.String(), PayType: payout.PayTypeHourly},
		},
	})

	assert.NoError(t, err)

	// Entry-derived labor wins over the manual override:
	// (10-2)*20 + 2*20*1.5 = 220.
	assert.InDelta(t, 220, resp.LaborCosts, 1e-9)
	assert.InDelta(t, 25, resp.GasMoney, 1e-9)
	assert.InDelta(t, 245, resp.TotalCosts, 1e-9)
	assert.InDelta(t, 755, resp.TotalProfit, 1e-9)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayoutService_Create_FlatRateOverridesHourly(t *testing.T) {
	ctx := context.Background()
	deps := setupPayoutServiceTest(t)
	defer deps.db.Close()

	empID := uuid.New()
	deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return &employee.Employee{
			ID:                 empID,
			PayTypes:           []string{employee.PayTypeHourly},
			HourlyRate:         floatPtr(20),
			OvertimeMultiplier: 1.5,
		}, nil
	}
	deps.entries.findApprovedByDateFn = func(ctx context.Context, dateKey string) ([]timeentry.TimeEntry, error) {
		return []timeentry.TimeEntry{{
			EmployeeID:  empID,
			EntryDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			HoursWorked: 6,
			EntryType:   timeentry.TypeRegular,
			FlatRate:    floatPtr(150),
			Approved:    true,
		}}, nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(ctx, payout.CreatePayoutRequest{
		Date:         "2024-06-03",
		TotalRevenue: floatPtr(500),
		EmployeePayouts: []payout.EmployeePayoutRequest{
			{EmployeeID: empID.String(), PayType: payout.PayTypeHourly, Hours: floatPtr(6)},
		},
	})

	assert.NoError(t, err)
	assert.InDelta(t, 150, resp.LaborCosts, 1e-9)
	assert.Len(t, resp.EmployeePayouts, 1)
	assert.InDelta(t, 150, resp.EmployeePayouts[0].PayoutAmount, 1e-9)
	assert.NotNil(t, resp.EmployeePayouts[0].FlatRate)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayoutService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	deps := setupPayoutServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Create(ctx, payout.CreatePayoutRequest{
		TotalRevenue:    floatPtr(100),
		EmployeePayouts: []payout.EmployeePayoutRequest{{EmployeeID: uuid.NewString(), PayType: payout.PayTypeHourly}},
	})
	assert.ErrorIs(t, err, payouterrors.ErrDateRequired)

	_, err = deps.service.Create(ctx, payout.CreatePayoutRequest{
		Date:            "2024-06-03",
		EmployeePayouts: []payout.EmployeePayoutRequest{{EmployeeID: uuid.NewString(), PayType: payout.PayTypeHourly}},
	})
	assert.ErrorIs(t, err, payouterrors.ErrRevenueRequired)

	_, err = deps.service.Create(ctx, payout.CreatePayoutRequest{
		Date:         "2024-06-03",
		TotalRevenue: floatPtr(100),
	})
	assert.ErrorIs(t, err, payouterrors.ErrEmployeePayoutsRequired)
}

func TestPayoutService_Create_MissingPercentageRate(t *testing.T) {
	ctx := context.Background()
	deps := setupPayoutServiceTest(t)
	defer deps.db.Close()

	empID := uuid.New()
	deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return &employee.Employee{ID: empID, PayTypes: []string{employee.PayTypePercentage}}, nil
	}

	_, err := deps.service.Create(ctx, payout.CreatePayoutRequest{
		Date:         "2024-06-03",
		TotalRevenue: floatPtr(100),
		EmployeePayouts: []payout.EmployeePayoutRequest{
			{EmployeeID: empID.String(), PayType: payout.PayTypePercentage},
		},
	})

	assert.ErrorIs(t, err, payouterrors.ErrMissingPercentageRate)
}

func TestPayoutService_List_NoDoubleCount(t *testing.T) {
	ctx := context.Background()
	deps := setupPayoutServiceTest(t)
	defer deps.db.Close()

	recordedID := uuid.New()
	derivedID := uuid.New()
	percentID := uuid.New()

	deps.repo.findInRangeFn = func(ctx context.Context, fromKey, toKey string) ([]payout.PercentagePayout, error) {
		return []payout.PercentagePayout{{
			ID:           uuid.New(),
			PayoutDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			TotalRevenue: 1000,
			TotalCosts:   210,
			EmployeePayouts: []payout.EmployeePayout{
				{EmployeeID: recordedID, PayType: payout.PayTypeHourly, PayoutAmount: 100},
				{EmployeeID: percentID, PayType: payout.PayTypePercentage, PayoutAmount: 79},
			},
		}}, nil
	}

	deps.employees.findByPayTypeFn = func(ctx context.Context, payType string) ([]employee.Employee, error) {
		assert.Equal(t, employee.PayTypeHourly, payType)
		return []employee.Employee{
			{ID: recordedID, PayTypes: []string{employee.PayTypeHourly}, HourlyRate: floatPtr(20), OvertimeMultiplier: 1.5},
			{ID: derivedID, FirstName: "Dana", LastName: "Derived", PayTypes: []string{employee.PayTypeHourly}, HourlyRate: floatPtr(10), OvertimeMultiplier: 1.5},
		}, nil
	}

	deps.entries.findApprovedInRange = func(ctx context.Context, fromKey, toKey string) ([]timeentry.TimeEntry, error) {
		return []timeentry.TimeEntry{
			// Covered by an explicit hourly row, must not synthesize.
			{EmployeeID: recordedID, EntryDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), HoursWorked: 8, EntryType: timeentry.TypeRegular, Approved: true},
			// Never rolled into a payout document, must synthesize.
			{EmployeeID: derivedID, EntryDate: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), HoursWorked: 5, EntryType: timeentry.TypeRegular, Approved: true},
		}, nil
	}

	rows, total, err := deps.service.List(ctx, payout.ListPayoutsFilter{From: "2024-06-01", To: "2024-06-07"})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 3)

	derivedCount := 0
	for _, row := range rows {
		if row.Source == payout.SourceDerived {
			derivedCount++
			assert.Equal(t, derivedID.String(), row.EmployeeID)
			assert.Equal(t, "2024-06-04", row.Date)
			assert.InDelta(t, 50, row.PayoutAmount, 1e-9)
		}
		if row.EmployeeID == recordedID.String() {
			assert.Equal(t, payout.SourceRecorded, row.Source)
		}
	}
	assert.Equal(t, 1, derivedCount)
}

func TestPayoutService_Summary(t *testing.T) {
	ctx := context.Background()
	deps := setupPayoutServiceTest(t)
	defer deps.db.Close()

	recordedID := uuid.New()
	derivedID := uuid.New()
	percentID := uuid.New()

	deps.repo.findInRangeFn = func(ctx context.Context, fromKey, toKey string) ([]payout.PercentagePayout, error) {
		return []payout.PercentagePayout{{
			ID:           uuid.New(),
			PayoutDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			TotalRevenue: 1000,
			TotalCosts:   210,
			EmployeePayouts: []payout.EmployeePayout{
				{EmployeeID: recordedID, PayType: payout.PayTypeHourly, PayoutAmount: 100},
				{EmployeeID: percentID, PayType: payout.PayTypePercentage, PayoutAmount: 79},
			},
		}}, nil
	}
	deps.employees.findByPayTypeFn = func(ctx context.Context, payType string) ([]employee.Employee, error) {
		return []employee.Employee{
			{ID: derivedID, PayTypes: []string{employee.PayTypeHourly}, HourlyRate: floatPtr(10), OvertimeMultiplier: 1.5},
		}, nil
	}
	deps.entries.findApprovedInRange = func(ctx context.Context, fromKey, toKey string) ([]timeentry.TimeEntry, error) {
		return []timeentry.TimeEntry{
			{EmployeeID: derivedID, EntryDate: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), HoursWorked: 5, EntryType: timeentry.TypeRegular, Approved: true},
		}, nil
	}

	res, err := deps.service.Summary(ctx, payout.ListPayoutsFilter{From: "2024-06-01", To: "2024-06-07"})

	assert.NoError(t, err)
	assert.InDelta(t, 1000, res.TotalRevenue, 1e-9)
	assert.InDelta(t, 210, res.TotalCosts, 1e-9)
	assert.InDelta(t, 229, res.TotalEmployeePayout, 1e-9)

	// Rollup profit nets revenue against employee payouts, not day costs.
	assert.InDelta(t, 771, res.TotalProfit, 1e-9)
	assert.InDelta(t, 561, res.TotalCompanyPayout, 1e-9)

	assert.Len(t, res.Employees, 3)
}

func TestPayoutService_List_InvalidRange(t *testing.T) {
	ctx := context.Background()
	deps := setupPayoutServiceTest(t)
	defer deps.db.Close()

	_, _, err := deps.service.List(ctx, payout.ListPayoutsFilter{From: "2024-06-07", To: "2024-06-01"})
	assert.ErrorIs(t, err, payouterrors.ErrInvalidDateRange)

	_, _, err = deps.service.List(ctx, payout.ListPayoutsFilter{From: "2024-06-01"})
	assert.ErrorIs(t, err, payouterrors.ErrInvalidDateRange)
}

func TestPayoutService_List_Pagination(t *testing.T) {
	ctx := context.Background()
	deps := setupPayoutServiceTest(t)
	defer deps.db.Close()

	empID := uuid.New()
	deps.repo.findInRangeFn = func(ctx context.Context, fromKey, toKey string) ([]payout.PercentagePayout, error) {
		docs := make([]payout.PercentagePayout, 5)
		for i := range docs {
			docs[i] = payout.PercentagePayout{
				ID:         uuid.New(),
				PayoutDate: time.Date(2024, 6, i+1, 0, 0, 0, 0, time.UTC),
				EmployeePayouts: []payout.EmployeePayout{
					{EmployeeID: empID, PayType: payout.PayTypePercentage, PayoutAmount: float64(i + 1)},
				},
			}
		}
		return docs, nil
	}

	filter := payout.ListPayoutsFilter{From: "2024-06-01", To: "2024-06-07", Page: 2, Limit: 2}
	rows, total, err := deps.service.List(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 2)
	assert.Equal(t, "2024-06-03", rows[0].Date)
	assert.Equal(t, "2024-06-04", rows[1].Date)

	// A page past the end is empty, not an error.
	filter.Page = 4
	rows, total, err = deps.service.List(ctx, filter)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 0)

	// No limit returns the whole merge.
	rows, total, err = deps.service.List(ctx, payout.ListPayoutsFilter{From: "2024-06-01", To: "2024-06-07"})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 5)
}

func TestPayoutService_List_CreatedAtSortMergesSources(t *testing.T) {
	ctx := context.Background()
	deps := setupPayoutServiceTest(t)
	defer deps.db.Close()

	recordedID := uuid.New()
	derivedID := uuid.New()

	deps.repo.findInRangeFn = func(ctx context.Context, fromKey, toKey string) ([]payout.PercentagePayout, error) {
		return []payout.PercentagePayout{{
			ID:         uuid.New(),
			PayoutDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			CreatedAt:  time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
			EmployeePayouts: []payout.EmployeePayout{
				{EmployeeID: recordedID, PayType: payout.PayTypeHourly, PayoutAmount: 100},
			},
		}}, nil
	}
	deps.employees.findByPayTypeFn = func(ctx context.Context, payType string) ([]employee.Employee, error) {
		return []employee.Employee{
			{ID: recordedID, PayTypes: []string{employee.PayTypeHourly}, HourlyRate: floatPtr(20), OvertimeMultiplier: 1.5},
			{ID: derivedID, PayTypes: []string{employee.PayTypeHourly}, HourlyRate: floatPtr(10), OvertimeMultiplier: 1.5},
		}, nil
	}
	deps.entries.findApprovedInRange = func(ctx context.Context, fromKey, toKey string) ([]timeentry.TimeEntry, error) {
		return []timeentry.TimeEntry{
			{EmployeeID: derivedID, EntryDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), HoursWorked: 5, EntryType: timeentry.TypeRegular, Approved: true},
			{EmployeeID: derivedID, EntryDate: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), HoursWorked: 5, EntryType: timeentry.TypeRegular, Approved: true},
		}, nil
	}

	rows, total, err := deps.service.List(ctx, payout.ListPayoutsFilter{
		From:   "2024-06-01",
		To:     "2024-06-07",
		SortBy: "created_at",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 3)

	// Synthesized rows anchor to the start of their day, so the June 3
	// synthetic row precedes the explicit row created at 10:00 that day,
	// and the June 4 synthetic row follows both.
	assert.Equal(t, payout.SourceDerived, rows[0].Source)
	assert.Equal(t, "2024-06-03", rows[0].Date)
	assert.Equal(t, payout.SourceRecorded, rows[1].Source)
	assert.Equal(t, "2024-06-03", rows[1].Date)
	assert.Equal(t, payout.SourceDerived, rows[2].Source)
	assert.Equal(t, "2024-06-04", rows[2].Date)
}
