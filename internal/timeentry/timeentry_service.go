package timeentry

import (
	"context"
	"database/sql"
	"time"

	"poolops/internal/shared/calendar"
	timeentryerrors "poolops/internal/timeentry/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	periodStatusLocked    = "LOCKED"
	periodStatusProcessed = "PROCESSED"
)

// PeriodGate reports the statuses of pay periods overlapping a calendar day.
// Implemented by the pay period repository; kept as a local interface so the
// ledger does not depend on the processor package.
type PeriodGate interface {
	StatusesOverlappingDate(ctx context.Context, dateKey string) ([]string, error)
}

//go:generate mockgen -source=timeentry_service.go -destination=mock/timeentry_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTimeEntryRequest) (TimeEntryResponse, error)
	GetAll(ctx context.Context, filter ListTimeEntriesFilter) ([]TimeEntryResponse, error)
	Update(ctx context.Context, id string, req UpdateTimeEntryRequest) (TimeEntryResponse, error)
	Approve(ctx context.Context, id, approverID string) (TimeEntryResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	periods PeriodGate
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, periods PeriodGate, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.service")
	}
	return &service{db: db, repo: repo, periods: periods, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateTimeEntryRequest) (TimeEntryResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEmployeeID
	}

	entryDate, err := calendar.ParseLocalDate(req.Date)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	entryType := req.Type
	if entryType == "" {
		entryType = TypeRegular
	}
	if !validEntryType(entryType) {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryType
	}

	startTime, endTime, hours, err := deriveHours(req.StartTime, req.EndTime, req.BreakMinutes, req.HoursWorked)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &TimeEntry{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		EntryDate:     entryDate.Time(),
		StartTime:     startTime,
		EndTime:       endTime,
		BreakMinutes:  req.BreakMinutes,
		HoursWorked:   hours,
		OvertimeHours: deriveOvertime(entryType, hours),
		EntryType:     entryType,
		FlatRate:      req.FlatRate,
		GasMoney:      req.GasMoney,
		JobIDs:        req.JobIDs,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create time entry persist failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}

	s.logger.Info("create time entry success",
		zap.String("entry_id", row.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", entryDate.Key()),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, filter ListTimeEntriesFilter) ([]TimeEntryResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]TimeEntryResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTimeEntryRequest) (TimeEntryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryID
	}

	entryDate, err := calendar.ParseLocalDate(req.Date)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	entryType := req.Type
	if entryType == "" {
		entryType = TypeRegular
	}
	if !validEntryType(entryType) {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryType
	}

	startTime, endTime, hours, err := deriveHours(req.StartTime, req.EndTime, req.BreakMinutes, req.HoursWorked)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	// Edits are rejected once a locked pay period covers the entry's day.
	// The current day and the requested day are both checked so an entry
	// cannot be moved out of a locked period either.
	if err := s.checkPeriodGate(ctx, calendar.Key(row.EntryDate), periodStatusLocked); err != nil {
		return TimeEntryResponse{}, err
	}
	if err := s.checkPeriodGate(ctx, entryDate.Key(), periodStatusLocked); err != nil {
		return TimeEntryResponse{}, err
	}

	overtime := deriveOvertime(entryType, hours)

	// Changed hours invalidate a previous approval so payroll never absorbs
	// silently modified data.
	if row.HoursWorked != hours || row.OvertimeHours != overtime {
		row.Approved = false
		row.ApprovedBy = nil
	}

	row.EntryDate = entryDate.Time()
	row.StartTime = startTime
	row.EndTime = endTime
	row.BreakMinutes = req.BreakMinutes
	row.HoursWorked = hours
	row.OvertimeHours = overtime
	row.EntryType = entryType
	row.FlatRate = req.FlatRate
	row.GasMoney = req.GasMoney
	row.JobIDs = req.JobIDs

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update time entry persist failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}

	s.logger.Info("update time entry success", zap.String("entry_id", id))

	return mapToResponse(*row), nil
}

func (s *service) Approve(ctx context.Context, id, approverID string) (TimeEntryResponse, error) {
	approver, err := uuid.Parse(approverID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	row.Approved = true
	row.ApprovedBy = &approver

	if err := qtx.Update(ctx, row); err != nil {
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}

	s.logger.Info("approve time entry success",
		zap.String("entry_id", id),
		zap.String("approved_by", approverID),
	)

	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return timeentryerrors.ErrInvalidEntryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	// Deletion has the stricter gate: locked or processed both block it.
	if err := s.checkPeriodGate(ctx, calendar.Key(row.EntryDate), periodStatusLocked, periodStatusProcessed); err != nil {
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete time entry success", zap.String("entry_id", id))
	return nil
}

func (s *service) checkPeriodGate(ctx context.Context, dateKey string, blocking ...string) error {
	if s.periods == nil {
		return nil
	}

	statuses, err := s.periods.StatusesOverlappingDate(ctx, dateKey)
	if err != nil {
		return err
	}

	for _, status := range statuses {
		for _, blocked := range blocking {
			if status == blocked {
				if len(blocking) > 1 {
					return timeentryerrors.ErrPeriodClosed
				}
				return timeentryerrors.ErrPeriodLocked
			}
		}
	}

	return nil
}

// deriveHours computes worked hours from clock times when both are present,
// otherwise takes the submitted figure as-is.
func deriveHours(start, end *string, breakMinutes int, submitted float64) (*time.Time, *time.Time, float64, error) {
	var startTime, endTime *time.Time

	if start != nil && *start != "" {
		t, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			return nil, nil, 0, timeentryerrors.ErrInvalidTimeFormat
		}
		startTime = &t
	}
	if end != nil && *end != "" {
		t, err := time.Parse(time.RFC3339, *end)
		if err != nil {
			return nil, nil, 0, timeentryerrors.ErrInvalidTimeFormat
		}
		endTime = &t
	}

	hours := submitted
	if startTime != nil && endTime != nil {
		if !endTime.After(*startTime) {
			return nil, nil, 0, timeentryerrors.ErrEndBeforeStart
		}
		hours = endTime.Sub(*startTime).Hours() - float64(breakMinutes)/60
	}

	if hours < 0 {
		return nil, nil, 0, timeentryerrors.ErrNegativeHours
	}

	return startTime, endTime, hours, nil
}

// deriveOvertime applies the daily threshold split. Only REGULAR entries
// carry overtime; the split is per entry day, no weekly rule exists.
func deriveOvertime(entryType string, hours float64) float64 {
	if entryType != TypeRegular {
		return 0
	}
	if hours <= dailyOvertimeThreshold {
		return 0
	}
	return hours - dailyOvertimeThreshold
}

func validEntryType(t string) bool {
	switch t {
	case TypeRegular, TypeOvertime, TypePTO, TypeSick, TypeHoliday:
		return true
	}
	return false
}

func mapToResponse(e TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:            e.ID.String(),
		EmployeeID:    e.EmployeeID.String(),
		Date:          calendar.Key(e.EntryDate),
		BreakMinutes:  e.BreakMinutes,
		HoursWorked:   e.HoursWorked,
		OvertimeHours: e.OvertimeHours,
		Type:          e.EntryType,
		FlatRate:      e.FlatRate,
		GasMoney:      e.GasMoney,
		JobIDs:        e.JobIDs,
		Approved:      e.Approved,
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FirstName + " " + e.Employee.LastName
	}
	if e.StartTime != nil {
		v := e.StartTime.Format(time.RFC3339)
		resp.StartTime = &v
	}
	if e.EndTime != nil {
		v := e.EndTime.Format(time.RFC3339)
		resp.EndTime = &v
	}
	if e.ApprovedBy != nil {
		v := e.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}
