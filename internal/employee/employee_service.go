package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "poolops/internal/employee/errors"
	"poolops/internal/shared/calendar"
	"poolops/internal/shared/contextutil"
	"poolops/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKey = "employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Archive(ctx context.Context, id string, req ArchiveEmployeeRequest) (EmployeeResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.Strings("pay_types", req.PayTypes),
	)

	multiplier := 1.5
	if req.OvertimeMultiplier != nil {
		multiplier = *req.OvertimeMultiplier
	}

	if err := validatePayConfig(req.PayTypes, req.HourlyRate, req.AnnualSalary, req.PercentageRate, multiplier); err != nil {
		return EmployeeResponse{}, err
	}

	hireDate, err := calendar.ParseUTCDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	empl := &Employee{
		ID:                 uuid.New(),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		EmployeeNumber:     req.EmployeeNumber,
		Phone:              req.Phone,
		PayTypes:           req.PayTypes,
		HourlyRate:         req.HourlyRate,
		AnnualSalary:       req.AnnualSalary,
		PercentageRate:     req.PercentageRate,
		OvertimeMultiplier: multiplier,
		Status:             StatusActive,
		HireDate:           hireDate.Time(),
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight keeps concurrent form loads from stampeding the DB.
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		emps, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(emps)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	multiplier := 1.5
	if req.OvertimeMultiplier != nil {
		multiplier = *req.OvertimeMultiplier
	}

	if err := validatePayConfig(req.PayTypes, req.HourlyRate, req.AnnualSalary, req.PercentageRate, multiplier); err != nil {
		return EmployeeResponse{}, err
	}

	hireDate, err := calendar.ParseUTCDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Full replace semantics on the pay configuration.
	empl.FirstName = req.FirstName
	empl.LastName = req.LastName
	empl.Email = req.Email
	empl.EmployeeNumber = req.EmployeeNumber
	empl.Phone = req.Phone
	empl.PayTypes = req.PayTypes
	empl.HourlyRate = req.HourlyRate
	empl.AnnualSalary = req.AnnualSalary
	empl.PercentageRate = req.PercentageRate
	empl.OvertimeMultiplier = multiplier
	empl.HireDate = hireDate.Time()

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

// Archive transitions lifecycle status. Employees are never hard-deleted:
// payout and payroll history keeps referencing them.
func (s *service) Archive(ctx context.Context, id string, req ArchiveEmployeeRequest) (EmployeeResponse, error) {
	switch req.Status {
	case StatusActive, StatusInactive, StatusTerminated, StatusOnLeave:
	default:
		return EmployeeResponse{}, employeeerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Status = req.Status
	if req.Status == StatusTerminated && empl.TerminationDate == nil {
		now := time.Now().UTC()
		empl.TerminationDate = &now
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("archive employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("archive employee success",
		zap.String("employee_id", id),
		zap.String("status", req.Status),
	)

	return mapToResponse(*empl), nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func validatePayConfig(payTypes []string, hourlyRate, annualSalary, percentageRate *float64, multiplier float64) error {
	if len(payTypes) == 0 {
		return employeeerrors.ErrPayTypeRequired
	}
	if multiplier < 1 {
		return employeeerrors.ErrInvalidOvertimeMultiplier
	}

	for _, pt := range payTypes {
		switch pt {
		case PayTypeHourly:
			if hourlyRate == nil || *hourlyRate <= 0 {
				return employeeerrors.ErrHourlyRateRequired
			}
		case PayTypeSalary:
			if annualSalary == nil || *annualSalary <= 0 {
				return employeeerrors.ErrAnnualSalaryRequired
			}
		case PayTypePercentage:
			if percentageRate == nil || *percentageRate <= 0 || *percentageRate > 100 {
				return employeeerrors.ErrPercentageRateRequired
			}
		default:
			return employeeerrors.ErrInvalidPayType
		}
	}

	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                 empl.ID.String(),
		FirstName:          empl.FirstName,
		LastName:           empl.LastName,
		Email:              empl.Email,
		EmployeeNumber:     empl.EmployeeNumber,
		Phone:              empl.Phone,
		PayTypes:           empl.PayTypes,
		HourlyRate:         empl.HourlyRate,
		AnnualSalary:       empl.AnnualSalary,
		PercentageRate:     empl.PercentageRate,
		OvertimeMultiplier: empl.OvertimeMultiplier,
		Status:             empl.Status,
		HireDate:           calendar.Key(empl.HireDate),
	}
	if empl.TerminationDate != nil {
		v := calendar.Key(*empl.TerminationDate)
		resp.TerminationDate = &v
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
