package payout

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"poolops/internal/employee"
	payouterrors "poolops/internal/payout/errors"
	"poolops/internal/shared/calendar"
	"poolops/internal/shared/contextutil"
	"poolops/internal/timeentry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultProfitReferencePercent is used when no settings provider is wired.
const defaultProfitReferencePercent = 20.0

// SettingsProvider supplies the company-wide profit share constant stored on
// the settings record. Implemented by the settings service.
type SettingsProvider interface {
	ProfitReferencePercent(ctx context.Context) (float64, error)
}

//go:generate mockgen -source=payout_service.go -destination=mock/payout_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePayoutRequest) (PayoutResponse, error)
	GetByID(ctx context.Context, id string) (PayoutResponse, error)
	List(ctx context.Context, filter ListPayoutsFilter) ([]ReconciledPayoutResponse, int64, error)
	Summary(ctx context.Context, filter ListPayoutsFilter) (PayoutSummaryResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	entries   timeentry.Repository
	settings  SettingsProvider
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	entries timeentry.Repository,
	settings SettingsProvider,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payout.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payout.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		entries:   entries,
		settings:  settings,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreatePayoutRequest) (PayoutResponse, error) {
	if req.Date == "" {
		return PayoutResponse{}, payouterrors.ErrDateRequired
	}
	if req.TotalRevenue == nil {
		return PayoutResponse{}, payouterrors.ErrRevenueRequired
	}
	if len(req.EmployeePayouts) == 0 {
		return PayoutResponse{}, payouterrors.ErrEmployeePayoutsRequired
	}

	payoutDate, err := calendar.ParseUTCDate(req.Date)
	if err != nil {
		return PayoutResponse{}, err
	}

	// Day entries feed both the labor-cost derivation and the per-employee
	// flat-rate and hours fallbacks.
	dayEntries, err := s.entries.FindApprovedByDate(ctx, payoutDate.Key())
	if err != nil {
		return PayoutResponse{}, mapRepositoryError(err)
	}
	entriesByEmployee := groupEntriesByEmployee(dayEntries)

	cache := map[string]*employee.Employee{}
	loadEmployee := func(id string) (*employee.Employee, error) {
		if emp, ok := cache[id]; ok {
			return emp, nil
		}
		emp, err := s.employees.FindByID(ctx, id)
		if err != nil {
			return nil, payouterrors.ErrEmployeeNotFound
		}
		cache[id] = emp
		return emp, nil
	}

	// Labor cost source 1: the submitted hourly-type payout requests.
	laborFromRequests := 0.0
	for _, epr := range req.EmployeePayouts {
		if epr.PayType != PayTypeHourly {
			continue
		}
		emp, err := loadEmployee(epr.EmployeeID)
		if err != nil {
			return PayoutResponse{}, err
		}

		rate, hours := hourlyRateAndHours(epr, emp, entriesByEmployee[epr.EmployeeID])
		if flat := flatRateTotal(entriesByEmployee[epr.EmployeeID]); flat > 0 {
			laborFromRequests += flat
		} else if rate != nil && hours != nil {
			laborFromRequests += *rate * *hours
		}
	}

	laborCosts := laborFromRequests

	// Source 2: the manual override, only when the requests yielded nothing.
	if laborCosts == 0 && req.LaborCosts != nil {
		laborCosts = *req.LaborCosts
	}

	// Source 3 and the authoritative correction: the figure derived from all
	// approved entries on the day. It includes flat-rate pay the submitted
	// form might omit, so a nonzero value replaces whatever came before.
	entryDerived, gasMoney, err := s.laborFromEntries(ctx, dayEntries, cache)
	if err != nil {
		return PayoutResponse{}, err
	}
	if entryDerived > 0 {
		laborCosts = entryDerived
	}

	totalCosts := req.JobCosts + req.Materials + laborCosts + gasMoney
	totalProfit := *req.TotalRevenue - totalCosts

	profitPercent := s.profitReferencePercent(ctx)

	payoutID := uuid.New()
	rows := make([]EmployeePayout, 0, len(req.EmployeePayouts))
	totalPercentagePayout := 0.0

	for _, epr := range req.EmployeePayouts {
		emp, err := loadEmployee(epr.EmployeeID)
		if err != nil {
			return PayoutResponse{}, err
		}

		row := EmployeePayout{
			ID:         uuid.New(),
			PayoutID:   payoutID,
			EmployeeID: emp.ID,
			PayType:    epr.PayType,
		}

		switch epr.PayType {
		case PayTypePercentage:
			rate := epr.PercentageRate
			if rate == nil {
				rate = emp.PercentageRate
			}
			if rate == nil {
				return PayoutResponse{}, payouterrors.ErrMissingPercentageRate
			}
			row.PercentageRate = rate
			row.PayoutAmount = totalProfit * *rate / 100
			totalPercentagePayout += row.PayoutAmount

		case PayTypeHourly:
			if flat := flatRateTotal(entriesByEmployee[epr.EmployeeID]); flat > 0 {
				row.FlatRate = &flat
				row.PayoutAmount = flat
				break
			}
			rate, hours := hourlyRateAndHours(epr, emp, entriesByEmployee[epr.EmployeeID])
			if rate == nil {
				return PayoutResponse{}, payouterrors.ErrMissingHourlyRate
			}
			worked := 0.0
			if hours != nil {
				worked = *hours
			}
			row.HourlyRate = rate
			row.Hours = &worked
			row.PayoutAmount = *rate * worked

		default:
			return PayoutResponse{}, payouterrors.ErrInvalidPayType
		}

		rows = append(rows, row)
	}

	doc := &PercentagePayout{
		ID:                    payoutID,
		PayoutDate:            payoutDate.Time(),
		TotalRevenue:          *req.TotalRevenue,
		JobCosts:              req.JobCosts,
		Materials:             req.Materials,
		LaborCosts:            laborCosts,
		GasMoney:              gasMoney,
		TotalCosts:            totalCosts,
		TotalProfit:           totalProfit,
		TotalPercentagePayout: totalPercentagePayout,
		ProfitPercentage:      profitPercent,
		CalculatedPayout:      totalProfit * profitPercent / 100,
		CreatedBy:             actorUUID(ctx),
		EmployeePayouts:       rows,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayoutResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, doc); err != nil {
		s.logger.Error("create payout persist failed", zap.Error(err))
		return PayoutResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayoutResponse{}, err
	}

	s.logger.Info("create payout success",
		zap.String("payout_id", payoutID.String()),
		zap.String("date", payoutDate.Key()),
		zap.Float64("total_profit", totalProfit),
		zap.Int("employee_payouts", len(rows)),
	)

	return s.mapToResponse(*doc, cache), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayoutResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayoutResponse{}, payouterrors.ErrInvalidPayoutID
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayoutResponse{}, mapRepositoryError(err)
	}

	return s.mapToResponse(*doc, nil), nil
}

// List merges explicit payout rows with transient hourly payouts synthesized
// from approved time entries that were never rolled into a payout document.
// The page slice is taken after the merge sort; total counts the whole merge.
func (s *service) List(ctx context.Context, filter ListPayoutsFilter) ([]ReconciledPayoutResponse, int64, error) {
	rows, _, err := s.reconcile(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(rows))
	return paginateRows(rows, filter.Page, filter.Limit), total, nil
}

func paginateRows(rows []ReconciledPayoutResponse, page, limit int) []ReconciledPayoutResponse {
	if limit <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(rows) {
		return []ReconciledPayoutResponse{}
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func (s *service) Summary(ctx context.Context, filter ListPayoutsFilter) (PayoutSummaryResponse, error) {
	rows, docs, err := s.reconcile(ctx, filter)
	if err != nil {
		return PayoutSummaryResponse{}, err
	}

	res := PayoutSummaryResponse{From: filter.From, To: filter.To}

	for _, doc := range docs {
		res.TotalRevenue += doc.TotalRevenue
		res.TotalCosts += doc.TotalCosts
	}

	byEmployee := map[string]*EmployeePayoutSummary{}
	order := []string{}
	for _, row := range rows {
		res.TotalEmployeePayout += row.PayoutAmount

		sum, ok := byEmployee[row.EmployeeID]
		if !ok {
			sum = &EmployeePayoutSummary{
				EmployeeID:   row.EmployeeID,
				EmployeeName: row.EmployeeName,
			}
			byEmployee[row.EmployeeID] = sum
			order = append(order, row.EmployeeID)
		}
		sum.TotalPayout += row.PayoutAmount
		sum.PayoutCount++
		sum.Payouts = append(sum.Payouts, row)
	}

	// The rollup profit deliberately nets revenue against employee payouts
	// rather than against day costs.
	res.TotalProfit = res.TotalRevenue - res.TotalEmployeePayout
	res.TotalCompanyPayout = res.TotalRevenue - res.TotalCosts - res.TotalEmployeePayout

	res.Employees = make([]EmployeePayoutSummary, 0, len(order))
	for _, id := range order {
		res.Employees = append(res.Employees, *byEmployee[id])
	}
	sort.Slice(res.Employees, func(i, j int) bool {
		return res.Employees[i].EmployeeName < res.Employees[j].EmployeeName
	})

	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payouterrors.ErrInvalidPayoutID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("delete payout success", zap.String("payout_id", id))
	return nil
}

func (s *service) reconcile(ctx context.Context, filter ListPayoutsFilter) ([]ReconciledPayoutResponse, []PercentagePayout, error) {
	fromKey, toKey, err := rangeKeys(filter)
	if err != nil {
		return nil, nil, err
	}

	docs, err := s.repo.FindInRange(ctx, fromKey, toKey)
	if err != nil {
		return nil, nil, mapRepositoryError(err)
	}

	type sortableRow struct {
		key string
		row ReconciledPayoutResponse
	}
	merged := []sortableRow{}

	// Pairs covered by an explicit hourly row must not be synthesized again
	// from time entries.
	seen := map[string]bool{}

	for _, doc := range docs {
		dateKey := calendar.Key(doc.PayoutDate)
		for _, ep := range doc.EmployeePayouts {
			row := ReconciledPayoutResponse{
				Date:           dateKey,
				EmployeeID:     ep.EmployeeID.String(),
				PayType:        ep.PayType,
				PayoutAmount:   ep.PayoutAmount,
				Source:         SourceRecorded,
				PercentageRate: ep.PercentageRate,
				HourlyRate:     ep.HourlyRate,
				Hours:          ep.Hours,
				FlatRate:       ep.FlatRate,
			}
			if ep.Employee != nil {
				row.EmployeeName = ep.Employee.FirstName + " " + ep.Employee.LastName
			}
			if ep.PayType == PayTypeHourly {
				seen[dateKey+"|"+row.EmployeeID] = true
			}

			merged = append(merged, sortableRow{
				key: reconcileSortKey(filter.SortBy, dateKey, doc.CreatedAt),
				row: row,
			})
		}
	}

	synthesized, err := s.synthesizeHourly(ctx, fromKey, toKey, seen)
	if err != nil {
		return nil, nil, err
	}
	for _, row := range synthesized {
		merged = append(merged, sortableRow{
			key: reconcileSortKey(filter.SortBy, row.Date, time.Time{}),
			row: row,
		})
	}

	if filter.EmployeeID != "" {
		filtered := merged[:0]
		for _, sr := range merged {
			if sr.row.EmployeeID == filter.EmployeeID {
				filtered = append(filtered, sr)
			}
		}
		merged = filtered
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].key != merged[j].key {
			return merged[i].key < merged[j].key
		}
		return merged[i].row.EmployeeName < merged[j].row.EmployeeName
	})

	rows := make([]ReconciledPayoutResponse, len(merged))
	for i, sr := range merged {
		rows[i] = sr.row
	}

	return rows, docs, nil
}

// synthesizeHourly builds transient payout rows for hourly employees whose
// approved entries in range never made it into an explicit payout document.
func (s *service) synthesizeHourly(ctx context.Context, fromKey, toKey string, seen map[string]bool) ([]ReconciledPayoutResponse, error) {
	hourlyEmployees, err := s.employees.FindByPayType(ctx, employee.PayTypeHourly)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	byID := map[string]*employee.Employee{}
	for i := range hourlyEmployees {
		emp := &hourlyEmployees[i]
		byID[emp.ID.String()] = emp
	}

	entries, err := s.entries.FindApprovedInRange(ctx, fromKey, toKey)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	type pairKey struct {
		date       string
		employeeID string
	}
	grouped := map[pairKey][]timeentry.TimeEntry{}
	order := []pairKey{}
	for _, entry := range entries {
		employeeID := entry.EmployeeID.String()
		if _, ok := byID[employeeID]; !ok {
			continue
		}
		key := pairKey{date: calendar.Key(entry.EntryDate), employeeID: employeeID}
		if seen[key.date+"|"+key.employeeID] {
			continue
		}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], entry)
	}

	rows := make([]ReconciledPayoutResponse, 0, len(order))
	for _, key := range order {
		emp := byID[key.employeeID]
		dayEntries := grouped[key]

		row := ReconciledPayoutResponse{
			Date:         key.date,
			EmployeeID:   key.employeeID,
			EmployeeName: emp.FullName(),
			PayType:      PayTypeHourly,
			Source:       SourceDerived,
		}

		if flat := flatRateTotal(dayEntries); flat > 0 {
			row.FlatRate = &flat
			row.PayoutAmount = flat
		} else if emp.HourlyRate != nil {
			hours := 0.0
			amount := 0.0
			for _, entry := range dayEntries {
				hours += entry.HoursWorked
				amount += *emp.HourlyRate*entry.RegularHours() +
					*emp.HourlyRate*entry.OvertimeHours*emp.OvertimeMultiplier
			}
			row.HourlyRate = emp.HourlyRate
			row.Hours = &hours
			row.PayoutAmount = amount
		} else {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// laborFromEntries totals pay and gas money across all approved entries for a
// day: flat rate when the entry carries one, hourly plus overtime otherwise.
func (s *service) laborFromEntries(ctx context.Context, entries []timeentry.TimeEntry, cache map[string]*employee.Employee) (labor, gas float64, err error) {
	for _, entry := range entries {
		if entry.GasMoney != nil {
			gas += *entry.GasMoney
		}

		if entry.FlatRate != nil && *entry.FlatRate > 0 {
			labor += *entry.FlatRate
			continue
		}

		employeeID := entry.EmployeeID.String()
		emp, ok := cache[employeeID]
		if !ok {
			emp, err = s.employees.FindByID(ctx, employeeID)
			if err != nil {
				// Orphaned entries contribute nothing rather than failing the
				// whole day.
				continue
			}
			cache[employeeID] = emp
		}
		if emp.HourlyRate == nil {
			continue
		}

		labor += *emp.HourlyRate*entry.RegularHours() +
			*emp.HourlyRate*entry.OvertimeHours*emp.OvertimeMultiplier
	}
	return labor, gas, nil
}

func (s *service) profitReferencePercent(ctx context.Context) float64 {
	if s.settings == nil {
		return defaultProfitReferencePercent
	}
	percent, err := s.settings.ProfitReferencePercent(ctx)
	if err != nil || percent <= 0 {
		return defaultProfitReferencePercent
	}
	return percent
}

func (s *service) mapToResponse(doc PercentagePayout, cache map[string]*employee.Employee) PayoutResponse {
	res := PayoutResponse{
		ID:                    doc.ID.String(),
		Date:                  calendar.Key(doc.PayoutDate),
		TotalRevenue:          doc.TotalRevenue,
		JobCosts:              doc.JobCosts,
		Materials:             doc.Materials,
		LaborCosts:            doc.LaborCosts,
		GasMoney:              doc.GasMoney,
		TotalCosts:            doc.TotalCosts,
		TotalProfit:           doc.TotalProfit,
		TotalPercentagePayout: doc.TotalPercentagePayout,
		ProfitPercentage:      doc.ProfitPercentage,
		CalculatedPayout:      doc.CalculatedPayout,
		EmployeePayouts:       make([]EmployeePayoutResponse, 0, len(doc.EmployeePayouts)),
	}

	for _, ep := range doc.EmployeePayouts {
		row := EmployeePayoutResponse{
			EmployeeID:     ep.EmployeeID.String(),
			PayType:        ep.PayType,
			PercentageRate: ep.PercentageRate,
			HourlyRate:     ep.HourlyRate,
			Hours:          ep.Hours,
			FlatRate:       ep.FlatRate,
			PayoutAmount:   ep.PayoutAmount,
		}
		if ep.Employee != nil {
			row.EmployeeName = ep.Employee.FirstName + " " + ep.Employee.LastName
		} else if cache != nil {
			if emp, ok := cache[row.EmployeeID]; ok {
				row.EmployeeName = emp.FullName()
			}
		}
		res.EmployeePayouts = append(res.EmployeePayouts, row)
	}

	return res
}

// hourlyRateAndHours resolves the rate and hours for an hourly payout request,
// falling back to the employee record for the rate and to the day's approved
// entries for the hours.
func hourlyRateAndHours(req EmployeePayoutRequest, emp *employee.Employee, dayEntries []timeentry.TimeEntry) (*float64, *float64) {
	rate := req.HourlyRate
	if rate == nil {
		rate = emp.HourlyRate
	}

	hours := req.Hours
	if hours == nil && len(dayEntries) > 0 {
		total := 0.0
		for _, entry := range dayEntries {
			total += entry.HoursWorked
		}
		hours = &total
	}

	return rate, hours
}

func flatRateTotal(entries []timeentry.TimeEntry) float64 {
	total := 0.0
	for _, entry := range entries {
		if entry.FlatRate != nil {
			total += *entry.FlatRate
		}
	}
	return total
}

func groupEntriesByEmployee(entries []timeentry.TimeEntry) map[string][]timeentry.TimeEntry {
	grouped := map[string][]timeentry.TimeEntry{}
	for _, entry := range entries {
		id := entry.EmployeeID.String()
		grouped[id] = append(grouped[id], entry)
	}
	return grouped
}

func rangeKeys(filter ListPayoutsFilter) (string, string, error) {
	if filter.From == "" || filter.To == "" {
		return "", "", payouterrors.ErrInvalidDateRange
	}
	from, err := calendar.ParseUTCDate(filter.From)
	if err != nil {
		return "", "", err
	}
	to, err := calendar.ParseUTCDate(filter.To)
	if err != nil {
		return "", "", err
	}
	if to.Before(from) {
		return "", "", payouterrors.ErrInvalidDateRange
	}
	return from.Key(), to.Key(), nil
}

// Fixed-width fractional seconds keep the keys lexicographically ordered;
// RFC3339Nano trims trailing zeros and would not.
const createdAtKeyLayout = "2006-01-02T15:04:05.000000000Z07:00"

func reconcileSortKey(sortBy, dateKey string, createdAt time.Time) string {
	if sortBy != "created_at" {
		return dateKey
	}
	if createdAt.IsZero() {
		// Synthesized rows carry no creation instant; anchor them to the
		// start of their day so both sources compare on the same format.
		return dateKey + "T00:00:00.000000000Z"
	}
	return createdAt.UTC().Format(createdAtKeyLayout)
}

func actorUUID(ctx context.Context) uuid.UUID {
	actor, err := uuid.Parse(contextutil.GetActorID(ctx))
	if err != nil {
		return uuid.Nil
	}
	return actor
}
