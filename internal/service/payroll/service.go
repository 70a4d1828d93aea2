package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aurora-group/payroll-backend-go/internal/config"
	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/domain/employee"
	"github.com/aurora-group/payroll-backend-go/internal/domain/holiday"
	"github.com/aurora-group/payroll-backend-go/internal/domain/leave"
	"github.com/aurora-group/payroll-backend-go/internal/domain/payroll"
	"github.com/aurora-group/payroll-backend-go/internal/domain/salary"
	attendancesvc "github.com/aurora-group/payroll-backend-go/internal/service/attendance"
	leavesvc "github.com/aurora-group/payroll-backend-go/internal/service/leave"
	salarysvc "github.com/aurora-group/payroll-backend-go/internal/service/salary"
	"github.com/shopspring/decimal"
)

// Transactor runs fn inside a database transaction. The transactional
// querier travels in the context fn receives, so repositories used inside fn
// participate in the same transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CycleServiceImpl struct {
	tx  Transactor
	cfg config.PayrollConfig

	leaveDefaults config.LeaveConfig

	payroll.CycleRepository
	employee.Repository
	attendanceRepo attendance.Repository
	holidayRepo    holiday.Repository
	leaveRepo      leave.Repository
	salaryRepo     salary.Repository

	// running tracks in-flight batches by college-period key. A second
	// Calculate for the same key fails fast with ErrCycleBusy; a PROCESSING
	// row in the database without an entry here is an interrupted batch and
	// gets resumed instead.
	mu      sync.Mutex
	running map[string]bool
}

func NewCycleService(
	tx Transactor,
	cfg config.PayrollConfig,
	leaveDefaults config.LeaveConfig,
	cycleRepo payroll.CycleRepository,
	employeeRepo employee.Repository,
	attendanceRepo attendance.Repository,
	holidayRepo holiday.Repository,
	leaveRepo leave.Repository,
	salaryRepo salary.Repository,
) payroll.CycleService {
	return &CycleServiceImpl{
		tx:              tx,
		cfg:             cfg,
		leaveDefaults:   leaveDefaults,
		CycleRepository: cycleRepo,
		Repository:      employeeRepo,
		attendanceRepo:  attendanceRepo,
		holidayRepo:     holidayRepo,
		leaveRepo:       leaveRepo,
		salaryRepo:      salaryRepo,
		running:         make(map[string]bool),
	}
}

func cycleKey(collegeID string, year, month int) string {
	return fmt.Sprintf("%s/%d-%02d", collegeID, year, month)
}

// Calculate implements payroll.CycleService.
func (s *CycleServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.CycleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CycleResponse{}, err
	}

	key := cycleKey(req.CollegeID, req.Year, req.Month)
	s.mu.Lock()
	if s.running[key] {
		s.mu.Unlock()
		return payroll.CycleResponse{}, payroll.ErrCycleBusy
	}
	s.running[key] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.running, key)
		s.mu.Unlock()
	}()

	period := attendance.NewPeriod(req.Year, req.Month)
	holidays, err := s.holidayRepo.ListForPeriod(ctx, req.CollegeID, period.Start(), period.End())
	if err != nil {
		return payroll.CycleResponse{}, fmt.Errorf("failed to list holidays for period: %w", err)
	}

	cycle, err := s.CycleRepository.GetCycleByPeriod(ctx, req.CollegeID, req.Year, req.Month)
	switch {
	case errors.Is(err, payroll.ErrCycleNotFound):
		workingDays := attendancesvc.WorkingDays(period, s.cfg.WeekendDays, holidays)
		if workingDays == 0 {
			return payroll.CycleResponse{}, payroll.ErrInvalidCycleConfig
		}
		cycle, err = s.CycleRepository.CreateCycle(ctx, payroll.Cycle{
			CollegeID:        req.CollegeID,
			Year:             req.Year,
			Month:            req.Month,
			TotalWorkingDays: workingDays,
			Status:           payroll.CycleStatusDraft,
		})
		if err != nil {
			return payroll.CycleResponse{}, err
		}
	case err != nil:
		return payroll.CycleResponse{}, fmt.Errorf("failed to get payroll cycle: %w", err)
	}

	if cycle.Status == payroll.CycleStatusLocked {
		return payroll.CycleResponse{}, payroll.ErrCycleLocked
	}

	// Re-snapshot working days while still DRAFT; the holiday calendar may
	// have changed since creation. From PROCESSING on, the snapshot is fixed.
	if cycle.Status == payroll.CycleStatusDraft {
		workingDays := attendancesvc.WorkingDays(period, s.cfg.WeekendDays, holidays)
		if workingDays == 0 {
			return payroll.CycleResponse{}, payroll.ErrInvalidCycleConfig
		}
		if workingDays != cycle.TotalWorkingDays {
			if err := s.CycleRepository.SetCycleWorkingDays(ctx, cycle.ID, workingDays); err != nil {
				return payroll.CycleResponse{}, fmt.Errorf("failed to snapshot working days: %w", err)
			}
			cycle.TotalWorkingDays = workingDays
		}
	}

	// PROCESSING is in allowedFrom to let an interrupted batch resume; a
	// live concurrent run is already excluded by the in-process guard.
	ok, err := s.CycleRepository.UpdateCycleStatus(ctx, cycle.ID, payroll.CycleStatusProcessing,
		payroll.CycleStatusDraft, payroll.CycleStatusCompleted, payroll.CycleStatusProcessing)
	if err != nil {
		return payroll.CycleResponse{}, fmt.Errorf("failed to claim payroll cycle: %w", err)
	}
	if !ok {
		return payroll.CycleResponse{}, payroll.ErrCycleLocked
	}

	failures, err := s.runBatch(ctx, cycle, holidays)
	if err != nil {
		// The cycle stays PROCESSING: the working-day snapshot is fixed from
		// here on, and the claim above accepts PROCESSING so a retry resumes
		// the interrupted batch.
		slog.Error("payroll batch interrupted",
			slog.String("cycle_id", cycle.ID), slog.Any("error", err))
		return payroll.CycleResponse{}, err
	}

	if err := s.CycleRepository.SetCycleFailures(ctx, cycle.ID, failures); err != nil {
		return payroll.CycleResponse{}, fmt.Errorf("failed to store failure manifest: %w", err)
	}
	if _, err := s.CycleRepository.UpdateCycleStatus(ctx, cycle.ID, payroll.CycleStatusCompleted,
		payroll.CycleStatusProcessing); err != nil {
		return payroll.CycleResponse{}, fmt.Errorf("failed to complete payroll cycle: %w", err)
	}

	cycle, err = s.CycleRepository.GetCycleByID(ctx, cycle.ID)
	if err != nil {
		return payroll.CycleResponse{}, fmt.Errorf("failed to reload payroll cycle: %w", err)
	}

	slog.Info("payroll cycle calculated",
		slog.String("cycle_id", cycle.ID),
		slog.String("college_id", cycle.CollegeID),
		slog.Int("year", cycle.Year),
		slog.Int("month", cycle.Month),
		slog.Int("failures", len(failures)))

	return payroll.NewCycleResponse(cycle), nil
}

// runBatch fans the per-employee calculation out over a fixed-size worker
// pool and collects the failure manifest. Only setup errors (employee list,
// leave policy) are returned; per-employee errors become manifest rows.
func (s *CycleServiceImpl) runBatch(ctx context.Context, cycle payroll.Cycle, holidays []holiday.Holiday) ([]payroll.CycleFailure, error) {
	employees, err := s.Repository.ListActiveByCollege(ctx, cycle.CollegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	policy, err := s.leaveRepo.GetPolicyForCollege(ctx, cycle.CollegeID)
	if err != nil {
		if !errors.Is(err, leave.ErrPolicyNotFound) {
			return nil, fmt.Errorf("failed to get leave policy: %w", err)
		}
		policy = leave.Policy{
			CollegeID:         cycle.CollegeID,
			PaidLeavesPerYear: s.leaveDefaults.DefaultPaidLeavesPerYear,
			MaxCarryForward:   s.leaveDefaults.DefaultMaxCarryForward,
			CompLeaveEnabled:  true,
		}
	}

	defaults, err := s.salaryRepo.ListDefaultComponents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list default salary components: %w", err)
	}

	workers := s.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan employee.Employee)
	results := make(chan *payroll.CycleFailure, len(employees))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for emp := range jobs {
				if err := s.processEmployee(ctx, cycle, emp, policy, defaults, holidays); err != nil {
					results <- &payroll.CycleFailure{
						EmployeeID:   emp.ID,
						EmployeeCode: emp.EmployeeCode,
						Reason:       err.Error(),
					}
				} else {
					results <- nil
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, emp := range employees {
			select {
			case jobs <- emp:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var failures []payroll.CycleFailure
	for f := range results {
		if f != nil {
			failures = append(failures, *f)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deterministic manifest order regardless of worker interleaving.
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].EmployeeCode < failures[j].EmployeeCode
	})

	return failures, nil
}

// processEmployee computes and persists one employee's entry. The leave
// settlement and entry replacement commit atomically: a prior entry's staged
// leave usage is reversed first, so re-running the cycle never
// double-consumes the ledger.
func (s *CycleServiceImpl) processEmployee(
	ctx context.Context,
	cycle payroll.Cycle,
	emp employee.Employee,
	policy leave.Policy,
	defaults []salary.Component,
	holidays []holiday.Holiday,
) error {
	period := attendance.NewPeriod(cycle.Year, cycle.Month)

	records, err := s.attendanceRepo.GetRecordsForPeriod(ctx, emp.ID, period.Start(), period.End())
	if err != nil {
		return fmt.Errorf("failed to get attendance records: %w", err)
	}
	counts := attendancesvc.Reconcile(period, s.cfg.WeekendDays, holidays, records)

	rows, err := s.salaryRepo.GetStructuresForDate(ctx, emp.ID, period.End())
	if err != nil {
		return fmt.Errorf("failed to get salary structures: %w", err)
	}
	components, err := salarysvc.Resolve(emp.ID, period.End(), rows, defaults)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		prior, err := s.CycleRepository.GetEntry(txCtx, cycle.ID, emp.ID)
		switch {
		case err == nil:
			reversal := leave.Usage{
				PaidUsed:   prior.PaidLeavesUsed.Neg(),
				CompUsed:   prior.CompLeavesUsed.Neg(),
				CompEarned: prior.WeekendWorkDays.Neg(),
			}
			if err := s.leaveRepo.ApplyUsageDelta(txCtx, emp.ID, cycle.Year, reversal); err != nil {
				return fmt.Errorf("failed to reverse prior leave usage: %w", err)
			}
		case !errors.Is(err, payroll.ErrEntryNotFound):
			return fmt.Errorf("failed to get prior entry: %w", err)
		}

		balance, err := s.ensureBalance(txCtx, emp.ID, cycle.Year, policy)
		if err != nil {
			return err
		}
		// The waterfall clips, so a negative availability here means the
		// ledger was corrupted by an external write. Surface it rather than
		// settle against it.
		if balance.Overdrawn() {
			return fmt.Errorf("%w: employee %s year %d", leave.ErrOverdraw, emp.EmployeeCode, cycle.Year)
		}

		// Weekend work credits comp leave before settlement, so days worked
		// this month can cover leave taken this month.
		balance.CompLeavesEarned = balance.CompLeavesEarned.Add(counts.WeekendWork)
		alloc := leavesvc.Allocate(counts.Leave, balance, policy.CompLeaveEnabled)

		entry := BuildEntry(BuildInput{
			CycleID:           cycle.ID,
			EmployeeID:        emp.ID,
			TotalWorkingDays:  cycle.TotalWorkingDays,
			Counts:            counts,
			Allocation:        alloc,
			Components:        components,
			ProrateDeductions: s.cfg.ProrateDeductions,
		})

		if _, err := s.CycleRepository.ReplaceEntry(txCtx, entry); err != nil {
			return fmt.Errorf("failed to replace entry: %w", err)
		}

		usage := leave.Usage{
			PaidUsed:   alloc.Paid,
			CompUsed:   alloc.Comp,
			CompEarned: counts.WeekendWork,
		}
		if err := s.leaveRepo.ApplyUsageDelta(txCtx, emp.ID, cycle.Year, usage); err != nil {
			return fmt.Errorf("failed to apply leave usage: %w", err)
		}

		return nil
	})
}

// ensureBalance fetches the employee's ledger row for the year, seeding it
// from the policy entitlement on first touch.
func (s *CycleServiceImpl) ensureBalance(ctx context.Context, employeeID string, year int, policy leave.Policy) (leave.Balance, error) {
	balance, err := s.leaveRepo.GetBalance(ctx, employeeID, year)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	balance, err = s.leaveRepo.CreateBalance(ctx, leave.Balance{
		EmployeeID:      employeeID,
		Year:            year,
		PaidLeavesTotal: decimal.NewFromInt(int64(policy.PaidLeavesPerYear)),
	})
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return balance, nil
}

// Lock implements payroll.CycleService.
func (s *CycleServiceImpl) Lock(ctx context.Context, cycleID string, req payroll.LockRequest) (payroll.CycleResponse, error) {
	cycle, err := s.CycleRepository.GetCycleByID(ctx, cycleID)
	if err != nil {
		return payroll.CycleResponse{}, err
	}

	if cycle.Status == payroll.CycleStatusLocked {
		return payroll.CycleResponse{}, payroll.ErrCycleLocked
	}
	if cycle.Status != payroll.CycleStatusCompleted {
		return payroll.CycleResponse{}, payroll.ErrCycleNotCompleted
	}
	if len(cycle.Failures) > 0 && !req.AcknowledgeFailures {
		return payroll.CycleResponse{}, payroll.ErrCycleHasFailures
	}

	locked, err := s.CycleRepository.LockCycle(ctx, cycleID)
	if err != nil {
		return payroll.CycleResponse{}, fmt.Errorf("failed to lock payroll cycle: %w", err)
	}

	slog.Info("payroll cycle locked",
		slog.String("cycle_id", locked.ID),
		slog.Int("acknowledged_failures", len(locked.Failures)))

	return payroll.NewCycleResponse(locked), nil
}

// GetCycle implements payroll.CycleService.
func (s *CycleServiceImpl) GetCycle(ctx context.Context, id string) (payroll.CycleResponse, error) {
	cycle, err := s.CycleRepository.GetCycleByID(ctx, id)
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	return payroll.NewCycleResponse(cycle), nil
}

// ListCycles implements payroll.CycleService.
func (s *CycleServiceImpl) ListCycles(ctx context.Context, filter payroll.CycleFilter) ([]payroll.CycleResponse, int64, error) {
	cycles, total, err := s.CycleRepository.ListCycles(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll cycles: %w", err)
	}
	responses := make([]payroll.CycleResponse, 0, len(cycles))
	for _, c := range cycles {
		responses = append(responses, payroll.NewCycleResponse(c))
	}
	return responses, total, nil
}

// ListEntries implements payroll.CycleService.
func (s *CycleServiceImpl) ListEntries(ctx context.Context, cycleID string) ([]payroll.EntryResponse, error) {
	if _, err := s.CycleRepository.GetCycleByID(ctx, cycleID); err != nil {
		return nil, err
	}
	entries, err := s.CycleRepository.ListEntries(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	responses := make([]payroll.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, payroll.NewEntryResponse(e))
	}
	return responses, nil
}

// GetEntry implements payroll.CycleService.
func (s *CycleServiceImpl) GetEntry(ctx context.Context, id string) (payroll.EntryResponse, error) {
	entry, err := s.CycleRepository.GetEntryByID(ctx, id)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	return payroll.NewEntryResponse(entry), nil
}

// GetSummary implements payroll.CycleService.
func (s *CycleServiceImpl) GetSummary(ctx context.Context, collegeID string, year, month int) (payroll.Summary, error) {
	summary, err := s.CycleRepository.GetSummary(ctx, collegeID, year, month)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}
	return summary, nil
}
