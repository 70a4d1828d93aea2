package payroll

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/config"
	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/domain/employee"
	"github.com/aurora-group/payroll-backend-go/internal/domain/holiday"
	"github.com/aurora-group/payroll-backend-go/internal/domain/leave"
	"github.com/aurora-group/payroll-backend-go/internal/domain/payroll"
	"github.com/aurora-group/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCycleRepo struct {
	mu      sync.Mutex
	seq     int
	cycles  map[string]*payroll.Cycle
	entries map[string]payroll.Entry
}

func newFakeCycleRepo() *fakeCycleRepo {
	return &fakeCycleRepo{
		cycles:  make(map[string]*payroll.Cycle),
		entries: make(map[string]payroll.Entry),
	}
}

func entryKey(cycleID, employeeID string) string { return cycleID + "/" + employeeID }

func (r *fakeCycleRepo) CreateCycle(_ context.Context, c payroll.Cycle) (payroll.Cycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.cycles {
		if existing.CollegeID == c.CollegeID && existing.Year == c.Year && existing.Month == c.Month {
			return payroll.Cycle{}, payroll.ErrDuplicateCycle
		}
	}
	r.seq++
	c.ID = fmt.Sprintf("cycle-%d", r.seq)
	c.CreatedAt = time.Now()
	r.cycles[c.ID] = &c
	return c, nil
}

func (r *fakeCycleRepo) GetCycleByID(_ context.Context, id string) (payroll.Cycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cycles[id]
	if !ok {
		return payroll.Cycle{}, payroll.ErrCycleNotFound
	}
	return *c, nil
}

func (r *fakeCycleRepo) GetCycleByPeriod(_ context.Context, collegeID string, year, month int) (payroll.Cycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cycles {
		if c.CollegeID == collegeID && c.Year == year && c.Month == month {
			return *c, nil
		}
	}
	return payroll.Cycle{}, payroll.ErrCycleNotFound
}

func (r *fakeCycleRepo) ListCycles(_ context.Context, _ payroll.CycleFilter) ([]payroll.Cycle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]payroll.Cycle, 0, len(r.cycles))
	for _, c := range r.cycles {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCycleRepo) UpdateCycleStatus(_ context.Context, id string, to payroll.CycleStatus, allowedFrom ...payroll.CycleStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cycles[id]
	if !ok {
		return false, payroll.ErrCycleNotFound
	}
	for _, from := range allowedFrom {
		if c.Status == from {
			c.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCycleRepo) SetCycleWorkingDays(_ context.Context, id string, workingDays int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cycles[id]
	if !ok {
		return payroll.ErrCycleNotFound
	}
	c.TotalWorkingDays = workingDays
	return nil
}

func (r *fakeCycleRepo) SetCycleFailures(_ context.Context, id string, failures []payroll.CycleFailure) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cycles[id]
	if !ok {
		return payroll.ErrCycleNotFound
	}
	c.Failures = failures
	return nil
}

func (r *fakeCycleRepo) LockCycle(_ context.Context, id string) (payroll.Cycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cycles[id]
	if !ok {
		return payroll.Cycle{}, payroll.ErrCycleNotFound
	}
	if c.Status != payroll.CycleStatusCompleted {
		return payroll.Cycle{}, payroll.ErrCycleNotCompleted
	}
	now := time.Now()
	c.Status = payroll.CycleStatusLocked
	c.LockedAt = &now
	return *c, nil
}

func (r *fakeCycleRepo) GetEntry(_ context.Context, cycleID, employeeID string) (payroll.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryKey(cycleID, employeeID)]
	if !ok {
		return payroll.Entry{}, payroll.ErrEntryNotFound
	}
	return e, nil
}

func (r *fakeCycleRepo) GetEntryByID(_ context.Context, id string) (payroll.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return payroll.Entry{}, payroll.ErrEntryNotFound
}

func (r *fakeCycleRepo) ListEntries(_ context.Context, cycleID string) ([]payroll.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]payroll.Entry, 0)
	for _, e := range r.entries {
		if e.CycleID == cycleID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeCycleRepo) ReplaceEntry(_ context.Context, entry payroll.Entry) (payroll.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	entry.ID = fmt.Sprintf("entry-%d", r.seq)
	r.entries[entryKey(entry.CycleID, entry.EmployeeID)] = entry
	return entry, nil
}

func (r *fakeCycleRepo) CreatePayslip(_ context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	return slip, nil
}

func (r *fakeCycleRepo) GetPayslipByEntry(_ context.Context, _ string) (payroll.Payslip, error) {
	return payroll.Payslip{}, payroll.ErrPayslipNotFound
}

func (r *fakeCycleRepo) DeletePayslip(_ context.Context, _ string) error { return nil }

func (r *fakeCycleRepo) ListPayslips(_ context.Context, _ string) ([]payroll.Payslip, error) {
	return nil, nil
}

func (r *fakeCycleRepo) GetSummary(_ context.Context, _ string, _, _ int) (payroll.Summary, error) {
	return payroll.Summary{}, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
	// onList, when set, is called inside ListActiveByCollege. Used to hold a
	// batch mid-flight.
	onList func()
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ employee.Filter) ([]employee.Employee, int64, error) {
	return r.employees, int64(len(r.employees)), nil
}

func (r *fakeEmployeeRepo) ListActiveByCollege(_ context.Context, _ string) ([]employee.Employee, error) {
	if r.onList != nil {
		r.onList()
	}
	return r.employees, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, _ employee.UpdateRequest) error { return nil }

func (r *fakeEmployeeRepo) Deactivate(_ context.Context, _ string) error { return nil }

type fakeAttendanceRepo struct {
	records map[string][]attendance.Record
}

func (r *fakeAttendanceRepo) GetRecordsForPeriod(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	out := make([]attendance.Record, 0)
	for _, rec := range r.records[employeeID] {
		if !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) GetRecordsForCollege(_ context.Context, _ string, _, _ time.Time) ([]attendance.Record, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) UpsertRecord(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}

func (r *fakeAttendanceRepo) UpsertRecords(_ context.Context, recs []attendance.Record) (int, error) {
	return len(recs), nil
}

func (r *fakeAttendanceRepo) CreateUpload(_ context.Context, u attendance.Upload) (attendance.Upload, error) {
	return u, nil
}

func (r *fakeAttendanceRepo) GetUploadByID(_ context.Context, _ string) (attendance.Upload, error) {
	return attendance.Upload{}, attendance.ErrUploadNotFound
}

func (r *fakeAttendanceRepo) ListUploads(_ context.Context, _ string) ([]attendance.Upload, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) UpdateUploadStatus(_ context.Context, _ string, _ attendance.UploadStatus, _ int, _ *string) error {
	return nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (r *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	return h, nil
}

func (r *fakeHolidayRepo) GetByID(_ context.Context, _ string) (holiday.Holiday, error) {
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (r *fakeHolidayRepo) ListForPeriod(_ context.Context, _ string, from, to time.Time) ([]holiday.Holiday, error) {
	out := make([]holiday.Holiday, 0)
	for _, h := range r.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeHolidayRepo) ListForCollege(_ context.Context, _ string, _ int) ([]holiday.Holiday, error) {
	return r.holidays, nil
}

func (r *fakeHolidayRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeLeaveRepo struct {
	mu       sync.Mutex
	seq      int
	policies map[string]leave.Policy
	balances map[string]*leave.Balance
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		policies: make(map[string]leave.Policy),
		balances: make(map[string]*leave.Balance),
	}
}

func balanceKey(employeeID string, year int) string {
	return fmt.Sprintf("%s/%d", employeeID, year)
}

func (r *fakeLeaveRepo) CreatePolicy(_ context.Context, p leave.Policy) (leave.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[p.CollegeID] = p
	return p, nil
}

func (r *fakeLeaveRepo) GetPolicyForCollege(_ context.Context, collegeID string) (leave.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.policies[collegeID]
	if !ok {
		return leave.Policy{}, leave.ErrPolicyNotFound
	}
	return p, nil
}

func (r *fakeLeaveRepo) ListPolicies(_ context.Context, _ string) ([]leave.Policy, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) GetBalance(_ context.Context, employeeID string, year int) (leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey(employeeID, year)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return *b, nil
}

func (r *fakeLeaveRepo) CreateBalance(_ context.Context, b leave.Balance) (leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := balanceKey(b.EmployeeID, b.Year)
	if _, exists := r.balances[key]; exists {
		return leave.Balance{}, leave.ErrBalanceExists
	}
	r.seq++
	b.ID = fmt.Sprintf("balance-%d", r.seq)
	r.balances[key] = &b
	return b, nil
}

func (r *fakeLeaveRepo) ApplyUsageDelta(_ context.Context, employeeID string, year int, delta leave.Usage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey(employeeID, year)]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	b.PaidLeavesUsed = b.PaidLeavesUsed.Add(delta.PaidUsed)
	b.CompLeavesUsed = b.CompLeavesUsed.Add(delta.CompUsed)
	b.CompLeavesEarned = b.CompLeavesEarned.Add(delta.CompEarned)
	return nil
}

func (r *fakeLeaveRepo) ListBalancesForYear(_ context.Context, _ string, _ int) ([]leave.Balance, error) {
	return nil, nil
}

type fakeSalaryRepo struct {
	structures map[string][]salary.Structure
	defaults   []salary.Component
}

func (r *fakeSalaryRepo) CreateComponent(_ context.Context, c salary.Component) (salary.Component, error) {
	return c, nil
}

func (r *fakeSalaryRepo) GetComponentByID(_ context.Context, _ string) (salary.Component, error) {
	return salary.Component{}, salary.ErrComponentNotFound
}

func (r *fakeSalaryRepo) ListComponents(_ context.Context) ([]salary.Component, error) {
	return r.defaults, nil
}

func (r *fakeSalaryRepo) ListDefaultComponents(_ context.Context) ([]salary.Component, error) {
	return r.defaults, nil
}

func (r *fakeSalaryRepo) CreateStructure(_ context.Context, s salary.Structure) (salary.Structure, error) {
	return s, nil
}

func (r *fakeSalaryRepo) GetStructuresForDate(_ context.Context, employeeID string, date time.Time) ([]salary.Structure, error) {
	out := make([]salary.Structure, 0)
	for _, row := range r.structures[employeeID] {
		if row.ActiveOn(date) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeSalaryRepo) ListStructures(_ context.Context, employeeID string) ([]salary.Structure, error) {
	return r.structures[employeeID], nil
}

func (r *fakeSalaryRepo) CloseStructure(_ context.Context, _ string, _ time.Time) error { return nil }

// ===== TEST HARNESS =====

type harness struct {
	service    payroll.CycleService
	cycleRepo  *fakeCycleRepo
	empRepo    *fakeEmployeeRepo
	attRepo    *fakeAttendanceRepo
	holRepo    *fakeHolidayRepo
	leaveRepo  *fakeLeaveRepo
	salaryRepo *fakeSalaryRepo
}

func newHarness(cfg config.PayrollConfig) *harness {
	h := &harness{
		cycleRepo:  newFakeCycleRepo(),
		empRepo:    &fakeEmployeeRepo{},
		attRepo:    &fakeAttendanceRepo{records: make(map[string][]attendance.Record)},
		holRepo:    &fakeHolidayRepo{},
		leaveRepo:  newFakeLeaveRepo(),
		salaryRepo: &fakeSalaryRepo{structures: make(map[string][]salary.Structure)},
	}
	if cfg.Workers == 0 {
		cfg.Workers = 2
	}
	if cfg.WeekendDays == nil {
		cfg.WeekendDays = []time.Weekday{time.Saturday, time.Sunday}
	}
	h.service = NewCycleService(
		passthroughTx{},
		cfg,
		config.LeaveConfig{DefaultPaidLeavesPerYear: 12, DefaultMaxCarryForward: 5},
		h.cycleRepo,
		h.empRepo,
		h.attRepo,
		h.holRepo,
		h.leaveRepo,
		h.salaryRepo,
	)
	return h
}

func (h *harness) addEmployee(id, code string) {
	h.empRepo.employees = append(h.empRepo.employees, employee.Employee{
		ID:           id,
		EmployeeCode: code,
		CollegeID:    "college-1",
		IsActive:     true,
	})
}

func (h *harness) addStructure(employeeID, componentID, name string, ctype salary.ComponentType, amount string) {
	ctypeCopy := ctype
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h.salaryRepo.structures[employeeID] = append(h.salaryRepo.structures[employeeID], salary.Structure{
		ID:            fmt.Sprintf("row-%s-%s", employeeID, componentID),
		EmployeeID:    employeeID,
		ComponentID:   componentID,
		Amount:        decimal.RequireFromString(amount),
		EffectiveFrom: from,
		ComponentName: &name,
		ComponentType: &ctypeCopy,
	})
}

func (h *harness) addRecords(employeeID string, year int, month time.Month, statuses map[int]attendance.Status) {
	for d, status := range statuses {
		h.attRepo.records[employeeID] = append(h.attRepo.records[employeeID], attendance.Record{
			EmployeeID: employeeID,
			Date:       time.Date(year, month, d, 0, 0, 0, 0, time.UTC),
			Status:     status,
		})
	}
}

// markAllPresent records PRESENT for every weekday of the month.
func (h *harness) markAllPresent(employeeID string, year int, month time.Month) {
	period := attendance.NewPeriod(year, int(month))
	for _, d := range period.Days() {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		h.attRepo.records[employeeID] = append(h.attRepo.records[employeeID], attendance.Record{
			EmployeeID: employeeID,
			Date:       d,
			Status:     attendance.StatusPresent,
		})
	}
}

var calcReq = payroll.CalculateRequest{CollegeID: "college-1", Year: 2025, Month: 1}

// ===== TESTS =====

func TestCalculate_CreatesCycleAndEntries(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})
	h.addEmployee("emp-1", "E001")
	h.addStructure("emp-1", "basic", "Basic", salary.ComponentTypeEarning, "26000")
	h.markAllPresent("emp-1", 2025, time.January)

	resp, err := h.service.Calculate(context.Background(), calcReq)
	require.NoError(t, err)

	assert.Equal(t, payroll.CycleStatusCompleted, resp.Status)
	assert.Equal(t, 23, resp.TotalWorkingDays)
	assert.Empty(t, resp.Failures)

	entry, err := h.cycleRepo.GetEntry(context.Background(), resp.ID, "emp-1")
	require.NoError(t, err)
	assert.True(t, entry.GrossEarnings.Equal(decimal.RequireFromString("26000")), "got %s", entry.GrossEarnings)
	assert.True(t, entry.NetPay.Equal(decimal.RequireFromString("26000")))
}

func TestCalculate_RecalculationIsIdempotent(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})
	h.addEmployee("emp-1", "E001")
	h.addStructure("emp-1", "basic", "Basic", salary.ComponentTypeEarning, "23000")
	h.markAllPresent("emp-1", 2025, time.January)
	// Swap the last three weekdays of the month for leave.
	h.attRepo.records["emp-1"] = h.attRepo.records["emp-1"][:20]
	h.addRecords("emp-1", 2025, time.January, map[int]attendance.Status{
		29: attendance.StatusLeave,
		30: attendance.StatusLeave,
		31: attendance.StatusLeave,
	})

	first, err := h.service.Calculate(context.Background(), calcReq)
	require.NoError(t, err)

	balanceAfterFirst, err := h.leaveRepo.GetBalance(context.Background(), "emp-1", 2025)
	require.NoError(t, err)
	assert.True(t, balanceAfterFirst.PaidLeavesUsed.Equal(decimal.RequireFromString("3")),
		"got %s", balanceAfterFirst.PaidLeavesUsed)

	second, err := h.service.Calculate(context.Background(), calcReq)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "re-run must reuse the cycle row")

	balanceAfterSecond, err := h.leaveRepo.GetBalance(context.Background(), "emp-1", 2025)
	require.NoError(t, err)
	assert.True(t, balanceAfterSecond.PaidLeavesUsed.Equal(balanceAfterFirst.PaidLeavesUsed),
		"re-run must not double-consume the ledger: %s vs %s",
		balanceAfterSecond.PaidLeavesUsed, balanceAfterFirst.PaidLeavesUsed)

	entries, err := h.cycleRepo.ListEntries(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "re-run must replace, not duplicate, the entry")
}

func TestCalculate_WeekendWorkEarnsCompLeave(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})
	h.addEmployee("emp-1", "E001")
	h.addStructure("emp-1", "basic", "Basic", salary.ComponentTypeEarning, "23000")
	h.markAllPresent("emp-1", 2025, time.January)
	// Exhaust paid entitlement so the leave day can only be covered by comp.
	_, err := h.leaveRepo.CreateBalance(context.Background(), leave.Balance{
		EmployeeID:      "emp-1",
		Year:            2025,
		PaidLeavesTotal: decimal.NewFromInt(12),
		PaidLeavesUsed:  decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	// Work Saturday the 4th, take leave Monday the 6th.
	h.attRepo.records["emp-1"] = h.attRepo.records["emp-1"][:0]
	h.markAllPresent("emp-1", 2025, time.January)
	for i, rec := range h.attRepo.records["emp-1"] {
		if rec.Date.Day() == 6 {
			h.attRepo.records["emp-1"][i].Status = attendance.StatusLeave
		}
	}
	h.addRecords("emp-1", 2025, time.January, map[int]attendance.Status{
		4: attendance.StatusWeekendWork,
	})

	resp, err := h.service.Calculate(context.Background(), calcReq)
	require.NoError(t, err)
	require.Empty(t, resp.Failures)

	entry, err := h.cycleRepo.GetEntry(context.Background(), resp.ID, "emp-1")
	require.NoError(t, err)
	assert.True(t, entry.CompLeavesUsed.Equal(decimal.NewFromInt(1)),
		"weekend work earned in the same month must cover the leave, got %s", entry.CompLeavesUsed)
	assert.True(t, entry.UnpaidLeaves.IsZero(), "got %s", entry.UnpaidLeaves)
	assert.True(t, entry.GrossEarnings.Equal(decimal.RequireFromString("23000")))
}

func TestCalculate_OverdrawnLedgerGoesToManifest(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})
	h.addEmployee("emp-1", "E001")
	h.addStructure("emp-1", "basic", "Basic", salary.ComponentTypeEarning, "26000")
	h.markAllPresent("emp-1", 2025, time.January)
	// Corrupt the ledger: used exceeds entitlement.
	_, err := h.leaveRepo.CreateBalance(context.Background(), leave.Balance{
		EmployeeID:      "emp-1",
		Year:            2025,
		PaidLeavesTotal: decimal.NewFromInt(12),
		PaidLeavesUsed:  decimal.NewFromInt(15),
	})
	require.NoError(t, err)

	resp, err := h.service.Calculate(context.Background(), calcReq)
	require.NoError(t, err)

	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "E001", resp.Failures[0].EmployeeCode)
	assert.Contains(t, resp.Failures[0].Reason, "overdrawn")

	entries, listErr := h.cycleRepo.ListEntries(context.Background(), resp.ID)
	require.NoError(t, listErr)
	assert.Empty(t, entries, "no entry is written against a corrupted ledger")
}

func TestCalculate_PerEmployeeFailureGoesToManifest(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})
	h.addEmployee("emp-2", "E002")
	h.addEmployee("emp-1", "E001")
	h.addStructure("emp-1", "basic", "Basic", salary.ComponentTypeEarning, "26000")
	h.markAllPresent("emp-1", 2025, time.January)
	h.markAllPresent("emp-2", 2025, time.January)
	// emp-2 has no structure row for the mandatory component.
	h.salaryRepo.defaults = []salary.Component{
		{ID: "basic", Name: "Basic", Type: salary.ComponentTypeEarning, IsDefault: true},
	}

	resp, err := h.service.Calculate(context.Background(), calcReq)
	require.NoError(t, err, "one bad employee must not abort the batch")

	assert.Equal(t, payroll.CycleStatusCompleted, resp.Status)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "emp-2", resp.Failures[0].EmployeeID)
	assert.Equal(t, "E002", resp.Failures[0].EmployeeCode)
	assert.Contains(t, resp.Failures[0].Reason, "Basic")

	entries, err := h.cycleRepo.ListEntries(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "the healthy employee still gets an entry")
}

func TestCalculate_ConcurrentRunRejected(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})
	h.addEmployee("emp-1", "E001")
	h.addStructure("emp-1", "basic", "Basic", salary.ComponentTypeEarning, "26000")
	h.markAllPresent("emp-1", 2025, time.January)

	entered := make(chan struct{})
	release := make(chan struct{})
	h.empRepo.onList = func() {
		close(entered)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := h.service.Calculate(context.Background(), calcReq)
		done <- err
	}()

	<-entered
	_, err := h.service.Calculate(context.Background(), calcReq)
	assert.ErrorIs(t, err, payroll.ErrCycleBusy)

	h.empRepo.onList = nil
	close(release)
	require.NoError(t, <-done)
}

func TestCalculate_HolidayReducesWorkingDays(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})
	h.addEmployee("emp-1", "E001")
	h.addStructure("emp-1", "basic", "Basic", salary.ComponentTypeEarning, "26000")
	h.markAllPresent("emp-1", 2025, time.January)
	h.holRepo.holidays = []holiday.Holiday{
		{Date: time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC), Name: "Makar Sankranti"},
	}

	resp, err := h.service.Calculate(context.Background(), calcReq)
	require.NoError(t, err)

	assert.Equal(t, 22, resp.TotalWorkingDays)

	entry, err := h.cycleRepo.GetEntry(context.Background(), resp.ID, "emp-1")
	require.NoError(t, err)
	assert.True(t, entry.GrossEarnings.Equal(decimal.RequireFromString("26000")),
		"a calendar holiday must not dock pay, got %s", entry.GrossEarnings)
}

func TestCalculate_InterruptedRunStaysProcessing(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})
	h.addEmployee("emp-1", "E001")
	h.addStructure("emp-1", "basic", "Basic", salary.ComponentTypeEarning, "26000")
	h.markAllPresent("emp-1", 2025, time.January)

	ctx, cancel := context.WithCancel(context.Background())
	h.empRepo.onList = func() { cancel() }

	_, err := h.service.Calculate(ctx, calcReq)
	require.ErrorIs(t, err, context.Canceled)

	cycle, err := h.cycleRepo.GetCycleByPeriod(context.Background(), "college-1", 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, payroll.CycleStatusProcessing, cycle.Status,
		"an interrupted batch keeps its claim so a retry resumes it")
	assert.Equal(t, 23, cycle.TotalWorkingDays)

	// A calendar edit after the interruption must not move the snapshot:
	// working days are fixed from the moment processing begins.
	h.holRepo.holidays = []holiday.Holiday{
		{Date: time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC), Name: "Makar Sankranti"},
	}
	h.empRepo.onList = nil

	resp, err := h.service.Calculate(context.Background(), calcReq)
	require.NoError(t, err)
	assert.Equal(t, payroll.CycleStatusCompleted, resp.Status)
	assert.Equal(t, 23, resp.TotalWorkingDays)
}

func TestCalculate_LockedCycleRejected(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})
	h.addEmployee("emp-1", "E001")
	h.addStructure("emp-1", "basic", "Basic", salary.ComponentTypeEarning, "26000")
	h.markAllPresent("emp-1", 2025, time.January)

	resp, err := h.service.Calculate(context.Background(), calcReq)
	require.NoError(t, err)
	_, err = h.service.Lock(context.Background(), resp.ID, payroll.LockRequest{})
	require.NoError(t, err)

	_, err = h.service.Calculate(context.Background(), calcReq)
	assert.ErrorIs(t, err, payroll.ErrCycleLocked)
}

func TestCalculate_ZeroWorkingDaysRejected(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{
		WeekendDays: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
	})
	h.addEmployee("emp-1", "E001")

	_, err := h.service.Calculate(context.Background(), calcReq)
	assert.ErrorIs(t, err, payroll.ErrInvalidCycleConfig)
}

func TestLock_Gating(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})
	h.addEmployee("emp-1", "E001")
	h.markAllPresent("emp-1", 2025, time.January)
	// No structures and a mandatory default: the lone employee fails.
	h.salaryRepo.defaults = []salary.Component{
		{ID: "basic", Name: "Basic", Type: salary.ComponentTypeEarning, IsDefault: true},
	}

	resp, err := h.service.Calculate(context.Background(), calcReq)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Failures)

	_, err = h.service.Lock(context.Background(), resp.ID, payroll.LockRequest{})
	assert.ErrorIs(t, err, payroll.ErrCycleHasFailures)

	locked, err := h.service.Lock(context.Background(), resp.ID, payroll.LockRequest{AcknowledgeFailures: true})
	require.NoError(t, err)
	assert.Equal(t, payroll.CycleStatusLocked, locked.Status)
	assert.NotNil(t, locked.LockedAt)
	assert.NotEmpty(t, locked.Failures, "manifest stays on the cycle for audit")

	_, err = h.service.Lock(context.Background(), resp.ID, payroll.LockRequest{AcknowledgeFailures: true})
	assert.ErrorIs(t, err, payroll.ErrCycleLocked)
}

func TestLock_UnknownCycle(t *testing.T) {
	t.Parallel()
	h := newHarness(config.PayrollConfig{})

	_, err := h.service.Lock(context.Background(), "missing", payroll.LockRequest{})
	assert.ErrorIs(t, err, payroll.ErrCycleNotFound)
}
