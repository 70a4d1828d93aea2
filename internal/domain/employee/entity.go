package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	EmployeeCode  string
	FirstName     string
	LastName      string
	Email         string
	Phone         *string
	CollegeID     string
	DepartmentID  string
	DesignationID string
	DateOfJoining time.Time
	DateOfLeaving *time.Time
	BankName      *string
	BankAccount   *string
	IFSCCode      *string
	PANNumber     *string
	CTC           decimal.Decimal
	MonthlyGross  decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	DepartmentName  *string
	DesignationName *string
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
