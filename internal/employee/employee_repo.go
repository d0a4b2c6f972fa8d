package employee

import (
	"context"
)

// Repository persists employees. Identifier lookups accept either the store's
// primary key or the business employeeId.
//
//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	// FindAll returns only the summary columns.
	FindAll(ctx context.Context) ([]Employee, error)
	FindByIdentifier(ctx context.Context, identifier string) (*Employee, error)
	FindByEmployeeIDOrWorkEmail(ctx context.Context, employeeID, workEmail string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	DeleteByIdentifier(ctx context.Context, identifier string) (*Employee, error)
	// RemoveSectionSnapshots pulls every snapshot of sectionID and reports
	// how many employees changed.
	RemoveSectionSnapshots(ctx context.Context, sectionID string) (int64, error)
	EnsureSchema(ctx context.Context) error
}
