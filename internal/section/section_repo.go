package section

import "context"

//go:generate mockgen -source=section_repo.go -destination=mock/section_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, s *Section) error
	FindAll(ctx context.Context) ([]Section, error)
	FindByID(ctx context.Context, id string) (*Section, error)
	FindByName(ctx context.Context, name string) (*Section, error)
	Update(ctx context.Context, s *Section) error
	Delete(ctx context.Context, id string) error
	EnsureSchema(ctx context.Context) error
}

// SnapshotCleaner removes the embedded copy of a deleted section from every
// employee record and reports how many records changed.
type SnapshotCleaner interface {
	RemoveSectionSnapshots(ctx context.Context, sectionID string) (int64, error)
}
