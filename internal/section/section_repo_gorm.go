package section

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type sectionRecord struct {
	ID          uuid.UUID                            `gorm:"type:uuid;primaryKey"`
	Name        string                               `gorm:"size:255;not null;uniqueIndex:uq_sections_name"`
	DisplayName string                               `gorm:"size:255;not null"`
	Description string                               `gorm:"type:text"`
	Fields      datatypes.JSONSlice[FieldDefinition] `gorm:"type:jsonb;not null"`
	SortOrder   int                                  `gorm:"not null;index:idx_sections_order"`
	CreatedAt   time.Time                            `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                            `gorm:"autoUpdateTime"`
}

func (sectionRecord) TableName() string { return "sections" }

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, s *Section) error {
	rec := toRecord(s)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	*s = rec.toEntity()
	return nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Section, error) {
	var recs []sectionRecord
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	sections := make([]Section, len(recs))
	for i, rec := range recs {
		sections[i] = rec.toEntity()
	}
	return sections, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*Section, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.first(ctx, "id = ?", id)
}

func (r *gormRepository) FindByName(ctx context.Context, name string) (*Section, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *gormRepository) first(ctx context.Context, query string, arg any) (*Section, error) {
	var rec sectionRecord
	if err := r.db.WithContext(ctx).First(&rec, query, arg).Error; err != nil {
		return nil, err
	}
	s := rec.toEntity()
	return &s, nil
}

func (r *gormRepository) Update(ctx context.Context, s *Section) error {
	rec := toRecord(s)
	if rec.ID == uuid.Nil {
		return gorm.ErrRecordNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&sectionRecord{ID: rec.ID}).
		Select("name", "display_name", "description", "fields", "sort_order", "updated_at").
		Updates(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return gorm.ErrRecordNotFound
	}
	res := r.db.WithContext(ctx).Delete(&sectionRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) EnsureSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&sectionRecord{})
}

func toRecord(s *Section) sectionRecord {
	rec := sectionRecord{
		Name:        s.Name,
		DisplayName: s.DisplayName,
		Description: s.Description,
		Fields:      datatypes.JSONSlice[FieldDefinition](s.Fields),
		SortOrder:   s.Order,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if id, err := uuid.Parse(s.ID); err == nil {
		rec.ID = id
	}
	return rec
}

func (rec sectionRecord) toEntity() Section {
	fields := []FieldDefinition(rec.Fields)
	if fields == nil {
		fields = []FieldDefinition{}
	}
	return Section{
		ID:          rec.ID.String(),
		Name:        rec.Name,
		DisplayName: rec.DisplayName,
		Description: rec.Description,
		Fields:      fields,
		Order:       rec.SortOrder,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
