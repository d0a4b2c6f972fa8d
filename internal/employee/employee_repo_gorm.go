package employee

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type employeeRecord struct {
	ID           uuid.UUID                            `gorm:"type:uuid;primaryKey"`
	EmployeeID   string                               `gorm:"size:100;not null;uniqueIndex:uq_employees_employee_id"`
	FirstName    string                               `gorm:"size:255;not null"`
	LastName     string                               `gorm:"size:255;not null"`
	Title        string                               `gorm:"size:255"`
	Department   string                               `gorm:"size:255"`
	Location     string                               `gorm:"size:255"`
	WorkEmail    string                               `gorm:"size:255;not null;uniqueIndex:uq_employees_work_email"`
	ProfileImage string                               `gorm:"type:text"`
	JoiningDate  time.Time                            `gorm:"not null"`
	Status       Status                               `gorm:"size:20;not null"`
	Sections     datatypes.JSONSlice[SectionSnapshot] `gorm:"type:jsonb;not null;index:idx_employees_sections,type:gin"`
	PersonalInfo datatypes.JSONType[PersonalInfo]     `gorm:"type:jsonb;not null"`
	PaymentInfo  datatypes.JSONType[PaymentInfo]      `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time                            `gorm:"autoCreateTime"`
	UpdatedAt    time.Time                            `gorm:"autoUpdateTime"`
}

func (employeeRecord) TableName() string { return "employees" }

var summaryColumns = []string{
	"id", "employee_id", "first_name", "last_name", "status", "department", "title", "profile_image",
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// identifierScope mirrors identifierFilter for UUID primary keys.
func identifierScope(id string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if _, err := uuid.Parse(id); err == nil {
			return db.Where("id = ? OR employee_id = ?", id, id)
		}
		return db.Where("employee_id = ?", id)
	}
}

func (r *gormRepository) Create(ctx context.Context, e *Employee) error {
	rec := toRecord(e)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	*e = rec.toEntity()
	return nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Employee, error) {
	var recs []employeeRecord
	err := r.db.WithContext(ctx).
		Select(summaryColumns).
		Order("created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	employees := make([]Employee, len(recs))
	for i, rec := range recs {
		employees[i] = rec.toEntity()
	}
	return employees, nil
}

func (r *gormRepository) FindByIdentifier(ctx context.Context, identifier string) (*Employee, error) {
	var rec employeeRecord
	err := r.db.WithContext(ctx).
		Scopes(identifierScope(identifier)).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	e := rec.toEntity()
	return &e, nil
}

func (r *gormRepository) FindByEmployeeIDOrWorkEmail(ctx context.Context, employeeID, workEmail string) (*Employee, error) {
	var rec employeeRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? OR work_email = ?", employeeID, workEmail).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	e := rec.toEntity()
	return &e, nil
}

func (r *gormRepository) Update(ctx context.Context, e *Employee) error {
	rec := toRecord(e)
	if rec.ID == uuid.Nil {
		return gorm.ErrRecordNotFound
	}
	rec.UpdatedAt = time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&employeeRecord{ID: rec.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	e.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *gormRepository) DeleteByIdentifier(ctx context.Context, identifier string) (*Employee, error) {
	var rec employeeRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(identifierScope(identifier)).First(&rec).Error; err != nil {
			return err
		}
		return tx.Delete(&employeeRecord{}, "id = ?", rec.ID).Error
	})
	if err != nil {
		return nil, err
	}
	e := rec.toEntity()
	return &e, nil
}

// RemoveSectionSnapshots rewrites the sections array in a single statement so
// each row is filtered atomically.
func (r *gormRepository) RemoveSectionSnapshots(ctx context.Context, sectionID string) (int64, error) {
	containment, err := json.Marshal([]map[string]string{{"sectionId": sectionID}})
	if err != nil {
		return 0, err
	}

	res := r.db.WithContext(ctx).
		Model(&employeeRecord{}).
		Where("sections @> ?", datatypes.JSON(containment)).
		Updates(map[string]any{
			"sections": gorm.Expr(
				`COALESCE((SELECT jsonb_agg(s) FROM jsonb_array_elements(sections) AS s WHERE s->>'sectionId' <> ?), '[]'::jsonb)`,
				sectionID,
			),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *gormRepository) EnsureSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&employeeRecord{})
}

func toRecord(e *Employee) employeeRecord {
	sections := e.Sections
	if sections == nil {
		sections = []SectionSnapshot{}
	}
	rec := employeeRecord{
		EmployeeID:   e.EmployeeID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Title:        e.Title,
		Department:   e.Department,
		Location:     e.Location,
		WorkEmail:    e.WorkEmail,
		ProfileImage: e.ProfileImage,
		JoiningDate:  e.JoiningDate,
		Status:       e.Status,
		Sections:     datatypes.JSONSlice[SectionSnapshot](sections),
		PersonalInfo: datatypes.NewJSONType(e.PersonalInfo),
		PaymentInfo:  datatypes.NewJSONType(e.PaymentInfo),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if id, err := uuid.Parse(e.ID); err == nil {
		rec.ID = id
	}
	return rec
}

func (rec employeeRecord) toEntity() Employee {
	return Employee{
		ID:           rec.ID.String(),
		EmployeeID:   rec.EmployeeID,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		Title:        rec.Title,
		Department:   rec.Department,
		Location:     rec.Location,
		WorkEmail:    rec.WorkEmail,
		ProfileImage: rec.ProfileImage,
		JoiningDate:  rec.JoiningDate,
		Status:       rec.Status,
		Sections:     []SectionSnapshot(rec.Sections),
		PersonalInfo: rec.PersonalInfo.Data(),
		PaymentInfo:  rec.PaymentInfo.Data(),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}
