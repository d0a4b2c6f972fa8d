package employee

import (
	"context"
	"testing"
	"time"

	employeeerrors "github.com/aswanthpvtk/employee-Task-Backend/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupGormRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return NewGormRepository(db), mock
}

var employeeColumns = []string{
	"id", "employee_id", "first_name", "last_name", "work_email", "joining_date", "status",
	"sections", "personal_info", "payment_info",
}

func TestGormRepository_FindByIdentifier(t *testing.T) {
	ctx := context.Background()

	t.Run("uuid matches either key", func(t *testing.T) {
		repo, mock := setupGormRepo(t)
		id := uuid.New()
		rows := sqlmock.NewRows(employeeColumns).AddRow(
			id.String(), "EMP-001", "Asha", "Menon", "asha@example.com", time.Now(), "active",
			[]byte(`[{"sectionId":"s2","sectionName":"Banking","fields":[{"name":"IFSC","value":"X"}]}]`),
			[]byte(`{"pan":"ABCDE1234F"}`),
			[]byte(`{}`),
		)
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE \(?id = \$1 OR employee_id = \$2`).
			WillReturnRows(rows)

		emp, err := repo.FindByIdentifier(ctx, id.String())

		require.NoError(t, err)
		assert.Equal(t, id.String(), emp.ID)
		assert.Equal(t, "ABCDE1234F", emp.PersonalInfo.PAN)
		assert.Equal(t, "Banking", emp.Sections[0].SectionName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("business key only", func(t *testing.T) {
		repo, mock := setupGormRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE employee_id = \$1`).
			WillReturnRows(sqlmock.NewRows(employeeColumns))

		_, err := repo.FindByIdentifier(ctx, "EMP-404")

		assert.ErrorIs(t, mapRepositoryError(err), employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRepository_Create(t *testing.T) {
	repo, mock := setupGormRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "employees"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: uniqueWorkEmailIndex})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &Employee{EmployeeID: "EMP-001", WorkEmail: "asha@example.com"})

	assert.ErrorIs(t, mapRepositoryError(err), employeeerrors.ErrWorkEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_FindAll(t *testing.T) {
	repo, mock := setupGormRepo(t)
	mock.ExpectQuery(`SELECT .*employee_id.*profile_image.* FROM "employees" ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "first_name"}).AddRow(uuid.NewString(), "EMP-001", "Asha"))

	employees, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "EMP-001", employees[0].EmployeeID)
	assert.Empty(t, employees[0].PersonalInfo)
}

func TestGormRepository_RemoveSectionSnapshots(t *testing.T) {
	repo, mock := setupGormRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "employees" SET .*jsonb_array_elements.* WHERE sections @> \$`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := repo.RemoveSectionSnapshots(context.Background(), uuid.NewString())

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
