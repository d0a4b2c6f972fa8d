package section

import (
	"context"
	"testing"
	"time"

	sectionerrors "github.com/aswanthpvtk/employee-Task-Backend/internal/section/errors"

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

func TestGormRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock := setupGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "sections"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		s := &Section{Name: "banking", DisplayName: "Banking", Fields: []FieldDefinition{{Name: "IFSC", Type: FieldTypeText}}}
		require.NoError(t, repo.Create(ctx, s))

		_, err := uuid.Parse(s.ID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		repo, mock := setupGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "sections"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: uniqueNameIndex})
		mock.ExpectRollback()

		err := repo.Create(ctx, &Section{Name: "banking", DisplayName: "Banking"})

		assert.ErrorIs(t, mapRepositoryError(err), sectionerrors.ErrSectionNameTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRepository_FindAll(t *testing.T) {
	repo, mock := setupGormRepo(t)
	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "display_name", "description", "fields", "sort_order", "created_at", "updated_at"}).
		AddRow(id.String(), "banking", "Banking", "", []byte(`[{"name":"IFSC","type":"text","required":true}]`), 0, time.Now(), time.Now())

	mock.ExpectQuery(`SELECT \* FROM "sections" ORDER BY sort_order ASC,name ASC`).WillReturnRows(rows)

	sections, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, id.String(), sections[0].ID)
	assert.Equal(t, "IFSC", sections[0].Fields[0].Name)
	assert.True(t, sections[0].Fields[0].Required)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id skips query", func(t *testing.T) {
		repo, mock := setupGormRepo(t)

		_, err := repo.FindByID(ctx, "65f1c0ffee0000000000aaaa")

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := setupGormRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "sections" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(ctx, uuid.NewString())

		assert.ErrorIs(t, mapRepositoryError(err), sectionerrors.ErrSectionNotFound)
	})
}

func TestGormRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock := setupGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "sections" WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, uuid.NewString()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		repo, mock := setupGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "sections"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.ErrorIs(t, repo.Delete(ctx, uuid.NewString()), gorm.ErrRecordNotFound)
	})
}
