package section

import (
	"errors"
	"strings"

	sectionerrors "github.com/aswanthpvtk/employee-Task-Backend/internal/section/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const uniqueNameIndex = "uq_sections_name"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, mongo.ErrNoDocuments) {
		return sectionerrors.ErrSectionNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return sectionerrors.ErrSectionNameTaken
	}

	if mongo.IsDuplicateKeyError(err) {
		return sectionerrors.ErrSectionNameTaken
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key") && strings.Contains(errMsg, uniqueNameIndex) {
		return sectionerrors.ErrSectionNameTaken
	}

	return err
}
