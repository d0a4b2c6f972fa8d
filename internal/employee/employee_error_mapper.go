package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/aswanthpvtk/employee-Task-Backend/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const (
	uniqueEmployeeIDIndex = "uq_employees_employee_id"
	uniqueWorkEmailIndex  = "uq_employees_work_email"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, mongo.ErrNoDocuments) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case uniqueEmployeeIDIndex:
			return employeeerrors.ErrEmployeeIDTaken
		case uniqueWorkEmailIndex:
			return employeeerrors.ErrWorkEmailTaken
		}
	}

	// mongo reports the index name only inside the message
	errMsg := strings.ToLower(err.Error())
	if mongo.IsDuplicateKeyError(err) || strings.Contains(errMsg, "duplicate key") {
		switch {
		case strings.Contains(errMsg, uniqueEmployeeIDIndex):
			return employeeerrors.ErrEmployeeIDTaken
		case strings.Contains(errMsg, uniqueWorkEmailIndex):
			return employeeerrors.ErrWorkEmailTaken
		}
	}

	return err
}
