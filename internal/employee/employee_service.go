package employee

import (
	"context"
	"encoding/json"
	"errors"

	employeeerrors "github.com/aswanthpvtk/employee-Task-Backend/internal/employee/errors"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/events"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/messaging/kafka"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/section"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/apperror"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeSummaryResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	// Update applies payload under mode; an empty mode uses the configured
	// default.
	Update(ctx context.Context, id, mode string, payload map[string]any) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type Deps struct {
	Repo        Repository
	Catalog     section.Catalog
	Publisher   kafka.Publisher
	DefaultMode UpdateMode
	Logger      *zap.Logger
}

type service struct {
	repo        Repository
	catalog     section.Catalog
	resolver    *updateResolver
	events      eventPublisher
	defaultMode UpdateMode
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewService(deps Deps) Service {
	l := zap.L().Named("employee.service")
	if deps.Logger != nil {
		l = deps.Logger.Named("employee.service")
	}
	if deps.DefaultMode == "" {
		deps.DefaultMode = UpdateModePath
	}

	v := validator.New()
	v.RegisterTagNameFunc(apperror.JSONTagName)

	return &service{
		repo:        deps.Repo,
		catalog:     deps.Catalog,
		resolver:    newUpdateResolver(deps.Catalog),
		events:      newEventPublisher(deps.Publisher, l),
		defaultMode: deps.DefaultMode,
		validate:    v,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employeeID := req.businessKey()
	log.Debug("create employee requested",
		zap.String("employee_id", employeeID),
		zap.String("work_email", req.WorkEmail),
	)

	if employeeID == "" {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeIDRequired
	}

	joiningDate, err := parseJoiningDate(req.joiningDate())
	if err != nil {
		log.Warn("create employee invalid joining date", zap.String("joining_date", req.joiningDate()))
		return EmployeeResponse{}, err
	}

	emp := &Employee{
		EmployeeID:   employeeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Title:        req.Title,
		Department:   req.Department,
		Location:     req.Location,
		WorkEmail:    req.WorkEmail,
		ProfileImage: "",
		JoiningDate:  joiningDate,
		Status:       StatusActive,
	}
	if err := decodeInto(req.PersonalInfo, &emp.PersonalInfo); err != nil {
		return EmployeeResponse{}, err
	}
	if err := decodeInto(req.PaymentInfo, &emp.PaymentInfo); err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.validate.Struct(emp); err != nil {
		log.Warn("create employee validation failed", zap.Error(err))
		return EmployeeResponse{}, apperror.MapValidationError(err)
	}

	if err := s.ensureUnique(ctx, emp); err != nil {
		log.Warn("create employee duplicate", zap.String("employee_id", employeeID), zap.Error(err))
		return EmployeeResponse{}, err
	}

	catalog, err := s.catalog.ListAll(ctx)
	if err != nil {
		log.Error("create employee load section catalog failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	emp.Sections = projectSections(catalog, req.PersonalInfo, req.PaymentInfo)

	if err := s.repo.Create(ctx, emp); err != nil {
		log.Error("create employee persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.events.publish(ctx, events.EmployeeCreated, emp, "")

	log.Info("create employee success",
		zap.String("id", emp.ID),
		zap.String("employee_id", emp.EmployeeID),
		zap.Int("sections", len(emp.Sections)),
	)
	return mapToResponse(*emp), nil
}

// ensureUnique rejects a duplicate business key or work email before any
// write. The unique indexes still catch races.
func (s *service) ensureUnique(ctx context.Context, emp *Employee) error {
	existing, err := s.repo.FindByEmployeeIDOrWorkEmail(ctx, emp.EmployeeID, emp.WorkEmail)
	if err != nil {
		if errors.Is(mapRepositoryError(err), employeeerrors.ErrEmployeeNotFound) {
			return nil
		}
		return err
	}
	if existing.EmployeeID == emp.EmployeeID {
		return employeeerrors.ErrEmployeeIDTaken
	}
	return employeeerrors.ErrWorkEmailTaken
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeSummaryResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToSummaryList(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByIdentifier(ctx, id)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("get employee failed", zap.String("identifier", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*emp), nil
}

func (s *service) Update(ctx context.Context, id, rawMode string, payload map[string]any) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	mode, err := ParseUpdateMode(rawMode, s.defaultMode)
	if err != nil {
		log.Warn("update employee unknown mode", zap.String("mode", rawMode))
		return EmployeeResponse{}, err
	}
	log.Debug("update employee requested", zap.String("identifier", id), zap.String("mode", string(mode)))

	emp, err := s.repo.FindByIdentifier(ctx, id)
	if err != nil {
		log.Warn("update employee fetch existing failed", zap.String("identifier", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.resolver.Apply(ctx, emp, mode, payload); err != nil {
		log.Warn("update employee resolve failed", zap.String("identifier", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := s.validate.Struct(emp); err != nil {
		log.Warn("update employee validation failed", zap.String("identifier", id), zap.Error(err))
		return EmployeeResponse{}, apperror.MapValidationError(err)
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		log.Error("update employee persist failed", zap.String("identifier", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.events.publish(ctx, events.EmployeeUpdated, emp, mode)

	log.Info("update employee success", zap.String("id", emp.ID), zap.String("mode", string(mode)))
	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("delete employee requested", zap.String("identifier", id))

	emp, err := s.repo.DeleteByIdentifier(ctx, id)
	if err != nil {
		log.Warn("delete employee failed", zap.String("identifier", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.events.publish(ctx, events.EmployeeDeleted, emp, "")

	log.Info("delete employee success", zap.String("id", emp.ID), zap.String("employee_id", emp.EmployeeID))
	return nil
}

// decodeInto copies the known keys of src onto dst; other keys are left for
// the section projection.
func decodeInto(src map[string]any, dst any) error {
	if len(src) == 0 {
		return nil
	}
	data, err := json.Marshal(src)
	if err != nil {
		return apperror.Validation("Invalid input")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperror.MapDecodeError(err)
	}
	return nil
}
