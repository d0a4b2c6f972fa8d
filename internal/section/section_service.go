package section

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/events"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/messaging/kafka"
	sectionerrors "github.com/aswanthpvtk/employee-Task-Backend/internal/section/errors"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/apperror"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/audit"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// CatalogCacheKey prefixes the cached catalog; the current generation
	// from CatalogGenerationKey completes it.
	CatalogCacheKey      = "sections:catalog"
	CatalogGenerationKey = "sections:catalog:gen"
	CatalogCacheTTL      = 10 * time.Minute
)

// Catalog is the read side other packages depend on.
type Catalog interface {
	ListAll(ctx context.Context) ([]Section, error)
	FindByName(ctx context.Context, name string) (*Section, error)
}

//go:generate mockgen -source=section_service.go -destination=mock/section_service_mock.go -package=mock
type Service interface {
	Catalog
	Create(ctx context.Context, req CreateSectionRequest) (SectionResponse, error)
	GetAll(ctx context.Context) ([]SectionResponse, error)
	Update(ctx context.Context, id string, req UpdateSectionRequest) (SectionResponse, error)
	Delete(ctx context.Context, id string) error
}

type Deps struct {
	Repo      Repository
	Cleaner   SnapshotCleaner
	Redis     *redis.Client
	Publisher kafka.Publisher
	Audit     audit.Logger
	Logger    *zap.Logger
}

type service struct {
	repo      Repository
	cleaner   SnapshotCleaner
	rdb       *redis.Client
	publisher kafka.Publisher
	audit     audit.Logger
	validate  *validator.Validate
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(deps Deps) Service {
	l := zap.L().Named("section.service")
	if deps.Logger != nil {
		l = deps.Logger.Named("section.service")
	}
	if deps.Publisher == nil {
		deps.Publisher = kafka.NoopPublisher()
	}
	if deps.Audit == nil {
		deps.Audit = audit.Nop()
	}

	v := validator.New()
	v.RegisterTagNameFunc(apperror.JSONTagName)

	return &service{
		repo:      deps.Repo,
		cleaner:   deps.Cleaner,
		rdb:       deps.Redis,
		publisher: deps.Publisher,
		audit:     deps.Audit,
		validate:  v,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateSectionRequest) (SectionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create section requested", zap.String("name", req.Name))

	sec := &Section{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Fields:      toFieldDefinitions(req.Fields),
		Order:       req.Order,
	}
	if err := s.check(sec); err != nil {
		log.Warn("create section validation failed", zap.Error(err))
		return SectionResponse{}, err
	}

	if err := s.repo.Create(ctx, sec); err != nil {
		log.Error("create section persist failed", zap.Error(err))
		return SectionResponse{}, mapRepositoryError(err)
	}

	s.invalidateCatalog(ctx)
	s.publish(ctx, events.SectionCreated, sec, 0)

	log.Info("create section success", zap.String("section_id", sec.ID), zap.String("name", sec.Name))
	return mapToResponse(*sec), nil
}

func (s *service) GetAll(ctx context.Context) ([]SectionResponse, error) {
	sections, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(sections), nil
}

// ListAll returns the whole catalog ordered by display order. Reads go
// through Redis when configured; concurrent misses share one store query.
func (s *service) ListAll(ctx context.Context) ([]Section, error) {
	key, cacheable := s.catalogKey(ctx)
	if cacheable {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var sections []Section
			if json.Unmarshal([]byte(cached), &sections) == nil {
				return sections, nil
			}
		}
	}

	sfKey := CatalogCacheKey
	if cacheable {
		sfKey = key
	}
	v, err, _ := s.sf.Do(sfKey, func() (any, error) {
		// Shared by every waiter; one caller going away must not fail the rest.
		loadCtx := context.WithoutCancel(ctx)

		sections, err := s.repo.FindAll(loadCtx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		if sections == nil {
			sections = []Section{}
		}

		if cacheable {
			if data, err := json.Marshal(sections); err == nil {
				if err := s.rdb.Set(loadCtx, key, data, CatalogCacheTTL).Err(); err != nil {
					s.logger.Warn("cache section catalog failed", zap.Error(err))
				}
			}
		}
		return sections, nil
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list sections failed", zap.Error(err))
		return nil, err
	}

	return v.([]Section), nil
}

// catalogKey names the cache entry of the current catalog generation. A fill
// that raced a write lands under the old generation, which nothing reads
// again. Without a readable generation the cache is skipped.
func (s *service) catalogKey(ctx context.Context) (string, bool) {
	if s.rdb == nil {
		return "", false
	}
	gen, err := s.rdb.Get(ctx, CatalogGenerationKey).Result()
	switch {
	case errors.Is(err, redis.Nil):
		gen = "0"
	case err != nil:
		s.logger.Warn("read section catalog generation failed", zap.Error(err))
		return "", false
	}
	return CatalogCacheKey + ":" + gen, true
}

func (s *service) FindByName(ctx context.Context, name string) (*Section, error) {
	sec, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return sec, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSectionRequest) (SectionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update section requested", zap.String("section_id", id))

	sec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Warn("update section fetch existing failed", zap.String("section_id", id), zap.Error(err))
		return SectionResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		sec.Name = *req.Name
	}
	if req.DisplayName != nil {
		sec.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		sec.Description = *req.Description
	}
	if req.Fields != nil {
		sec.Fields = toFieldDefinitions(*req.Fields)
	}
	if req.Order != nil {
		sec.Order = *req.Order
	}

	if err := s.check(sec); err != nil {
		log.Warn("update section validation failed", zap.String("section_id", id), zap.Error(err))
		return SectionResponse{}, err
	}

	if err := s.repo.Update(ctx, sec); err != nil {
		log.Error("update section persist failed", zap.String("section_id", id), zap.Error(err))
		return SectionResponse{}, mapRepositoryError(err)
	}

	s.invalidateCatalog(ctx)
	s.publish(ctx, events.SectionUpdated, sec, 0)

	log.Info("update section success", zap.String("section_id", id))
	return mapToResponse(*sec), nil
}

// Delete removes the definition first and then the snapshots that point at
// it. The two writes are not atomic; a failure in between leaves orphaned
// snapshots and is reported as an error.
func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("delete section requested", zap.String("section_id", id))

	sec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Warn("delete section fetch existing failed", zap.String("section_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("delete section failed", zap.String("section_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	s.invalidateCatalog(ctx)

	removed, err := s.cleaner.RemoveSectionSnapshots(ctx, id)
	if err != nil {
		log.Error("delete section cascade failed, employee snapshots left behind",
			zap.String("section_id", id),
			zap.Error(err),
		)
		return err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  "SECTION_DELETED",
		Message: "section " + sec.Name + " deleted",
		Meta: map[string]any{
			"section_id":        id,
			"employees_updated": removed,
		},
	})
	s.publish(ctx, events.SectionDeleted, sec, removed)

	log.Info("delete section success",
		zap.String("section_id", id),
		zap.Int64("employees_updated", removed),
	)
	return nil
}

func (s *service) check(sec *Section) error {
	sec.normalize()
	if err := s.validate.Struct(sec); err != nil {
		return apperror.MapValidationError(err)
	}
	if dup := sec.duplicateField(); dup != "" {
		return apperror.Wrap(
			apperror.Validation(dup),
			sectionerrors.ErrDuplicateFieldName.Code,
			sectionerrors.ErrDuplicateFieldName.Message,
			sectionerrors.ErrDuplicateFieldName.HTTPStatus,
		)
	}
	return nil
}

func (s *service) invalidateCatalog(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(context.WithoutCancel(ctx), CatalogGenerationKey).Err(); err != nil {
		s.logger.Error("failed to invalidate section catalog cache",
			zap.Error(err),
			zap.String("key", CatalogGenerationKey),
		)
	}
}

func (s *service) publish(ctx context.Context, eventType string, sec *Section, employees int64) {
	event := events.SectionEvent{
		EventType:  eventType,
		RequestID:  contextutil.GetRequestID(ctx),
		SectionID:  sec.ID,
		Name:       sec.Name,
		Employees:  employees,
		OccurredAt: time.Now().UTC(),
	}
	err := s.publisher.Publish(ctx, kafka.Event{
		Topic:         events.SectionCatalogTopic,
		Key:           sec.ID,
		EventType:     eventType,
		AggregateType: "section",
		Payload:       event,
	})
	if err != nil {
		s.logger.Warn("publish section event failed",
			zap.String("event_type", eventType),
			zap.String("section_id", sec.ID),
			zap.Error(err),
		)
	}
}
