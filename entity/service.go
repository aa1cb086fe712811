package entity

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/tenantify/apikit/errors"
	"github.com/tenantify/apikit/logger"
)

// Handle is the storage-handle abstraction the bootstrap is parameterized
// over. Products supply their own concrete context type (usually wrapping
// *database.DB) as long as it exposes the GORM handle.
type Handle interface {
	Gorm() *gorm.DB
}

// Service is the entity façade bound to one database context. It is stateless
// apart from the handle and safe for concurrent use.
type Service[D Handle] struct {
	db  D
	log *logger.Logger
}

// NewService binds a façade to a database context. The service shares the
// context by reference and does not own its lifecycle.
func NewService[D Handle](db D, log *logger.Logger) *Service[D] {
	return &Service[D]{db: db, log: log.WithComponent("entity")}
}

// Context returns the bound database context.
func (s *Service[D]) Context() D {
	return s.db
}

// Session returns a context-scoped GORM session for queries the generic
// helpers do not cover.
func (s *Service[D]) Session(ctx context.Context) *gorm.DB {
	return s.db.Gorm().WithContext(ctx)
}

// Migrate runs auto-migration for the given models.
func (s *Service[D]) Migrate(models ...interface{}) error {
	for _, model := range models {
		if err := s.db.Gorm().AutoMigrate(model); err != nil {
			return apperrors.DatabaseError(err)
		}
	}
	return nil
}

// Create inserts a record.
func Create[T any, D Handle](ctx context.Context, s *Service[D], record *T) error {
	if err := s.Session(ctx).Create(record).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// Get loads the first record matching conds into dest. A missing record maps
// to a NOT_FOUND application error.
func Get[T any, D Handle](ctx context.Context, s *Service[D], dest *T, conds ...interface{}) error {
	err := s.Session(ctx).First(dest, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entityName[T](), "")
	}
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// List loads all records matching conds into dest.
func List[T any, D Handle](ctx context.Context, s *Service[D], dest *[]T, conds ...interface{}) error {
	if err := s.Session(ctx).Find(dest, conds...).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// ListForTenant loads all records belonging to one tenant. The model must
// carry a tenant_id column.
func ListForTenant[T any, D Handle](ctx context.Context, s *Service[D], tenantID string, dest *[]T) error {
	if err := s.Session(ctx).Where("tenant_id = ?", tenantID).Find(dest).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// Save updates a record, inserting it if it has no primary key.
func Save[T any, D Handle](ctx context.Context, s *Service[D], record *T) error {
	if err := s.Session(ctx).Save(record).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// Delete removes records matching conds.
func Delete[T any, D Handle](ctx context.Context, s *Service[D], conds ...interface{}) error {
	var model T
	if err := s.Session(ctx).Delete(&model, conds...).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// entityName derives a resource name for error messages from the model type.
func entityName[T any]() string {
	var model T
	t := reflect.TypeOf(model)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "record"
	}
	return strings.ToLower(t.Name())
}
