package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/Skotchmaster/vitrine/internal/models"
	pkgdb "github.com/Skotchmaster/vitrine/pkg/db"
	"github.com/Skotchmaster/vitrine/pkg/logging"
)

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrForbidden          = errors.New("forbidden")           // 403
	ErrNotFound           = errors.New("not found")           // 404
	ErrConflict           = errors.New("conflict")            // 409
)

// EventPublisher is satisfied by *mykafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// ProdutoIndex is satisfied by *search.Index.
type ProdutoIndex interface {
	IndexProduto(ctx context.Context, p *models.Produto) error
	DeleteProduto(ctx context.Context, id uint) error
	Search(ctx context.Context, q string, from, size int) (int64, []models.Produto, error)
}

var check = validator.New(validator.WithRequiredStructEnabled())

// mapStoreErr turns storage errors into service sentinels.
func mapStoreErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case pkgdb.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	case pkgdb.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s is still referenced", ErrConflict, what)
	}
	return err
}

func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
