package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/vitrine/internal/models"
	"github.com/Skotchmaster/vitrine/internal/repo"
	"github.com/Skotchmaster/vitrine/internal/transport"
	"github.com/Skotchmaster/vitrine/pkg/logging"
	"github.com/Skotchmaster/vitrine/pkg/mykafka"
)

type LojistaService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func (s *LojistaService) Create(ctx context.Context, userID uint, req transport.LojistaRequest) (*models.Lojista, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: owner required", ErrValidation)
	}
	if strings.TrimSpace(req.Nome) == "" {
		return nil, fmt.Errorf("%w: nome required", ErrValidation)
	}
	plano := req.Plano
	if plano == "" {
		plano = models.PlanoBasico
	}
	if !validPlano(plano) {
		return nil, fmt.Errorf("%w: plano must be basico or premium", ErrValidation)
	}

	l := &models.Lojista{
		Nome:     strings.TrimSpace(req.Nome),
		Email:    strings.TrimSpace(req.Email),
		Telefone: req.Telefone,
		Endereco: req.Endereco,
		Cidade:   req.Cidade,
		Estado:   req.Estado,
		CEP:      req.CEP,
		Plano:    plano,
		UserID:   userID,
	}
	if err := s.Repo.CreateLojista(ctx, l); err != nil {
		return nil, mapStoreErr(err, "lojista")
	}

	s.emit(ctx, "lojista_created", l.ID, userID)
	return l, nil
}

func (s *LojistaService) List(ctx context.Context) ([]models.Lojista, error) {
	return s.Repo.ListLojistas(ctx)
}

func (s *LojistaService) ListMine(ctx context.Context, userID uint) ([]models.Lojista, error) {
	return s.Repo.ListLojistasByUser(ctx, userID)
}

func (s *LojistaService) Get(ctx context.Context, id uint) (*models.Lojista, error) {
	l, err := s.Repo.GetLojista(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "lojista")
	}
	return l, nil
}

func (s *LojistaService) Update(ctx context.Context, userID, id uint, req transport.PatchLojistaRequest) (*models.Lojista, error) {
	if _, err := s.authorize(ctx, userID, id, "update"); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setString(fields, "nome", req.Nome)
	setString(fields, "email", req.Email)
	setString(fields, "telefone", req.Telefone)
	setString(fields, "endereco", req.Endereco)
	setString(fields, "cidade", req.Cidade)
	setString(fields, "estado", req.Estado)
	setString(fields, "cep", req.CEP)
	if req.Nome != nil && strings.TrimSpace(*req.Nome) == "" {
		return nil, fmt.Errorf("%w: nome cannot be empty", ErrValidation)
	}
	if req.Plano != nil {
		if !validPlano(*req.Plano) {
			return nil, fmt.Errorf("%w: plano must be basico or premium", ErrValidation)
		}
		fields["plano"] = *req.Plano
	}

	updated, err := s.Repo.UpdateLojista(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err, "lojista")
	}

	s.emit(ctx, "lojista_updated", id, userID)
	return updated, nil
}

func (s *LojistaService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.authorize(ctx, userID, id, "delete"); err != nil {
		return err
	}
	if err := s.Repo.DeleteLojista(ctx, id); err != nil {
		return mapStoreErr(err, "lojista")
	}

	s.emit(ctx, "lojista_deleted", id, userID)
	return nil
}

// authorize checks existence before ownership, so an unknown id is reported
// as not found and never as forbidden.
func (s *LojistaService) authorize(ctx context.Context, userID, id uint, action string) (*models.Lojista, error) {
	l, err := s.Repo.GetLojista(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "lojista")
	}
	if l.UserID != userID {
		logging.FromContext(ctx).Warn("lojista_access_denied",
			"action", action, "lojista_id", id, "owner_id", l.UserID, "user_id", userID)
		return nil, fmt.Errorf("%w: lojista %d is not owned by the caller", ErrForbidden, id)
	}
	return l, nil
}

func (s *LojistaService) emit(ctx context.Context, typ string, id, userID uint) {
	publish(ctx, s.Events, mykafka.TopicLojista, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":      typ,
		"lojistaID": id,
		"userID":    userID,
	})
}

func validPlano(p string) bool {
	return p == models.PlanoBasico || p == models.PlanoPremium
}

func setString(fields map[string]any, col string, v *string) {
	if v != nil {
		fields[col] = strings.TrimSpace(*v)
	}
}
