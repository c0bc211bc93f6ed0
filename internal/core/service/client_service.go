package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
)

// ClientService implements tenant CRUD.
type ClientService struct {
	repo  ports.ClientRepository
	plans ports.PlanRepository
	log   zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, plans ports.PlanRepository, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, plans: plans, log: log}
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) Get(ctx context.Context, id uint) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("create client: hash password: %w", err)
		}
		client.PasswordHash = string(hash)
	}

	switch {
	case in.PlanName != "":
		plan, err := s.plans.FindByName(ctx, in.PlanName)
		if err != nil {
			return nil, err
		}
		client.PlanID = &plan.ID
	case in.PlanID != nil:
		plan, err := s.plans.FindByID(ctx, *in.PlanID)
		if err != nil {
			return nil, err
		}
		client.PlanID = &plan.ID
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create client")
		return nil, err
	}
	s.log.Info().Uint("client_id", created.ID).Msg("client created")
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, id uint, in ports.UpdateClientInput) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Blocked != nil {
		client.Blocked = *in.Blocked
	}
	if in.Paid != nil {
		client.Paid = *in.Paid
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("update client: hash password: %w", err)
		}
		client.PasswordHash = string(hash)
	}

	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("client_id", id).Msg("client updated")
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("client_id", id).Msg("client deleted")
	return nil
}
