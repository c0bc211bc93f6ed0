package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
)

// AdminService implements the master/admin management use cases: plans,
// client plan assignment, and user administration.
type AdminService struct {
	plans   ports.PlanRepository
	clients ports.ClientRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewAdminService(
	plans ports.PlanRepository,
	clients ports.ClientRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{plans: plans, clients: clients, users: users, log: log}
}

func (s *AdminService) ListPlans(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *AdminService) CreatePlan(ctx context.Context, name string, features map[string]bool, defaultPlan bool) (*domain.Plan, error) {
	set, err := domain.ParseFeatureSet(features)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.Create(ctx, &domain.Plan{
		Name:        name,
		Features:    set,
		DefaultPlan: defaultPlan,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create plan")
		return nil, err
	}
	s.log.Info().Str("plan", name).Msg("plan created")
	return plan, nil
}

func (s *AdminService) UpdatePlan(ctx context.Context, id uint, in ports.UpdatePlanInput) (*domain.Plan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		plan.Name = *in.Name
	}
	if in.Features != nil {
		set, err := domain.ParseFeatureSet(in.Features)
		if err != nil {
			return nil, err
		}
		plan.Features = set
	}
	if in.DefaultPlan != nil {
		plan.DefaultPlan = *in.DefaultPlan
	}

	updated, err := s.plans.Update(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("plan_id", id).Msg("plan updated")
	return updated, nil
}

func (s *AdminService) ChangeClientPlan(ctx context.Context, clientID uint, planName string, planID *uint) (*domain.Client, error) {
	var plan *domain.Plan
	var err error
	switch {
	case planName != "":
		plan, err = s.plans.FindByName(ctx, planName)
	case planID != nil:
		plan, err = s.plans.FindByID(ctx, *planID)
	default:
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	client, err := s.clients.UpdatePlan(ctx, clientID, plan.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("client_id", clientID).Str("plan", plan.Name).Msg("client plan changed")
	return client, nil
}

func (s *AdminService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	role := domain.NormalizeRole(in.Role)
	if !domain.AssignableRole(role) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
	}

	user := &domain.User{
		Email:       in.Email,
		Username:    in.Username,
		Role:        role,
		ClientID:    in.ClientID,
		Permissions: in.Permissions,
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("create user: hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("identity", created.Identity()).Str("role", role).Msg("user created")
	return created, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id uint, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Role != nil {
		role := domain.NormalizeRole(*in.Role)
		if !domain.AssignableRole(role) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, *in.Role)
		}
		user.Role = role
	}
	if in.Permissions != nil {
		user.Permissions = in.Permissions
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *AdminService) ChangeUserRole(ctx context.Context, id uint, role string) (*domain.User, error) {
	normalized := domain.NormalizeRole(role)
	if !domain.AssignableRole(normalized) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = normalized

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("user_id", id).Str("role", normalized).Msg("user role changed")
	return updated, nil
}

func (s *AdminService) SetUserPassword(ctx context.Context, id uint, password string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("set user password: hash: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, id, string(hash)); err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", id).Msg("user password set")
	return user, nil
}

// DeleteUser removes the record permanently.
func (s *AdminService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("user_id", id).Msg("user deleted")
	return nil
}
