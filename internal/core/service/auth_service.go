package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jbinformatica/pedidos-api/internal/metrics"
	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
	"github.com/jbinformatica/pedidos-api/internal/core/token"
)

// MasterCredentials is the configuration-held privileged identity. It is an
// explicit, first-class authentication strategy checked before any store
// lookup; the service never reads the environment itself.
type MasterCredentials struct {
	Identity string
	Password string
}

// Matches reports whether the submitted pair is the master pair. The
// identity comparison is case-insensitive, the secret comparison is exact.
// Unconfigured credentials never match.
func (m MasterCredentials) Matches(identifier, password string) bool {
	if m.Identity == "" || m.Password == "" {
		return false
	}
	return strings.EqualFold(identifier, m.Identity) && password == m.Password
}

// AuthService implements login, registration, and password management.
type AuthService struct {
	users   ports.UserRepository
	clients ports.ClientRepository
	access  ports.AccessResolver
	codec   *token.Codec
	master  MasterCredentials
	log     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	clients ports.ClientRepository,
	access ports.AccessResolver,
	codec *token.Codec,
	master MasterCredentials,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		clients: clients,
		access:  access,
		codec:   codec,
		master:  master,
		log:     log,
	}
}

// Login resolves credentials with first-match-wins precedence:
//
//  1. configured master identity — store bypassed entirely;
//  2. user record by email or username;
//  3. client (tenant) record by name, case-insensitive.
//
// Every failed resolution ends in the same domain.ErrInvalidCredentials, so
// the response never reveals whether the identity exists.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.AuthResult, error) {
	if identifier == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if s.master.Matches(identifier, password) {
		tkn, err := s.codec.Issue(domain.MasterSubjectID, identifier, domain.RoleMaster, nil)
		if err != nil {
			return nil, fmt.Errorf("login: issue master token: %w", err)
		}
		s.log.Info().Str("identity", identifier).Msg("master login")
		metrics.LoginsTotal.WithLabelValues("master").Inc()
		return &ports.AuthResult{
			Token: tkn,
			User: &ports.PublicProfile{
				ID:    domain.MasterSubjectID,
				Email: identifier,
				Role:  domain.RoleMaster,
			},
		}, nil
	}

	user, err := s.users.FindByIdentity(ctx, identifier)
	switch {
	case err == nil:
		return s.loginUser(user, password)
	case errors.Is(err, domain.ErrUserNotFound):
		// fall through to the legacy tenant-name flow
	default:
		s.log.Error().Err(err).Msg("user lookup failed")
		return nil, fmt.Errorf("login: %w", err)
	}

	client, err := s.clients.FindByName(ctx, identifier)
	switch {
	case err == nil:
		return s.loginClient(client, password)
	case errors.Is(err, domain.ErrClientNotFound):
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	default:
		s.log.Error().Err(err).Msg("client lookup failed")
		return nil, fmt.Errorf("login: %w", err)
	}
}

func (s *AuthService) loginUser(user *domain.User, password string) (*ports.AuthResult, error) {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	role := domain.NormalizeRole(user.Role)
	tkn, err := s.codec.Issue(int64(user.ID), user.Identity(), role, user.ClientID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("identity", user.Identity()).Str("role", role).Msg("login")
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{
		Token: tkn,
		User: &ports.PublicProfile{
			ID:       int64(user.ID),
			Email:    user.Email,
			Username: user.Username,
			Role:     role,
			ClientID: user.ClientID,
		},
	}, nil
}

// loginClient handles the legacy flow where a tenant authenticates with its
// client name. Tenants are not credential records: the subject is the
// negated client id, keeping 0 reserved for the master sentinel.
func (s *AuthService) loginClient(client *domain.Client, password string) (*ports.AuthResult, error) {
	if client.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	clientID := client.ID
	subject := -int64(clientID)
	identity := client.Email
	if identity == "" {
		identity = client.Name
	}

	tkn, err := s.codec.Issue(subject, identity, domain.RoleClient, &clientID)
	if err != nil {
		return nil, fmt.Errorf("login: issue client token: %w", err)
	}

	s.log.Info().Str("client", client.Name).Msg("client login")
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{
		Token: tkn,
		User: &ports.PublicProfile{
			ID:       subject,
			Email:    client.Email,
			Username: client.Name,
			Role:     domain.RoleClient,
			ClientID: &clientID,
		},
	}, nil
}

// Register creates a USER-role credential record and issues a token.
func (s *AuthService) Register(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if _, err := s.users.FindByIdentity(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	tkn, err := s.codec.Issue(int64(created.ID), created.Identity(), domain.RoleUser, nil)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("email", email).Msg("user registered")
	return &ports.AuthResult{
		Token: tkn,
		User: &ports.PublicProfile{
			ID:    int64(created.ID),
			Email: created.Email,
			Role:  domain.RoleUser,
		},
	}, nil
}

// ChangePassword re-hashes and stores newPassword. When currentPassword is
// supplied it must verify against the stored hash first.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if currentPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
			return nil, domain.ErrInvalidCurrentPassword
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("change password: hash: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", userID).Msg("password changed")
	return user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Navigation builds the menu for the actor. Master sees everything; other
// actors get entries derived from their tenant's plan features, with the
// bare catalog as fallback when no tenant can be resolved.
func (s *AuthService) Navigation(ctx context.Context, role string, subjectID int64, clientID *uint) ([]string, error) {
	if domain.NormalizeRole(role) == domain.RoleMaster && subjectID == domain.MasterSubjectID {
		return []string{"catalog", "orders", "delivery", "billing", "reports", "admin"}, nil
	}

	if clientID == nil {
		return []string{"catalog"}, nil
	}

	features, err := s.access.FeaturesForClient(ctx, *clientID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return []string{"catalog"}, nil
		}
		return nil, fmt.Errorf("navigation: %w", err)
	}

	menu := make([]string, 0, len(domain.Features))
	if features.Enabled(domain.FeatureCatalogView) {
		menu = append(menu, "catalog")
	}
	if features.Enabled(domain.FeatureWhatsAppIntegration) {
		menu = append(menu, "whatsapp")
	}
	if features.Enabled(domain.FeatureCatalogEdit) {
		menu = append(menu, "catalog_edit")
	}
	if features.Enabled(domain.FeatureRealtimeTracking) {
		menu = append(menu, "delivery")
	}
	if features.Enabled(domain.FeatureBilling) {
		menu = append(menu, "billing")
	}
	if features.Enabled(domain.FeatureReports) {
		menu = append(menu, "reports")
	}
	return menu, nil
}
