package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
	"github.com/jbinformatica/pedidos-api/internal/core/token"
)

type stubUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if (user.Email != "" && u.Email == user.Email) ||
			(user.Username != "" && u.Username == user.Username) {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.nextID++
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByIdentity(_ context.Context, identity string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == identity || u.Username == identity {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id uint, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubClientRepo struct {
	clients map[uint]*domain.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uint]*domain.Client)}
}

func cloneClient(c *domain.Client) *domain.Client {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubClientRepo) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	copy := cloneClient(client)
	if copy.ID == 0 {
		copy.ID = uint(len(r.clients) + 1)
	}
	r.clients[copy.ID] = cloneClient(copy)
	return cloneClient(copy), nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uint) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return cloneClient(c), nil
}

func (r *stubClientRepo) FindByName(_ context.Context, name string) (*domain.Client, error) {
	for _, c := range r.clients {
		if strings.EqualFold(c.Name, name) {
			return cloneClient(c), nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, cloneClient(c))
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, client *domain.Client) (*domain.Client, error) {
	if _, ok := r.clients[client.ID]; !ok {
		return nil, domain.ErrClientNotFound
	}
	r.clients[client.ID] = cloneClient(client)
	return cloneClient(client), nil
}

func (r *stubClientRepo) UpdatePlan(_ context.Context, clientID, planID uint) (*domain.Client, error) {
	c, ok := r.clients[clientID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	c.PlanID = &planID
	return cloneClient(c), nil
}

func (r *stubClientRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

type stubAccess struct {
	features map[uint]domain.FeatureSet
}

func (a *stubAccess) FeaturesForClient(_ context.Context, clientID uint) (domain.FeatureSet, error) {
	fs, ok := a.features[clientID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return fs, nil
}

func (a *stubAccess) OwnerOfProduct(_ context.Context, _ uint) (*uint, error) {
	return nil, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func newTestAuthService(t *testing.T, users ports.UserRepository, clients ports.ClientRepository, access ports.AccessResolver) (*AuthService, *token.Codec) {
	t.Helper()
	codec, err := token.NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	master := MasterCredentials{Identity: "admin@x.com", Password: "masterpw"}
	if access == nil {
		access = &stubAccess{}
	}
	return NewAuthService(users, clients, access, codec, master, zerolog.Nop()), codec
}

func TestAuthService_Login_Master(t *testing.T) {
	svc, codec := newTestAuthService(t, newStubUserRepo(), newStubClientRepo(), nil)

	result, err := svc.Login(context.Background(), "admin@x.com", "masterpw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.ID != 0 || result.User.Role != domain.RoleMaster {
		t.Fatalf("unexpected profile: %+v", result.User)
	}

	claims, err := codec.Verify(result.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.SubjectID() != 0 || claims.Role != domain.RoleMaster {
		t.Fatalf("unexpected claims: sub=%d role=%s", claims.SubjectID(), claims.Role)
	}
}

func TestAuthService_Login_MasterIdentityCaseInsensitive(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo(), newStubClientRepo(), nil)

	if _, err := svc.Login(context.Background(), "ADMIN@X.COM", "masterpw"); err != nil {
		t.Fatalf("expected case-insensitive master identity match, got %v", err)
	}
	// the secret comparison stays exact
	if _, err := svc.Login(context.Background(), "admin@x.com", "MASTERPW"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong-case secret, got %v", err)
	}
}

func TestAuthService_Login_MasterBeatsStoredUser(t *testing.T) {
	users := newStubUserRepo()
	// a stored record with the master identity must not shadow the bypass
	_, _ = users.Create(context.Background(), &domain.User{
		Email:        "admin@x.com",
		PasswordHash: mustHash(t, "other"),
		Role:         domain.RoleUser,
	})
	svc, _ := newTestAuthService(t, users, newStubClientRepo(), nil)

	result, err := svc.Login(context.Background(), "admin@x.com", "masterpw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.Role != domain.RoleMaster || result.User.ID != 0 {
		t.Fatalf("master credentials should win: %+v", result.User)
	}
}

func TestAuthService_Login_User(t *testing.T) {
	users := newStubUserRepo()
	tenant := uint(4)
	_, _ = users.Create(context.Background(), &domain.User{
		Email:        "carol@example.com",
		PasswordHash: mustHash(t, "s3cret"),
		Role:         "admin", // stored lower-case on purpose
		ClientID:     &tenant,
	})
	svc, codec := newTestAuthService(t, users, newStubClientRepo(), nil)

	result, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.Role != domain.RoleAdmin {
		t.Fatalf("expected normalized role ADMIN, got %s", result.User.Role)
	}

	claims, err := codec.Verify(result.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role ADMIN in token, got %s", claims.Role)
	}
	if claims.ClientID == nil || *claims.ClientID != 4 {
		t.Fatalf("expected tenant 4 in token, got %v", claims.ClientID)
	}
}

func TestAuthService_Login_RoleDefaultsToUser(t *testing.T) {
	users := newStubUserRepo()
	_, _ = users.Create(context.Background(), &domain.User{
		Email:        "dave@example.com",
		PasswordHash: mustHash(t, "pw"),
	})
	svc, codec := newTestAuthService(t, users, newStubClientRepo(), nil)

	result, err := svc.Login(context.Background(), "dave@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, _ := codec.Verify(result.Token)
	if claims.Role != domain.RoleUser {
		t.Fatalf("expected default role USER, got %s", claims.Role)
	}
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	users := newStubUserRepo()
	_, _ = users.Create(context.Background(), &domain.User{
		Email:        "known@example.com",
		PasswordHash: mustHash(t, "rightpw"),
	})
	svc, _ := newTestAuthService(t, users, newStubClientRepo(), nil)

	_, wrongSecret := svc.Login(context.Background(), "known@example.com", "wrongpw")
	_, unknownIdentity := svc.Login(context.Background(), "ghost@example.com", "whatever")

	if !errors.Is(wrongSecret, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong secret, got %v", wrongSecret)
	}
	if !errors.Is(unknownIdentity, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown identity, got %v", unknownIdentity)
	}
	if wrongSecret.Error() != unknownIdentity.Error() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", wrongSecret, unknownIdentity)
	}
}

func TestAuthService_Login_ClientByName(t *testing.T) {
	clients := newStubClientRepo()
	_, _ = clients.Create(context.Background(), &domain.Client{
		ID:           3,
		Name:         "Padaria Central",
		Email:        "padaria@example.com",
		PasswordHash: mustHash(t, "clientpw"),
	})
	svc, codec := newTestAuthService(t, newStubUserRepo(), clients, nil)

	result, err := svc.Login(context.Background(), "padaria central", "clientpw")
	if err != nil {
		t.Fatalf("client login failed: %v", err)
	}
	if result.User.Role != domain.RoleClient {
		t.Fatalf("expected role CLIENT, got %s", result.User.Role)
	}
	if result.User.ID != -3 {
		t.Fatalf("expected negated client id -3, got %d", result.User.ID)
	}

	claims, err := codec.Verify(result.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.SubjectID() != -3 {
		t.Fatalf("expected subject -3, got %d", claims.SubjectID())
	}
	if claims.ClientID == nil || *claims.ClientID != 3 {
		t.Fatalf("expected tenant 3, got %v", claims.ClientID)
	}
}

func TestAuthService_Login_ClientWithoutPassword(t *testing.T) {
	clients := newStubClientRepo()
	_, _ = clients.Create(context.Background(), &domain.Client{ID: 2, Name: "sem senha"})
	svc, _ := newTestAuthService(t, newStubUserRepo(), clients, nil)

	if _, err := svc.Login(context.Background(), "sem senha", "anything"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register(t *testing.T) {
	users := newStubUserRepo()
	svc, codec := newTestAuthService(t, users, newStubClientRepo(), nil)

	result, err := svc.Register(context.Background(), "new@example.com", "pass123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.User.Role != domain.RoleUser {
		t.Fatalf("expected role USER, got %s", result.User.Role)
	}

	stored, err := users.FindByIdentity(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	if _, err := codec.Verify(result.Token); err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo(), newStubClientRepo(), nil)

	if _, err := svc.Register(context.Background(), "dup@example.com", "pw"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "dup@example.com", "pw2"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	users := newStubUserRepo()
	created, _ := users.Create(context.Background(), &domain.User{
		Email:        "eve@example.com",
		PasswordHash: mustHash(t, "oldpw"),
	})
	svc, _ := newTestAuthService(t, users, newStubClientRepo(), nil)

	if _, err := svc.ChangePassword(context.Background(), created.ID, "wrongpw", "newpw"); !errors.Is(err, domain.ErrInvalidCurrentPassword) {
		t.Fatalf("expected ErrInvalidCurrentPassword, got %v", err)
	}

	if _, err := svc.ChangePassword(context.Background(), created.ID, "oldpw", "newpw"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	stored, _ := users.FindByID(context.Background(), created.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpw")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}

	// admin-style reset without the current password always re-hashes
	if _, err := svc.ChangePassword(context.Background(), created.ID, "", "resetpw"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	stored, _ = users.FindByID(context.Background(), created.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("resetpw")); err != nil {
		t.Fatalf("reset password not stored: %v", err)
	}
}

func TestAuthService_Navigation(t *testing.T) {
	access := &stubAccess{features: map[uint]domain.FeatureSet{
		6: {
			domain.FeatureCatalogView: true,
			domain.FeatureReports:     true,
		},
	}}
	svc, _ := newTestAuthService(t, newStubUserRepo(), newStubClientRepo(), access)

	menu, err := svc.Navigation(context.Background(), domain.RoleMaster, 0, nil)
	if err != nil {
		t.Fatalf("navigation failed: %v", err)
	}
	if len(menu) != 6 {
		t.Fatalf("master should see the full menu, got %v", menu)
	}

	tenant := uint(6)
	menu, err = svc.Navigation(context.Background(), domain.RoleClient, -6, &tenant)
	if err != nil {
		t.Fatalf("navigation failed: %v", err)
	}
	if len(menu) != 2 || menu[0] != "catalog" || menu[1] != "reports" {
		t.Fatalf("unexpected client menu: %v", menu)
	}

	menu, err = svc.Navigation(context.Background(), domain.RoleUser, 9, nil)
	if err != nil {
		t.Fatalf("navigation failed: %v", err)
	}
	if len(menu) != 1 || menu[0] != "catalog" {
		t.Fatalf("expected bare catalog menu, got %v", menu)
	}
}
