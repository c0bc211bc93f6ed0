package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/token"
)

type stubResolver struct {
	features map[uint]domain.FeatureSet
	owners   map[uint]*uint
}

func (r *stubResolver) FeaturesForClient(_ context.Context, clientID uint) (domain.FeatureSet, error) {
	fs, ok := r.features[clientID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return fs, nil
}

func (r *stubResolver) OwnerOfProduct(_ context.Context, productID uint) (*uint, error) {
	return r.owners[productID], nil
}

func testClaims(subject int64, role string, clientID *uint) *token.Claims {
	return &token.Claims{
		Identity: "someone",
		Role:     role,
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(subject, 10),
		},
	}
}

func guardContext(claims *token.Claims, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		SetClaims(c, claims)
	}
	return c, rec
}

func runGuard(c echo.Context, resolver *stubResolver, req Requirement) (bool, error) {
	called := false
	handler := Guard(resolver, req)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, handler(c)
}

func TestGuard_Unauthenticated(t *testing.T) {
	c, _ := guardContext(nil, "/")

	called, err := runGuard(c, &stubResolver{}, Requirement{Roles: []string{domain.RoleAdmin}})
	if called {
		t.Fatalf("next handler should not be called")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestGuard_MasterBypassesEverything(t *testing.T) {
	c, _ := guardContext(testClaims(0, domain.RoleMaster, nil), "/")

	called, err := runGuard(c, &stubResolver{}, Requirement{
		Roles:   []string{domain.RoleAdmin},
		Feature: domain.FeatureCatalogEdit,
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("master should bypass role and feature checks")
	}
}

func TestGuard_RoleForbidden(t *testing.T) {
	tenant := uint(3)
	c, _ := guardContext(testClaims(-3, domain.RoleClient, &tenant), "/")

	called, err := runGuard(c, &stubResolver{}, Requirement{Roles: []string{domain.RoleMaster}})
	if called {
		t.Fatalf("next handler should not be called")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGuard_RoleAllowedCaseInsensitive(t *testing.T) {
	c, _ := guardContext(testClaims(7, "admin", nil), "/")

	called, err := runGuard(c, &stubResolver{}, Requirement{Roles: []string{"ADMIN", "MASTER"}})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("lower-case claimed role should satisfy upper-case requirement")
	}
}

func TestGuard_FeatureEnabled(t *testing.T) {
	tenant := uint(5)
	resolver := &stubResolver{
		features: map[uint]domain.FeatureSet{5: {domain.FeatureCatalogEdit: true}},
	}
	c, _ := guardContext(testClaims(-5, domain.RoleClient, &tenant), "/")

	called, err := runGuard(c, resolver, Requirement{Feature: domain.FeatureCatalogEdit})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("enabled feature should allow the request")
	}
}

func TestGuard_FeatureDisabled(t *testing.T) {
	tenant := uint(5)
	resolver := &stubResolver{
		features: map[uint]domain.FeatureSet{5: {domain.FeatureCatalogEdit: false}},
	}
	c, _ := guardContext(testClaims(-5, domain.RoleClient, &tenant), "/")

	called, err := runGuard(c, resolver, Requirement{Feature: domain.FeatureCatalogEdit})
	if called {
		t.Fatalf("next handler should not be called")
	}
	if !errors.Is(err, domain.ErrFeatureNotEnabled) {
		t.Fatalf("expected ErrFeatureNotEnabled, got %v", err)
	}
}

func TestGuard_FeatureAbsentIsDenied(t *testing.T) {
	tenant := uint(5)
	resolver := &stubResolver{
		features: map[uint]domain.FeatureSet{5: {domain.FeatureCatalogView: true}},
	}
	c, _ := guardContext(testClaims(-5, domain.RoleClient, &tenant), "/")

	_, err := runGuard(c, resolver, Requirement{Feature: domain.FeatureCatalogEdit})
	if !errors.Is(err, domain.ErrFeatureNotEnabled) {
		t.Fatalf("expected ErrFeatureNotEnabled for absent key, got %v", err)
	}
}

func TestGuard_MissingTenant(t *testing.T) {
	c, _ := guardContext(testClaims(9, domain.RoleUser, nil), "/")

	called, err := runGuard(c, &stubResolver{}, Requirement{Feature: domain.FeatureCatalogEdit})
	if called {
		t.Fatalf("next handler should not be called")
	}
	if !errors.Is(err, domain.ErrMissingTenant) {
		t.Fatalf("expected ErrMissingTenant, got %v", err)
	}
}

func TestGuard_ExplicitClientIDWins(t *testing.T) {
	tokenTenant := uint(5)
	resolver := &stubResolver{
		features: map[uint]domain.FeatureSet{
			5: {domain.FeatureCatalogEdit: false},
			8: {domain.FeatureCatalogEdit: true},
		},
	}
	c, _ := guardContext(testClaims(-5, domain.RoleClient, &tokenTenant), "/?client_id=8")

	called, err := runGuard(c, resolver, Requirement{Feature: domain.FeatureCatalogEdit})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("explicit client_id on the request should override the token tenant")
	}
}

func TestGuard_TenantFromRequestBody(t *testing.T) {
	resolver := &stubResolver{
		features: map[uint]domain.FeatureSet{8: {domain.FeatureCatalogEdit: true}},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"name":"x","price":1,"client_id":8}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	SetClaims(c, testClaims(9, domain.RoleAdmin, nil))

	var bound struct {
		ClientID *uint `json:"client_id"`
	}
	called := false
	handler := Guard(resolver, Requirement{Feature: domain.FeatureCatalogEdit})(func(c echo.Context) error {
		called = true
		if err := c.Bind(&bound); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("client_id in the body should resolve the tenant")
	}
	// the peeked body must still be readable downstream
	if bound.ClientID == nil || *bound.ClientID != 8 {
		t.Fatalf("body not restored for the handler, got %v", bound.ClientID)
	}
}

func TestGuard_BodyClientIDBeatsTokenTenant(t *testing.T) {
	tokenTenant := uint(5)
	resolver := &stubResolver{
		features: map[uint]domain.FeatureSet{
			5: {domain.FeatureCatalogEdit: true},
			8: {domain.FeatureCatalogEdit: false},
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"client_id":8}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	SetClaims(c, testClaims(-5, domain.RoleClient, &tokenTenant))

	_, err := runGuard(c, resolver, Requirement{Feature: domain.FeatureCatalogEdit})
	if !errors.Is(err, domain.ErrFeatureNotEnabled) {
		t.Fatalf("the body tenant should be the one evaluated, got %v", err)
	}
}

func TestGuard_TenantInferredFromProduct(t *testing.T) {
	owner := uint(5)
	resolver := &stubResolver{
		features: map[uint]domain.FeatureSet{5: {domain.FeatureCatalogEdit: true}},
		owners:   map[uint]*uint{42: &owner},
	}
	c, _ := guardContext(testClaims(9, domain.RoleUser, nil), "/")
	c.SetParamNames("id")
	c.SetParamValues("42")

	called, err := runGuard(c, resolver, Requirement{Feature: domain.FeatureCatalogEdit})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("tenant inferred from the product owner should allow the request")
	}
}
