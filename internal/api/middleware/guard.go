package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
	"github.com/jbinformatica/pedidos-api/internal/core/token"
	"github.com/jbinformatica/pedidos-api/internal/metrics"
)

// Requirement declares what a guarded route demands from the caller.
// Zero-value fields impose nothing: an empty Roles set skips the role
// check, an empty Feature skips the plan check.
type Requirement struct {
	Roles   []string
	Feature domain.Feature
}

// RequireRoles guards a route on role membership only.
func RequireRoles(resolver ports.AccessResolver, roles ...string) echo.MiddlewareFunc {
	return Guard(resolver, Requirement{Roles: roles})
}

// RequireFeature guards a route on a plan feature only.
func RequireFeature(resolver ports.AccessResolver, feature domain.Feature) echo.MiddlewareFunc {
	return Guard(resolver, Requirement{Feature: feature})
}

// Guard is the single authorization gate composed into the pipeline after
// Auth. Evaluation order is fixed:
//
//  1. master (role MASTER, or subject 0 with role MASTER) — allow everything;
//  2. role membership, case-normalized, when Roles is non-empty;
//  3. plan feature check, when Feature is set, against the acting tenant —
//     an explicit client_id on the request wins (JSON body, then query
//     string), then the token's tenant, then the owner of the :id path
//     resource.
//
// Feature flags are closed-world: a missing tenant is a 400, a disabled or
// absent flag is a 403.
func Guard(resolver ports.AccessResolver, req Requirement) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(req.Roles))
	for _, r := range req.Roles {
		allowed[domain.NormalizeRole(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				metrics.AuthzDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			if isMaster(claims) {
				return next(c)
			}

			role := domain.NormalizeRole(claims.Role)
			if len(allowed) > 0 {
				if _, ok := allowed[role]; !ok {
					metrics.AuthzDeniedTotal.WithLabelValues("forbidden").Inc()
					return domain.ErrForbidden
				}
			}

			if req.Feature != "" {
				if err := checkFeature(c, resolver, claims, req.Feature); err != nil {
					return err
				}
			}

			return next(c)
		}
	}
}

// isMaster reports whether the claims identify the configuration-held
// master. A bare subject 0 is not enough: the role must also be MASTER, so
// the sentinel subject space cannot be hijacked by other flows.
func isMaster(claims *token.Claims) bool {
	return domain.NormalizeRole(claims.Role) == domain.RoleMaster
}

func checkFeature(c echo.Context, resolver ports.AccessResolver, claims *token.Claims, feature domain.Feature) error {
	clientID, err := resolveTenant(c, resolver, claims)
	if err != nil {
		return err
	}
	if clientID == nil {
		metrics.AuthzDeniedTotal.WithLabelValues("missing_tenant").Inc()
		return domain.ErrMissingTenant
	}

	features, err := resolver.FeaturesForClient(c.Request().Context(), *clientID)
	if err != nil {
		return err
	}
	if !features.Enabled(feature) {
		metrics.AuthzDeniedTotal.WithLabelValues("feature_disabled").Inc()
		return domain.ErrFeatureNotEnabled
	}
	return nil
}

// resolveTenant determines the acting tenant for a feature check.
func resolveTenant(c echo.Context, resolver ports.AccessResolver, claims *token.Claims) (*uint, error) {
	if id := bodyClientID(c); id != nil {
		return id, nil
	}

	if raw := c.QueryParam("client_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			return &v, nil
		}
	}

	if claims.ClientID != nil {
		return claims.ClientID, nil
	}

	// Fall back to the owner of the referenced resource, e.g. a product's
	// owning tenant on PUT /v1/products/:id.
	if raw := c.Param("id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			return resolver.OwnerOfProduct(c.Request().Context(), uint(id))
		}
	}

	return nil, nil
}

// bodyClientID peeks at a JSON request body for a client_id field. The body
// is restored so the downstream handler can still bind it.
func bodyClientID(c echo.Context) *uint {
	req := c.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return nil
	}
	if !strings.Contains(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return nil
	}

	raw, err := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return nil
	}

	var payload struct {
		ClientID *uint `json:"client_id"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload.ClientID
}
