package domain

import (
	"errors"
	"testing"
)

func TestParseFeatureSet(t *testing.T) {
	set, err := ParseFeatureSet(map[string]bool{
		"catalog_view": true,
		"billing":      false,
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !set.Enabled(FeatureCatalogView) {
		t.Fatalf("catalog_view should be enabled")
	}
	if set.Enabled(FeatureBilling) {
		t.Fatalf("billing should be disabled")
	}
	// closed world: absent keys are denied
	if set.Enabled(FeatureReports) {
		t.Fatalf("absent feature should be denied")
	}
}

func TestParseFeatureSet_UnknownKey(t *testing.T) {
	_, err := ParseFeatureSet(map[string]bool{"teleport": true})
	if !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestPedidoStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to PedidoStatus
		ok       bool
	}{
		{StatusPendente, StatusEmPreparo, true},
		{StatusEmPreparo, StatusPronto, true},
		{StatusPronto, StatusEntregue, true},
		{StatusPendente, StatusPronto, false},
		{StatusPendente, StatusEntregue, false},
		{StatusEntregue, StatusPendente, false},
		{StatusPronto, StatusEmPreparo, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	if NormalizeRole("") != RoleUser {
		t.Fatalf("empty role should default to USER")
	}
	if NormalizeRole(" admin ") != RoleAdmin {
		t.Fatalf("role should be trimmed and upper-cased")
	}
}

func TestAssignableRole(t *testing.T) {
	if AssignableRole(RoleMaster) {
		t.Fatalf("MASTER must not be assignable")
	}
	for _, r := range []string{"admin", "CLIENT", "user"} {
		if !AssignableRole(r) {
			t.Fatalf("%s should be assignable", r)
		}
	}
}
