package domain

import "fmt"

// Feature is a plan entitlement key. The set of keys is closed: a plan can
// only be created or updated with features listed below, which turns a typo
// in a feature name into a write-time error instead of a silent deny at
// check time.
type Feature string

const (
	FeatureCatalogView         Feature = "catalog_view"
	FeatureCatalogEdit         Feature = "catalog_edit"
	FeatureWhatsAppIntegration Feature = "whatsapp_integration"
	FeatureRealtimeTracking    Feature = "realtime_tracking"
	FeatureBilling             Feature = "billing"
	FeatureReports             Feature = "reports"
)

// Features enumerates every known feature key.
var Features = []Feature{
	FeatureCatalogView,
	FeatureCatalogEdit,
	FeatureWhatsAppIntegration,
	FeatureRealtimeTracking,
	FeatureBilling,
	FeatureReports,
}

var knownFeatures = func() map[Feature]struct{} {
	m := make(map[Feature]struct{}, len(Features))
	for _, f := range Features {
		m[f] = struct{}{}
	}
	return m
}()

// KnownFeature reports whether f is a valid feature key.
func KnownFeature(f Feature) bool {
	_, ok := knownFeatures[f]
	return ok
}

// FeatureSet is a flat boolean map over the closed feature enum. Keys absent
// from the map are disabled (closed-world default-deny).
type FeatureSet map[Feature]bool

// Enabled reports whether f is present and exactly true.
func (s FeatureSet) Enabled(f Feature) bool {
	return s[f]
}

// ParseFeatureSet validates raw feature flags against the closed enum.
// An unknown key fails with ErrUnknownFeature.
func ParseFeatureSet(raw map[string]bool) (FeatureSet, error) {
	set := make(FeatureSet, len(raw))
	for k, v := range raw {
		f := Feature(k)
		if !KnownFeature(f) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, k)
		}
		set[f] = v
	}
	return set, nil
}
