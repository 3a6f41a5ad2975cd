package model

import (
	"fmt"
	"math/bits"
	"strings"
)

// Feature is a terrain tag attached to a map cell.
// Numeric values match the map file format and must not be reordered.
type Feature uint8

const (
	FeatureBlocking Feature = iota
	FeatureAreaEntrance
	FeatureWater
	FeatureWet
	FeatureTransportTarget
	FeatureMountain
	FeatureCastle

	featureCount
)

var featureNames = [featureCount]string{
	FeatureBlocking:        "BLOCKING",
	FeatureAreaEntrance:    "AREA_ENTRANCE",
	FeatureWater:           "WATER",
	FeatureWet:             "WET",
	FeatureTransportTarget: "TRANSPORT_TARGET",
	FeatureMountain:        "MOUNTAIN",
	FeatureCastle:          "CASTLE",
}

// Valid reports whether f is a known feature.
func (f Feature) Valid() bool {
	return f < featureCount
}

func (f Feature) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Feature(%d)", uint8(f))
	}
	return featureNames[f]
}

// ParseFeature resolves a feature name, case-insensitively.
func ParseFeature(name string) (Feature, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range featureNames {
		if n == upper {
			return Feature(i), nil
		}
	}
	return 0, fmt.Errorf("unknown feature %q", name)
}

// FeatureSet is a bit-set of features, one bit per Feature value.
// The zero value is the empty set.
type FeatureSet uint32

// NewFeatureSet builds a set from the given features. Unknown features are ignored.
func NewFeatureSet(features ...Feature) FeatureSet {
	var s FeatureSet
	for _, f := range features {
		s = s.Add(f)
	}
	return s
}

// ParseFeatureSet parses a list of feature names.
func ParseFeatureSet(names []string) (FeatureSet, error) {
	var s FeatureSet
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := ParseFeature(name)
		if err != nil {
			return 0, err
		}
		s = s.Add(f)
	}
	return s, nil
}

// Add returns the set with f included.
func (s FeatureSet) Add(f Feature) FeatureSet {
	if !f.Valid() {
		return s
	}
	return s | 1<<f
}

// Remove returns the set with f excluded.
func (s FeatureSet) Remove(f Feature) FeatureSet {
	if !f.Valid() {
		return s
	}
	return s &^ (1 << f)
}

// Has reports whether f is in the set.
func (s FeatureSet) Has(f Feature) bool {
	return f.Valid() && s&(1<<f) != 0
}

// Intersects reports whether the two sets share any feature.
func (s FeatureSet) Intersects(other FeatureSet) bool {
	return s&other != 0
}

// Empty reports whether no feature is set.
func (s FeatureSet) Empty() bool {
	return s == 0
}

// Len returns the number of features in the set.
func (s FeatureSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Features lists the set members in ascending numeric order.
func (s FeatureSet) Features() []Feature {
	out := make([]Feature, 0, s.Len())
	for f := Feature(0); f < featureCount; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s FeatureSet) String() string {
	features := s.Features()
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}
