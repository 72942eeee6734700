// Package feature derives fixed-shape numeric feature vectors from
// transactions. A model artifact is bound to exactly one schema; vectors carry
// their schema so adapters can fail fast on a mismatch instead of misscoring.
package feature

// Feature names of schema v1, in vector order.
const (
	FeatureAmount        = "amount"
	FeatureHourOfDay     = "hour_of_day"
	FeatureDayOfWeek     = "day_of_week"
	FeatureMerchantRisk  = "merchant_risk"
	FeatureRecentCount   = "recent_count"
	FeatureRecentSum     = "recent_sum"
	FeatureAmountOverAvg = "amount_over_avg"
	FeatureCrossBorder   = "cross_border"
)

// Schema fixes the length and ordering of a feature vector. Two schemas are
// compatible only when name, version and the full ordered feature list match.
type Schema struct {
	Name     string   `json:"name" yaml:"name"`
	Version  string   `json:"version" yaml:"version"`
	Features []string `json:"features" yaml:"features"`
}

// SchemaV1 returns the transaction feature schema currently produced by the
// extractor.
func SchemaV1() Schema {
	return Schema{
		Name:    "txn_features",
		Version: "v1",
		Features: []string{
			FeatureAmount,
			FeatureHourOfDay,
			FeatureDayOfWeek,
			FeatureMerchantRisk,
			FeatureRecentCount,
			FeatureRecentSum,
			FeatureAmountOverAvg,
			FeatureCrossBorder,
		},
	}
}

// Equal reports whether two schemas have identical name, version and ordered
// feature lists.
func (s Schema) Equal(other Schema) bool {
	if s.Name != other.Name || s.Version != other.Version {
		return false
	}
	if len(s.Features) != len(other.Features) {
		return false
	}
	for i, f := range s.Features {
		if other.Features[i] != f {
			return false
		}
	}
	return true
}

// Vector is an ordered sequence of named numeric features. Values[i]
// corresponds to Schema.Features[i].
type Vector struct {
	Schema Schema
	Values []float64
}

// Value returns the named feature value, or false when the schema does not
// contain it.
func (v Vector) Value(name string) (float64, bool) {
	for i, f := range v.Schema.Features {
		if f == name && i < len(v.Values) {
			return v.Values[i], true
		}
	}
	return 0, false
}
