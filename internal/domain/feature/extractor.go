package feature

import (
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/model"
)

// Metadata keys consulted during extraction.
const (
	MetadataSourceCountry      = "source_country"
	MetadataDestinationCountry = "destination_country"
)

// History is a read-only snapshot of an account's recent activity, supplied
// by the historical-context collaborator. The zero value is the documented
// default for accounts with no history.
type History struct {
	RecentCount int
	RecentSum   float64
}

// Extractor converts a validated transaction plus a history snapshot into a
// schema v1 feature vector. Extraction is pure: identical inputs always yield
// an identical vector, and no I/O happens here.
type Extractor struct {
	schema        Schema
	merchantRisk  map[string]float64
	unknownWeight float64
}

// NewExtractor creates an Extractor with the given merchant-category risk
// weights. Categories missing from the map, including the reserved UNKNOWN
// bucket, impute to unknownWeight.
func NewExtractor(merchantRisk map[string]float64, unknownWeight float64) *Extractor {
	weights := make(map[string]float64, len(merchantRisk))
	for k, v := range merchantRisk {
		weights[k] = v
	}
	return &Extractor{
		schema:        SchemaV1(),
		merchantRisk:  weights,
		unknownWeight: unknownWeight,
	}
}

// Schema returns the schema of vectors this extractor produces.
func (e *Extractor) Schema() Schema {
	return e.schema
}

// Extract builds the feature vector for tx. Missing optional inputs use the
// documented defaults: unknown merchant categories take the unknown weight,
// an empty history yields recent_count=0, recent_sum=0 and amount_over_avg=1,
// and absent country metadata means cross_border=0.
func (e *Extractor) Extract(tx model.Transaction, hist History) Vector {
	amount, _ := tx.Amount().Float64()
	ts := tx.Timestamp()

	merchantWeight, ok := e.merchantRisk[tx.MerchantCategory()]
	if !ok {
		merchantWeight = e.unknownWeight
	}

	amountOverAvg := 1.0
	if hist.RecentCount > 0 && hist.RecentSum > 0 {
		amountOverAvg = amount / (hist.RecentSum / float64(hist.RecentCount))
	}

	crossBorder := 0.0
	src := tx.Metadata(MetadataSourceCountry)
	dst := tx.Metadata(MetadataDestinationCountry)
	if src != "" && dst != "" && src != dst {
		crossBorder = 1.0
	}

	return Vector{
		Schema: e.schema,
		Values: []float64{
			amount,
			float64(ts.Hour()),
			float64(ts.Weekday()),
			merchantWeight,
			float64(hist.RecentCount),
			hist.RecentSum,
			amountOverAvg,
			crossBorder,
		},
	}
}
