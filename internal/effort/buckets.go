package effort

import "github.com/effortwise/gearbox/pkg/models"

// ComplexityBucket names one of the five complexity classes a task
// score falls into.
type ComplexityBucket string

const (
	BucketTrivial ComplexityBucket = "trivial"
	BucketSimple  ComplexityBucket = "simple"
	BucketMedium  ComplexityBucket = "medium"
	BucketComplex ComplexityBucket = "complex"
	BucketExtreme ComplexityBucket = "extreme"
)

// LevelBaseline is the tier/depth starting point one bucket assigns to
// one pipeline level.
type LevelBaseline struct {
	Tier  models.Tier
	Depth float64
}

// complexityBaselines maps each bucket to its per-level baselines.
// The table is static configuration; validateBaselines checks it once
// at package init.
var complexityBaselines = map[ComplexityBucket]map[models.Level]LevelBaseline{
	BucketTrivial: {
		models.Level1: {Tier: models.TierMid, Depth: 0.3},
		models.Level2: {Tier: models.TierLocal, Depth: 0.3},
		models.Level3: {Tier: models.TierLocal, Depth: 0.3},
	},
	BucketSimple: {
		models.Level1: {Tier: models.TierMid, Depth: 0.4},
		models.Level2: {Tier: models.TierMid, Depth: 0.4},
		models.Level3: {Tier: models.TierLocal, Depth: 0.4},
	},
	BucketMedium: {
		models.Level1: {Tier: models.TierPremium, Depth: 0.5},
		models.Level2: {Tier: models.TierMid, Depth: 0.5},
		models.Level3: {Tier: models.TierMid, Depth: 0.5},
	},
	BucketComplex: {
		models.Level1: {Tier: models.TierPremium, Depth: 0.7},
		models.Level2: {Tier: models.TierPremium, Depth: 0.6},
		models.Level3: {Tier: models.TierMid, Depth: 0.6},
	},
	BucketExtreme: {
		models.Level1: {Tier: models.TierPremium, Depth: 0.9},
		models.Level2: {Tier: models.TierPremium, Depth: 0.8},
		models.Level3: {Tier: models.TierPremium, Depth: 0.7},
	},
}

// AllBuckets lists the buckets from least to most complex.
var AllBuckets = []ComplexityBucket{
	BucketTrivial,
	BucketSimple,
	BucketMedium,
	BucketComplex,
	BucketExtreme,
}

// Classify maps a complexity score in [0,1] to its bucket. It is total:
// out-of-range scores land in the nearest end bucket.
func Classify(score float64) ComplexityBucket {
	switch {
	case score < 0.2:
		return BucketTrivial
	case score < 0.4:
		return BucketSimple
	case score < 0.6:
		return BucketMedium
	case score < 0.8:
		return BucketComplex
	default:
		return BucketExtreme
	}
}

// BaselineFor returns the tier/depth baseline the bucket assigns to the
// given pipeline level.
func BaselineFor(bucket ComplexityBucket, level models.Level) LevelBaseline {
	return complexityBaselines[bucket][level]
}

// validateBaselines asserts the bucket table covers every bucket and
// level with in-range values.
func validateBaselines() error {
	for _, bucket := range AllBuckets {
		baselines, ok := complexityBaselines[bucket]
		if !ok {
			return &ConfigError{Table: "complexity baselines", Detail: "missing bucket " + string(bucket)}
		}
		for _, level := range []models.Level{models.Level1, models.Level2, models.Level3} {
			b, ok := baselines[level]
			if !ok {
				return &ConfigError{Table: "complexity baselines", Detail: "missing level baseline for " + string(bucket)}
			}
			if !b.Tier.Valid() || b.Depth < 0 || b.Depth > 1 {
				return &ConfigError{Table: "complexity baselines", Detail: "out-of-range baseline for " + string(bucket)}
			}
		}
	}
	return nil
}
