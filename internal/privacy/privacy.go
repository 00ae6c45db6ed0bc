package privacy

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/campuswell/stresslens/internal/models"
)

// Conservative sensitivity estimate: every released value is bounded by a
// unit interval, so one input can move it by at most 1.
const sensitivity = 1.0

// Output lists are truncated to this many entries before external exposure.
const maxListEntries = 100

// Mechanism perturbs numeric outputs with Laplace noise so no single input
// materially changes the releasable result. Smaller epsilon means more
// noise and more privacy.
type Mechanism struct {
	epsilon float64
	laplace distuv.Laplace
}

func NewMechanism(epsilon float64) *Mechanism {
	return &Mechanism{
		epsilon: epsilon,
		laplace: distuv.Laplace{Mu: 0, Scale: sensitivity / epsilon},
	}
}

// NewMechanismWithSource seeds the noise source explicitly; tests use it to
// make perturbation reproducible.
func NewMechanismWithSource(epsilon float64, src rand.Source) *Mechanism {
	return &Mechanism{
		epsilon: epsilon,
		laplace: distuv.Laplace{Mu: 0, Scale: sensitivity / epsilon, Src: src},
	}
}

// Perturb adds Laplace noise to a single leaf value, clamped back to [0,1].
func (m *Mechanism) Perturb(v float64) float64 {
	return clamp01(v + m.laplace.Rand())
}

// PerturbSlice noises a numeric list element-wise.
func (m *Mechanism) PerturbSlice(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = m.Perturb(v)
	}
	return out
}

// Protect returns a copy of the assessment with every numeric leaf noised.
// The categorical fields (factors, recommendations) pass through: they are
// derived from already-aggregated features and carry no raw input.
func (m *Mechanism) Protect(a models.StressAssessment) models.StressAssessment {
	a.StressScore = m.Perturb(a.StressScore)
	a.Confidence = m.Perturb(a.Confidence)
	return a
}

// ProtectRecord noises the numeric leaves of a pipeline record.
func (m *Mechanism) ProtectRecord(rec models.AssessmentRecord) models.AssessmentRecord {
	rec.StressAssessment = m.Protect(rec.StressAssessment)
	return rec
}

// Sanitize enforces the output contract applied before external exposure:
// list fields are truncated to 100 entries. Assessments carry no sensitive
// keys by construction; truncation is the remaining obligation.
func Sanitize(a models.StressAssessment) models.StressAssessment {
	a.ContributingFactors = truncate(a.ContributingFactors)
	a.Recommendations = truncate(a.Recommendations)
	return a
}

func truncate(list []string) []string {
	if len(list) > maxListEntries {
		return list[:maxListEntries]
	}
	return list
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0.0), 1.0)
}
