package privacy

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/campuswell/stresslens/internal/models"
)

func TestPerturbStaysInBounds(t *testing.T) {
	m := NewMechanismWithSource(0.5, rand.NewSource(1)) // low epsilon, heavy noise

	for _, v := range []float64{0.0, 0.25, 0.5, 0.75, 1.0} {
		for i := 0; i < 200; i++ {
			got := m.Perturb(v)
			if got < 0 || got > 1 {
				t.Fatalf("perturbed value %f out of [0,1] (input %f)", got, v)
			}
		}
	}
}

func TestPerturbActuallyNoises(t *testing.T) {
	m := NewMechanismWithSource(1.0, rand.NewSource(42))

	changed := false
	for i := 0; i < 20; i++ {
		if m.Perturb(0.5) != 0.5 {
			changed = true
			break
		}
	}
	if !changed {
		t.Errorf("mechanism never moved the value; no noise applied")
	}
}

func TestProtectPreservesShape(t *testing.T) {
	m := NewMechanismWithSource(1.0, rand.NewSource(7))

	in := models.StressAssessment{
		StressScore:         0.6,
		Confidence:          0.9,
		ContributingFactors: []string{"High: Frequent use of stress-related language"},
		Recommendations:     []string{"Practice mindfulness or relaxation techniques"},
	}
	out := m.Protect(in)

	if out.StressScore < 0 || out.StressScore > 1 {
		t.Errorf("protected stress score %f out of [0,1]", out.StressScore)
	}
	if out.Confidence < 0 || out.Confidence > 1 {
		t.Errorf("protected confidence %f out of [0,1]", out.Confidence)
	}
	if len(out.ContributingFactors) != 1 || out.ContributingFactors[0] != in.ContributingFactors[0] {
		t.Errorf("categorical factors were altered: %v", out.ContributingFactors)
	}
	if len(out.Recommendations) != 1 || out.Recommendations[0] != in.Recommendations[0] {
		t.Errorf("categorical recommendations were altered: %v", out.Recommendations)
	}
}

func TestPerturbSlice(t *testing.T) {
	m := NewMechanismWithSource(1.0, rand.NewSource(3))

	in := []float64{0.1, 0.5, 0.9}
	out := m.PerturbSlice(in)
	if len(out) != len(in) {
		t.Fatalf("slice length changed: %d -> %d", len(in), len(out))
	}
	for i, v := range out {
		if v < 0 || v > 1 {
			t.Errorf("element %d = %f out of [0,1]", i, v)
		}
	}
}

func TestSanitizeTruncatesLists(t *testing.T) {
	long := make([]string, 150)
	for i := range long {
		long[i] = "entry"
	}

	out := Sanitize(models.StressAssessment{
		ContributingFactors: long,
		Recommendations:     []string{"keep"},
	})

	if len(out.ContributingFactors) != 100 {
		t.Errorf("factors length = %d, want 100", len(out.ContributingFactors))
	}
	if len(out.Recommendations) != 1 {
		t.Errorf("short list was modified: %v", out.Recommendations)
	}
}
