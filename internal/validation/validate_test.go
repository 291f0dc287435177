package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const improvedFixture = `Jane Doe
jane@example.com

EXPERIENCE
Senior Engineer at Initech
Built the billing service and cut infra spend

EDUCATION
BSc Computer Science

SKILLS
Python, Go, Kubernetes`

func TestValidate_FullPreservationPasses(t *testing.T) {
	placed := strings.Split(improvedFixture, "\n")

	result := Validate(improvedFixture, placed)

	assert.True(t, result.Passed)
	assert.InDelta(t, 1.0, result.PreservationRatio, 0.001)
	assert.Zero(t, result.MissingWordCount)
	assert.Empty(t, result.MissingSections)
}

func TestValidate_LowRatioFails(t *testing.T) {
	placed := []string{"Jane Doe", "EXPERIENCE", "EDUCATION", "SKILLS", "summary of nothing"}

	result := Validate(improvedFixture, placed)

	assert.False(t, result.Passed)
	assert.Less(t, result.PreservationRatio, MinPreservationRatio)
}

func TestValidate_MissingCriticalSectionFails(t *testing.T) {
	// Everything placed except the EDUCATION section.
	var placed []string
	for _, line := range strings.Split(improvedFixture, "\n") {
		if strings.Contains(strings.ToLower(line), "education") {
			continue
		}
		placed = append(placed, line)
	}

	result := Validate(improvedFixture, placed)

	assert.False(t, result.Passed)
	assert.Contains(t, result.MissingSections, "education")
}

func TestValidate_WrappingArtifactsDoNotCount(t *testing.T) {
	// The renderer wrapped one long line into segments; the words and
	// normalized characters are all still there.
	original := "Built the billing service and cut infra spend by a meaningful amount"
	placed := []string{"Built the billing service and cut", "infra spend by a meaningful amount"}

	result := Validate(original, placed)

	assert.True(t, result.Passed)
	assert.InDelta(t, 1.0, result.PreservationRatio, 0.02)
}

func TestValidate_EmptyOriginalPasses(t *testing.T) {
	result := Validate("", nil)
	assert.True(t, result.Passed)
	assert.Equal(t, 1.0, result.PreservationRatio)
}

func TestValidate_MissingWordFraction(t *testing.T) {
	original := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	placed := []string{"alpha beta gamma delta epsilon zeta eta theta"}

	result := Validate(original, placed)

	assert.Equal(t, 2, result.MissingWordCount)
	assert.InDelta(t, 0.2, result.MissingWordFraction, 0.001)
	assert.False(t, result.Passed, "missing-word fraction exceeds the threshold")
}

func TestPreservationError_Message(t *testing.T) {
	result := Validate(improvedFixture, []string{"Jane Doe"})
	err := &PreservationError{Result: result}

	assert.Contains(t, err.Error(), "content preservation failed")
	assert.Contains(t, err.Error(), "sections lost")
}
