package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	summary := Describe([]float64{4, 1, 3, 2, 5})

	assert.Equal(t, 5, summary.Count)
	assert.InDelta(t, 3.0, summary.Mean, 1e-12)
	assert.InDelta(t, 1.5811388300841898, summary.Std, 1e-12)
	assert.Equal(t, 1.0, summary.Min)
	assert.Equal(t, 2.0, summary.Q25)
	assert.Equal(t, 3.0, summary.Median)
	assert.Equal(t, 4.0, summary.Q75)
	assert.Equal(t, 5.0, summary.Max)
}

func TestDescribeInterpolates(t *testing.T) {
	summary := Describe([]float64{0, 10})

	assert.Equal(t, 2.5, summary.Q25)
	assert.Equal(t, 5.0, summary.Median)
	assert.Equal(t, 7.5, summary.Q75)
}

func TestDescribeSmall(t *testing.T) {
	assert.Equal(t, FrequencySummary{}, Describe(nil))

	single := Describe([]float64{7})
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, 0.0, single.Std)
	assert.Equal(t, 7.0, single.Median)
}

func TestMissingJoinKeyError(t *testing.T) {
	err := &MissingJoinKeyError{StopID: "8000001"}
	assert.Equal(t, "stop 8000001 appears in stop_times but not in stops", err.Error())
}
