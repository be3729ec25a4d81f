package banditpam

import (
	"bytes"
	"strings"
	"testing"
)

func TestQuantileSorted_Endpoints(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	if got := quantileSorted(sorted, 0); got != 1 {
		t.Errorf("quantile(0) = %v, want 1", got)
	}
	if got := quantileSorted(sorted, 1); got != 5 {
		t.Errorf("quantile(1) = %v, want 5", got)
	}
	if got := quantileSorted(sorted, 0.5); got != 3 {
		t.Errorf("quantile(0.5) = %v, want 3", got)
	}
}

func TestQuantileSorted_SingleValue(t *testing.T) {
	if got := quantileSorted([]float64{42}, 0.5); got != 42 {
		t.Errorf("quantile of singleton = %v, want 42", got)
	}
}

func TestSortedCopy_LeavesInputUntouched(t *testing.T) {
	values := []float64{3, 1, 2}
	sortedCopy(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("sortedCopy mutated its input: %v", values)
	}
}

func TestNoopObserver_DoesNothing(t *testing.T) {
	var obs Observer = noopObserver{}
	obs.OnBuildSigma(sigmaStats{})
	obs.OnSwapSigma(sigmaStats{})
	obs.OnComplete(Summary{})
}

func TestFileObserver_WritesSigmaAndSummaryLines(t *testing.T) {
	var buf bytes.Buffer
	obs := newFileObserver(&buf)

	obs.OnBuildSigma(sigmaStats{Min: 1, P25: 2, Median: 3, P75: 4, Max: 5, Mean: 3})
	obs.OnSwapSigma(sigmaStats{Min: 0, P25: 0, Median: 0, P75: 0, Max: 0, Mean: 0})
	obs.OnComplete(Summary{MedoidsBuild: []int{0, 1}, MedoidsFinal: []int{0, 2}, Steps: 3, FinalLoss: 12.5})

	out := buf.String()
	for _, want := range []string{
		"build_sigma:", "swap_sigma:", "medoids_build: [0 1]", "medoids_final: [0 2]", "steps: 3", "final_loss: 12.5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\nfull output:\n%s", want, out)
		}
	}
}
