package utils

import (
	"sort"
	"testing"
)

func TestCompareNumeric(t *testing.T) {
	names := []string{"n_10", "n_2", "entry_n_1", "n_9", "n_100", "n_2"}
	sort.Slice(names, func(i, j int) bool {
		return CompareNumeric(names[i], names[j]) < 0
	})

	expected := []string{"entry_n_1", "n_2", "n_2", "n_9", "n_10", "n_100"}
	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("sorted as %v, expected %v", names, expected)
		}
	}
}

func TestCompareNumericLeadingZeros(t *testing.T) {
	if CompareNumeric("n_007", "n_7") != 0 {
		t.Error("numerically equal runs should compare equal")
	}
	if CompareNumeric("n_08", "n_9") >= 0 {
		t.Error("n_08 should precede n_9")
	}
	if CompareNumeric("a", "ab") >= 0 {
		t.Error("prefix should come first")
	}
}
