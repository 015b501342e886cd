package translation

import (
	"strings"
	"testing"
)

func TestEstimateTokens_KnownValues(t *testing.T) {
	tests := []struct {
		name        string
		original    string
		translated  string
		premiumPass bool
		want        int64
	}{
		{
			name:       "empty texts cost only the overhead",
			original:   "",
			translated: "",
			want:       50,
		},
		{
			name:       "four chars each",
			original:   "abcd",
			translated: "wxyz",
			want:       1 + 2 + 50,
		},
		{
			name:       "partial token rounds up",
			original:   "abcde",
			translated: "xyz",
			want:       2 + 2 + 50,
		},
		{
			name:        "premium pass surcharge",
			original:    "abcd",
			translated:  "wxyz",
			premiumPass: true,
			want:        1 + 2 + 50 + 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateTokens(tt.original, tt.translated, tt.premiumPass)
			if got != tt.want {
				t.Errorf("EstimateTokens() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimateTokens_Monotonic(t *testing.T) {
	base := EstimateTokens("hello world", "привіт світ", false)

	longerInput := EstimateTokens("hello world and then some", "привіт світ", false)
	if longerInput <= base {
		t.Errorf("longer input should cost more: %d <= %d", longerInput, base)
	}

	longerOutput := EstimateTokens("hello world", "привіт світ і ще трохи", false)
	if longerOutput <= base {
		t.Errorf("longer output should cost more: %d <= %d", longerOutput, base)
	}

	withPass := EstimateTokens("hello world", "привіт світ", true)
	if withPass <= base {
		t.Errorf("premium pass should cost strictly more: %d <= %d", withPass, base)
	}

	// Strictly increasing across a range of lengths.
	prev := int64(-1)
	for n := 0; n < 64; n += 4 {
		cost := EstimateTokens(strings.Repeat("a", n), "", false)
		if cost <= prev {
			t.Fatalf("cost not strictly increasing at length %d: %d <= %d", n, cost, prev)
		}
		prev = cost
	}
}
