package domain

import "testing"

func TestBandFor_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  CEFRLevel
	}{
		{0, CEFRLevelA1},
		{39, CEFRLevelA1},
		{40, CEFRLevelA2},
		{54, CEFRLevelA2},
		{55, CEFRLevelB1},
		{69, CEFRLevelB1},
		{70, CEFRLevelB2},
		{79, CEFRLevelB2},
		{80, CEFRLevelC1},
		{89, CEFRLevelC1},
		{90, CEFRLevelC2},
		{100, CEFRLevelC2},
		// Out-of-range input is clamped before lookup.
		{-10, CEFRLevelA1},
		{120, CEFRLevelC2},
	}
	for _, tt := range tests {
		if got := BandFor(tt.score); got.Level != tt.want {
			t.Errorf("BandFor(%d).Level = %s, want %s", tt.score, got.Level, tt.want)
		}
	}
}

func TestBandFor_CarriesThresholdAndDescription(t *testing.T) {
	t.Parallel()

	b := BandFor(85)
	if b.ThresholdLow != 80 {
		t.Errorf("ThresholdLow = %d, want 80", b.ThresholdLow)
	}
	if b.Description == "" {
		t.Error("Description should not be empty")
	}
}
