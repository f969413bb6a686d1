package domain

// ProficiencyBand is a CEFR band with its description and the lowest
// aggregate score that maps into it.
type ProficiencyBand struct {
	Level        CEFRLevel
	Description  string
	ThresholdLow int
}

// bands are evaluated high to low; first match wins.
var bands = []ProficiencyBand{
	{Level: CEFRLevelC2, Description: "Mastery: near-native command", ThresholdLow: 90},
	{Level: CEFRLevelC1, Description: "Advanced: fluent and flexible use", ThresholdLow: 80},
	{Level: CEFRLevelB2, Description: "Upper intermediate: independent user", ThresholdLow: 70},
	{Level: CEFRLevelB1, Description: "Intermediate: handles familiar matters", ThresholdLow: 55},
	{Level: CEFRLevelA2, Description: "Elementary: routine communication", ThresholdLow: 40},
	{Level: CEFRLevelA1, Description: "Beginner: basic phrases and needs", ThresholdLow: 0},
}

// BandFor maps an aggregate score (0-100) to its CEFR band.
// Out-of-range scores are clamped before lookup, so the function is total.
func BandFor(score int) ProficiencyBand {
	score = ClampMastery(score)
	for _, b := range bands {
		if score >= b.ThresholdLow {
			return b
		}
	}
	return bands[len(bands)-1]
}
