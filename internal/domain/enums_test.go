package domain

import "testing"

func TestItemKind_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind ItemKind
		want bool
	}{
		{ItemKindVocabEntry, true},
		{ItemKindGrammarRule, true},
		{ItemKind("INVALID"), false},
		{ItemKind(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("ItemKind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestReviewMode_IsValid(t *testing.T) {
	t.Parallel()

	if !ReviewModeGraded.IsValid() || !ReviewModeBinary.IsValid() {
		t.Error("declared modes must be valid")
	}
	if ReviewMode("SWIPE").IsValid() {
		t.Error("undeclared mode must be invalid")
	}
}

func TestJudgement_IsValidFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		judgement Judgement
		mode      ReviewMode
		want      bool
	}{
		{JudgementAgain, ReviewModeGraded, true},
		{JudgementHard, ReviewModeGraded, true},
		{JudgementGood, ReviewModeGraded, true},
		{JudgementEasy, ReviewModeGraded, true},
		{JudgementPerfect, ReviewModeGraded, true},
		{JudgementStillLearning, ReviewModeBinary, true},
		{JudgementLearned, ReviewModeBinary, true},

		// Vocabularies are never mixed across modes.
		{JudgementLearned, ReviewModeGraded, false},
		{JudgementStillLearning, ReviewModeGraded, false},
		{JudgementGood, ReviewModeBinary, false},
		{JudgementPerfect, ReviewModeBinary, false},

		{Judgement("OK"), ReviewModeGraded, false},
		{Judgement(""), ReviewModeBinary, false},
		{JudgementGood, ReviewMode("INVALID"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.judgement)+"/"+string(tt.mode), func(t *testing.T) {
			t.Parallel()
			if got := tt.judgement.IsValidFor(tt.mode); got != tt.want {
				t.Errorf("Judgement(%q).IsValidFor(%q) = %v, want %v",
					tt.judgement, tt.mode, got, tt.want)
			}
		})
	}
}

func TestSessionState_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []SessionState{SessionStateNotStarted, SessionStateInProgress, SessionStateComplete} {
		if !s.IsValid() {
			t.Errorf("SessionState(%q) should be valid", s)
		}
	}
	if SessionState("DONE").IsValid() {
		t.Error("undeclared state must be invalid")
	}
}

func TestCEFRLevel_IsValid(t *testing.T) {
	t.Parallel()

	for _, l := range []CEFRLevel{CEFRLevelA1, CEFRLevelA2, CEFRLevelB1, CEFRLevelB2, CEFRLevelC1, CEFRLevelC2} {
		if !l.IsValid() {
			t.Errorf("CEFRLevel(%q) should be valid", l)
		}
	}
	if CEFRLevel("D1").IsValid() {
		t.Error("undeclared level must be invalid")
	}
}
