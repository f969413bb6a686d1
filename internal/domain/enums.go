package domain

// ItemKind distinguishes vocabulary entries from grammar rules.
// Content shape differs between the two; mastery semantics do not.
type ItemKind string

const (
	ItemKindVocabEntry  ItemKind = "VOCAB_ENTRY"
	ItemKindGrammarRule ItemKind = "GRAMMAR_RULE"
)

func (k ItemKind) String() string { return string(k) }

func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindVocabEntry, ItemKindGrammarRule:
		return true
	}
	return false
}

// ReviewMode selects the judgement vocabulary for a session.
// The two vocabularies are never mixed within one session.
type ReviewMode string

const (
	// ReviewModeGraded is the five-way spaced-repetition review.
	ReviewModeGraded ReviewMode = "GRADED"
	// ReviewModeBinary is the two-way swipe triage pass.
	ReviewModeBinary ReviewMode = "BINARY"
)

func (m ReviewMode) String() string { return string(m) }

func (m ReviewMode) IsValid() bool {
	switch m {
	case ReviewModeGraded, ReviewModeBinary:
		return true
	}
	return false
}

// Judgement is the user's self-assessed review outcome.
// Which values are legal depends on the active ReviewMode.
type Judgement string

const (
	// Graded mode vocabulary.
	JudgementAgain   Judgement = "AGAIN"
	JudgementHard    Judgement = "HARD"
	JudgementGood    Judgement = "GOOD"
	JudgementEasy    Judgement = "EASY"
	JudgementPerfect Judgement = "PERFECT"

	// Binary mode vocabulary.
	JudgementStillLearning Judgement = "STILL_LEARNING"
	JudgementLearned       Judgement = "LEARNED"
)

func (j Judgement) String() string { return string(j) }

// IsValidFor reports whether the judgement belongs to the mode's vocabulary.
func (j Judgement) IsValidFor(mode ReviewMode) bool {
	switch mode {
	case ReviewModeGraded:
		switch j {
		case JudgementAgain, JudgementHard, JudgementGood, JudgementEasy, JudgementPerfect:
			return true
		}
	case ReviewModeBinary:
		switch j {
		case JudgementStillLearning, JudgementLearned:
			return true
		}
	}
	return false
}

// MasteryCategory is the coarse bucket derived from a mastery level.
// It is computed, never stored.
type MasteryCategory string

const (
	MasteryCategoryNew       MasteryCategory = "NEW"
	MasteryCategoryLearning  MasteryCategory = "LEARNING"
	MasteryCategoryFamiliar  MasteryCategory = "FAMILIAR"
	MasteryCategoryConfident MasteryCategory = "CONFIDENT"
	MasteryCategoryMastered  MasteryCategory = "MASTERED"
)

func (c MasteryCategory) String() string { return string(c) }

// MasteryCategoriesAscending returns the categories in mastery order,
// lowest band first.
func MasteryCategoriesAscending() []MasteryCategory {
	return []MasteryCategory{
		MasteryCategoryNew,
		MasteryCategoryLearning,
		MasteryCategoryFamiliar,
		MasteryCategoryConfident,
		MasteryCategoryMastered,
	}
}

func (c MasteryCategory) IsValid() bool {
	switch c {
	case MasteryCategoryNew, MasteryCategoryLearning, MasteryCategoryFamiliar,
		MasteryCategoryConfident, MasteryCategoryMastered:
		return true
	}
	return false
}

// SessionState represents the state of a review session.
type SessionState string

const (
	SessionStateNotStarted SessionState = "NOT_STARTED"
	SessionStateInProgress SessionState = "IN_PROGRESS"
	SessionStateComplete   SessionState = "COMPLETE"
)

func (s SessionState) String() string { return string(s) }

func (s SessionState) IsValid() bool {
	switch s {
	case SessionStateNotStarted, SessionStateInProgress, SessionStateComplete:
		return true
	}
	return false
}

// CEFRLevel is one of the six Common European Framework proficiency bands.
type CEFRLevel string

const (
	CEFRLevelA1 CEFRLevel = "A1"
	CEFRLevelA2 CEFRLevel = "A2"
	CEFRLevelB1 CEFRLevel = "B1"
	CEFRLevelB2 CEFRLevel = "B2"
	CEFRLevelC1 CEFRLevel = "C1"
	CEFRLevelC2 CEFRLevel = "C2"
)

func (l CEFRLevel) String() string { return string(l) }

func (l CEFRLevel) IsValid() bool {
	switch l {
	case CEFRLevelA1, CEFRLevelA2, CEFRLevelB1, CEFRLevelB2, CEFRLevelC1, CEFRLevelC2:
		return true
	}
	return false
}
