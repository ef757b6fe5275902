package ai

// Claim is one atomic assertion with its citation aliases. Claims that end
// up with zero valid cites are dropped during parsing and never reach the
// client.
type Claim struct {
	Text  string   `json:"text"`
	Cites []string `json:"cites"`
}

// AnswerResult is the parsed output of the free-form answer generator.
type AnswerResult struct {
	Answer string  `json:"answer"`
	Claims []Claim `json:"claims"`
}

// QA is one checklist question/answer pair from the intake flow.
type QA struct {
	Q string `json:"q" validate:"required"`
	A string `json:"a"`
}

// SymptomsSummary is the structured symptom section of a briefing.
type SymptomsSummary struct {
	Onset              string   `json:"onset"`
	Course             string   `json:"course"`
	Location           string   `json:"location"`
	Quality            string   `json:"quality"`
	Severity0to10      string   `json:"severity0to10"`
	FrequencyDuration  string   `json:"frequencyDuration"`
	WorseFactors       []string `json:"worseFactors"`
	ReliefFactors      []string `json:"reliefFactors"`
	AssociatedSymptoms []string `json:"associatedSymptoms"`
	RecentTriggers     []string `json:"recentTriggers"`
}

// PreVisitBriefing is the structured pre-visit summary. Every field defaults
// to an empty string or array; length ceilings are enforced post-hoc by the
// parser regardless of what the generator returns.
type PreVisitBriefing struct {
	OneLiner                  string          `json:"oneLiner"`
	VisitPurpose              string          `json:"visitPurpose"`
	TopConcerns               []string        `json:"topConcerns"`
	SymptomsSummary           SymptomsSummary `json:"symptomsSummary"`
	MedsSupplements           string          `json:"medsSupplements"`
	AllergiesAdverseReactions string          `json:"allergiesAdverseReactions"`
	PastHistoryAndTests       string          `json:"pastHistoryAndTests"`
	FamilyHistory             string          `json:"familyHistory"`
	LifestyleExposure         string          `json:"lifestyleExposure"`
	PregnancyRelated          string          `json:"pregnancyRelated"`
}

// BriefingResult is the parsed output of the intake briefing generator.
type BriefingResult struct {
	PreVisitBriefing   PreVisitBriefing `json:"preVisitBriefing"`
	QuestionsForDoctor []string         `json:"questionsForDoctor"`
	RedFlags           []string         `json:"redFlags"`
}

// EmptyBriefing returns a BriefingResult with every field at its zero
// content but non-nil slices, so clients always see arrays.
func EmptyBriefing() *BriefingResult {
	return &BriefingResult{
		PreVisitBriefing: PreVisitBriefing{
			TopConcerns: []string{},
			SymptomsSummary: SymptomsSummary{
				WorseFactors:       []string{},
				ReliefFactors:      []string{},
				AssociatedSymptoms: []string{},
				RecentTriggers:     []string{},
			},
		},
		QuestionsForDoctor: []string{},
		RedFlags:           []string{},
	}
}
