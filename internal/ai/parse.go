package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// citeVocabulary is the only set of aliases a claim may cite. Anything else
// the model asserts is dropped, and a claim left without cites is dropped
// with it.
var citeVocabulary = map[string]struct{}{
	"kdca":        {},
	"who":         {},
	"cdc":         {},
	"pubmed":      {},
	"medlineplus": {},
	"nice":        {},
}

// parseAnswer decodes the answer generator's JSON output, dropping invalid
// cite aliases and uncited or empty claims. Malformed JSON is an error: the
// info path has nothing to show without an answer.
func parseAnswer(content string) (*AnswerResult, error) {
	var raw struct {
		Answer json.RawMessage `json:"answer"`
		Claims []struct {
			Text  json.RawMessage   `json:"text"`
			Cites []json.RawMessage `json:"cites"`
		} `json:"claims"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("decoding answer payload: %w", err)
	}

	res := &AnswerResult{
		Answer: safeString(raw.Answer),
		Claims: []Claim{},
	}

	for _, c := range raw.Claims {
		text := strings.TrimSpace(safeString(c.Text))
		if text == "" {
			continue
		}
		var cites []string
		for _, rawCite := range c.Cites {
			id := safeString(rawCite)
			if _, ok := citeVocabulary[id]; ok {
				cites = append(cites, id)
			}
		}
		if len(cites) == 0 {
			continue
		}
		res.Claims = append(res.Claims, Claim{Text: text, Cites: cites})
	}

	return res, nil
}

// Briefing length ceilings. The generator is prompted to respect these, but
// the clamp here is what actually guarantees them.
const (
	maxOneLinerChars     = 120
	maxFieldChars        = 240
	maxListItems         = 6
	maxDoctorQuestions   = 3
	maxRedFlags          = 6
	maxOneLinerSentences = 1
	maxPurposeSentences  = 2
)

// parseBriefing decodes the briefing generator's JSON output and clamps
// every field deterministically. It never fails: a malformed payload clamps
// down to an empty briefing.
func parseBriefing(content string) *BriefingResult {
	var raw struct {
		PreVisitBriefing struct {
			OneLiner        json.RawMessage `json:"oneLiner"`
			VisitPurpose    json.RawMessage `json:"visitPurpose"`
			TopConcerns     json.RawMessage `json:"topConcerns"`
			SymptomsSummary struct {
				Onset              json.RawMessage `json:"onset"`
				Course             json.RawMessage `json:"course"`
				Location           json.RawMessage `json:"location"`
				Quality            json.RawMessage `json:"quality"`
				Severity0to10      json.RawMessage `json:"severity0to10"`
				FrequencyDuration  json.RawMessage `json:"frequencyDuration"`
				WorseFactors       json.RawMessage `json:"worseFactors"`
				ReliefFactors      json.RawMessage `json:"reliefFactors"`
				AssociatedSymptoms json.RawMessage `json:"associatedSymptoms"`
				RecentTriggers     json.RawMessage `json:"recentTriggers"`
			} `json:"symptomsSummary"`
			MedsSupplements           json.RawMessage `json:"medsSupplements"`
			AllergiesAdverseReactions json.RawMessage `json:"allergiesAdverseReactions"`
			PastHistoryAndTests       json.RawMessage `json:"pastHistoryAndTests"`
			FamilyHistory             json.RawMessage `json:"familyHistory"`
			LifestyleExposure         json.RawMessage `json:"lifestyleExposure"`
			PregnancyRelated          json.RawMessage `json:"pregnancyRelated"`
		} `json:"preVisitBriefing"`
		QuestionsForDoctor json.RawMessage `json:"questionsForDoctor"`
		RedFlags           json.RawMessage `json:"redFlags"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return EmptyBriefing()
	}

	b := raw.PreVisitBriefing
	s := b.SymptomsSummary

	return &BriefingResult{
		PreVisitBriefing: PreVisitBriefing{
			OneLiner:     clampText(clampSentences(safeString(b.OneLiner), maxOneLinerSentences), maxOneLinerChars),
			VisitPurpose: clampText(clampSentences(safeString(b.VisitPurpose), maxPurposeSentences), maxFieldChars),
			TopConcerns:  clampList(b.TopConcerns, maxListItems),
			SymptomsSummary: SymptomsSummary{
				Onset:              clampText(safeString(s.Onset), maxFieldChars),
				Course:             clampText(safeString(s.Course), maxFieldChars),
				Location:           clampText(safeString(s.Location), maxFieldChars),
				Quality:            clampText(safeString(s.Quality), maxFieldChars),
				Severity0to10:      safeString(s.Severity0to10),
				FrequencyDuration:  clampText(safeString(s.FrequencyDuration), maxFieldChars),
				WorseFactors:       clampList(s.WorseFactors, maxListItems),
				ReliefFactors:      clampList(s.ReliefFactors, maxListItems),
				AssociatedSymptoms: clampList(s.AssociatedSymptoms, maxListItems),
				RecentTriggers:     clampList(s.RecentTriggers, maxListItems),
			},
			MedsSupplements:           clampText(safeString(b.MedsSupplements), maxFieldChars),
			AllergiesAdverseReactions: clampText(safeString(b.AllergiesAdverseReactions), maxFieldChars),
			PastHistoryAndTests:       clampText(safeString(b.PastHistoryAndTests), maxFieldChars),
			FamilyHistory:             clampText(safeString(b.FamilyHistory), maxFieldChars),
			LifestyleExposure:         clampText(safeString(b.LifestyleExposure), maxFieldChars),
			PregnancyRelated:          clampText(safeString(b.PregnancyRelated), maxFieldChars),
		},
		QuestionsForDoctor: clampList(raw.QuestionsForDoctor, maxDoctorQuestions),
		RedFlags:           clampList(raw.RedFlags, maxRedFlags),
	}
}

// safeString decodes raw as a JSON string, returning "" for any other type.
func safeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// clampText trims s to at most maxChars runes, marking truncation with "…".
func clampText(s string, maxChars int) string {
	t := strings.TrimSpace(s)
	runes := []rune(t)
	if len(runes) <= maxChars {
		return t
	}
	return string(runes[:maxChars-1]) + "…"
}

var sentencePattern = regexp.MustCompile(`[^.?!。]+[.?!。]+`)

// clampSentences keeps at most maxSentences sentences, split on .?!。
// terminators. Text without terminators passes through whole.
func clampSentences(s string, maxSentences int) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return t
	}
	matches := sentencePattern.FindAllString(t, -1)
	if matches == nil || len(matches) <= maxSentences {
		return t
	}
	return strings.TrimSpace(strings.Join(matches[:maxSentences], ""))
}

// clampList decodes raw as a string array, dropping non-string and blank
// elements, keeping at most maxLen. Always returns a non-nil slice.
func clampList(raw json.RawMessage, maxLen int) []string {
	out := []string{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, it := range items {
		s := safeString(it)
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
		if len(out) == maxLen {
			break
		}
	}
	return out
}
