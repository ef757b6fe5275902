package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer_DropsInvalidCitesAndUncitedClaims(t *testing.T) {
	content := `{
		"answer": "요약입니다.",
		"claims": [
			{"text": "claim with valid cites", "cites": ["kdca", "who"]},
			{"text": "claim with mixed cites", "cites": ["pubmed", "wikipedia"]},
			{"text": "claim with only invalid cites", "cites": ["blogspot"]},
			{"text": "claim with no cites", "cites": []},
			{"text": "", "cites": ["kdca"]},
			{"text": "   ", "cites": ["kdca"]}
		]
	}`

	res, err := parseAnswer(content)
	require.NoError(t, err)

	assert.Equal(t, "요약입니다.", res.Answer)
	require.Len(t, res.Claims, 2)
	assert.Equal(t, []string{"kdca", "who"}, res.Claims[0].Cites)
	assert.Equal(t, []string{"pubmed"}, res.Claims[1].Cites)
}

func TestParseAnswer_WrongTypes(t *testing.T) {
	res, err := parseAnswer(`{"answer": 42, "claims": [{"text": 1, "cites": ["kdca"]}, {"text": "ok", "cites": [7, "who"]}]}`)
	require.NoError(t, err)

	assert.Equal(t, "", res.Answer)
	require.Len(t, res.Claims, 1)
	assert.Equal(t, []string{"who"}, res.Claims[0].Cites)
}

func TestParseAnswer_MalformedJSON(t *testing.T) {
	_, err := parseAnswer(`not json at all`)
	assert.Error(t, err)
}

func TestParseAnswer_EmptyClaims(t *testing.T) {
	res, err := parseAnswer(`{"answer": "ok"}`)
	require.NoError(t, err)
	assert.NotNil(t, res.Claims)
	assert.Empty(t, res.Claims)
}

func TestParseBriefing_ClampsOneLiner(t *testing.T) {
	// 3 sentences, 200 chars total: must come out as exactly 1 sentence and
	// at most 120 runes.
	long := strings.Repeat("가", 64) + ". " + strings.Repeat("나", 64) + ". " + strings.Repeat("다", 64) + "."
	require.Greater(t, utf8.RuneCountInString(long), 190)

	res := parseBriefing(`{"preVisitBriefing": {"oneLiner": ` + jsonString(long) + `}}`)

	got := res.PreVisitBriefing.OneLiner
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 120)
	assert.Equal(t, 1, strings.Count(got, "."), "one sentence terminator")
	assert.False(t, strings.Contains(got, "나"), "second sentence must be gone")
}

func TestParseBriefing_TruncationMarker(t *testing.T) {
	long := strings.Repeat("통", 300) + "."
	res := parseBriefing(`{"preVisitBriefing": {"oneLiner": ` + jsonString(long) + `}}`)

	got := res.PreVisitBriefing.OneLiner
	assert.Equal(t, 120, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestParseBriefing_VisitPurposeTwoSentences(t *testing.T) {
	res := parseBriefing(`{"preVisitBriefing": {"visitPurpose": "첫 문장입니다. 둘째 문장입니다. 셋째 문장입니다."}}`)
	assert.Equal(t, "첫 문장입니다. 둘째 문장입니다.", res.PreVisitBriefing.VisitPurpose)
}

func TestParseBriefing_ClampsLists(t *testing.T) {
	res := parseBriefing(`{
		"preVisitBriefing": {
			"topConcerns": ["a","b","c","d","e","f","g","h"],
			"symptomsSummary": {"worseFactors": ["x", "", "  ", 5, "y"]}
		},
		"questionsForDoctor": ["q1","q2","q3","q4","q5"],
		"redFlags": ["r1","r2","r3","r4","r5","r6","r7"]
	}`)

	assert.Len(t, res.PreVisitBriefing.TopConcerns, 6)
	assert.Equal(t, []string{"x", "y"}, res.PreVisitBriefing.SymptomsSummary.WorseFactors)
	assert.Len(t, res.QuestionsForDoctor, 3)
	assert.Len(t, res.RedFlags, 6)
}

func TestParseBriefing_MalformedJSONClampsToEmpty(t *testing.T) {
	res := parseBriefing(`{{{`)

	assert.Equal(t, EmptyBriefing(), res)
	assert.NotNil(t, res.QuestionsForDoctor)
	assert.NotNil(t, res.RedFlags)
	assert.NotNil(t, res.PreVisitBriefing.TopConcerns)
}

func TestParseBriefing_MissingFieldsDefaultEmpty(t *testing.T) {
	res := parseBriefing(`{}`)

	assert.Equal(t, "", res.PreVisitBriefing.OneLiner)
	assert.Empty(t, res.PreVisitBriefing.SymptomsSummary.AssociatedSymptoms)
	assert.Empty(t, res.QuestionsForDoctor)
	assert.Empty(t, res.RedFlags)
}

func TestClampSentences_NoTerminator(t *testing.T) {
	assert.Equal(t, "끝맺음 없는 문장", clampSentences("끝맺음 없는 문장", 1))
}

func TestClampText_ShortStringUntouched(t *testing.T) {
	assert.Equal(t, "짧은 요약", clampText("  짧은 요약  ", 120))
}

func jsonString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')
	return b.String()
}
