package healthquery

import (
	"github.com/healthlink-platform/healthlink/internal/ai"
	"github.com/healthlink-platform/healthlink/internal/checklist"
	"github.com/healthlink-platform/healthlink/internal/sources"
)

// SafetyNotice is included in every successful response.
const SafetyNotice = "본 정보는 의료 진단/처방이 아닌 참고용 안내입니다. 응급/위험 증상 시 119 또는 의료기관에 즉시 연락하세요."

// QueryRequest is the single request shape of the query endpoint,
// discriminated by mode/stage. The legacy form carries only question.
type QueryRequest struct {
	Mode     string  `json:"mode" validate:"omitempty,oneof=intake info"`
	Stage    string  `json:"stage" validate:"omitempty,oneof=followup final answer"`
	Input    string  `json:"input" validate:"max=4000"`
	Question string  `json:"question" validate:"max=4000"`
	QA       []ai.QA `json:"qa" validate:"omitempty,max=60,dive"`
}

// Safety wraps the notice for the intake response shapes.
type Safety struct {
	Notice string `json:"notice"`
}

// FollowupResponse returns the checklist without consuming quota.
type FollowupResponse struct {
	Mode      string              `json:"mode"`
	Stage     string              `json:"stage"`
	Checklist []checklist.Section `json:"checklist"`
	Safety    Safety              `json:"safety"`
	Sources   []sources.Item      `json:"sources"`
}

// InfoResponse is the free-form answer shape. Safety is a bare string here;
// the front end has depended on that since before the intake flow existed.
type InfoResponse struct {
	Safety  string         `json:"safety"`
	Answer  string         `json:"answer"`
	Claims  []ai.Claim     `json:"claims"`
	Sources []sources.Item `json:"sources"`
}

// IntakeFinalResponse is the structured pre-visit briefing shape.
type IntakeFinalResponse struct {
	Safety             Safety              `json:"safety"`
	PreVisitBriefing   ai.PreVisitBriefing `json:"preVisitBriefing"`
	QuestionsForDoctor []string            `json:"questionsForDoctor"`
	RedFlags           []string            `json:"redFlags"`
	Sources            []sources.Item      `json:"sources"`
}
