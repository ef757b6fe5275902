// Package checklist holds the fixed pre-visit checklist definition. The
// content is static configuration, versioned in code, never AI-generated.
package checklist

type ItemType string

const (
	TypeText  ItemType = "text"
	TypeYesNo ItemType = "yesno"
	TypeScale ItemType = "scale"
	TypeMulti ItemType = "multi"
)

type Item struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     ItemType `json:"type"`
	Options  []string `json:"options,omitempty"`
	Optional bool     `json:"optional,omitempty"`
	Help     string   `json:"help,omitempty"`
}

type Section struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Optional bool   `json:"optional,omitempty"`
	Items    []Item `json:"items"`
}

// V1 is the pre-visit briefing checklist, version 1.
var V1 = []Section{
	{
		ID:    "sec0",
		Title: "0. 방문 목적",
		Items: []Item{
			{ID: "visitPurpose", Label: "이번 진료에서 가장 해결하고 싶은 것은?", Type: TypeText, Help: "한 줄로 적어 주세요"},
		},
	},
	{
		ID:    "sec1",
		Title: "1. 주 증상 / 주호소",
		Items: []Item{
			{ID: "topConcerns", Label: "가장 불편한 증상 (최대 3개)", Type: TypeText, Help: "쉼표로 구분하여 입력"},
		},
	},
	{
		ID:    "sec2",
		Title: "2. 증상 상세",
		Items: []Item{
			{ID: "onset", Label: "언제 시작되었나요?", Type: TypeText, Help: "예: 3일 전, 2주 전"},
			{ID: "course", Label: "경과는 어떤가요?", Type: TypeMulti, Options: []string{"점점 악화", "비슷하게 유지", "좋아지는 중", "오락가락", "모름"}},
			{ID: "location", Label: "부위는 어디인가요?", Type: TypeText, Help: "예: 오른쪽 어깨, 양쪽 무릎"},
			{ID: "quality", Label: "어떤 느낌인가요?", Type: TypeMulti, Options: []string{"욱신거림", "찌릿찌릿", "둔한 통증", "날카로운 통증", "조이는 느낌", "화끈거림", "기타"}},
			{ID: "qualityEtc", Label: "기타 느낌 (서술)", Type: TypeText, Optional: true},
			{ID: "severity", Label: "강도 (0~10)", Type: TypeScale, Help: "0 = 전혀 없음, 10 = 참을 수 없음"},
			{ID: "frequencyDuration", Label: "얼마나 자주, 얼마나 오래 지속되나요?", Type: TypeText, Help: "예: 하루 3~4회, 각 30분씩"},
		},
	},
	{
		ID:    "sec3",
		Title: "3. 위험 징후 체크",
		Items: []Item{
			{ID: "rf_chestPain", Label: "갑작스러운 가슴 통증/압박감이 있나요?", Type: TypeYesNo},
			{ID: "rf_breathing", Label: "호흡 곤란 또는 숨가쁨이 있나요?", Type: TypeYesNo},
			{ID: "rf_consciousness", Label: "의식이 흐려지거나 실신한 적이 있나요?", Type: TypeYesNo},
			{ID: "rf_severeHeadache", Label: "갑작스럽고 극심한 두통이 있나요?", Type: TypeYesNo},
			{ID: "rf_numbWeakness", Label: "한쪽 팔/다리 마비 또는 힘빠짐이 있나요?", Type: TypeYesNo},
			{ID: "rf_bleeding", Label: "지속적인 출혈(혈변, 혈뇨, 객혈 등)이 있나요?", Type: TypeYesNo},
			{ID: "rf_highFever", Label: "39°C 이상 고열이 지속되나요?", Type: TypeYesNo},
		},
	},
	{
		ID:    "sec4",
		Title: "4. 악화 / 완화 요인",
		Items: []Item{
			{ID: "worseFactors", Label: "증상이 악화되는 상황", Type: TypeMulti, Options: []string{"활동 시", "안정 시", "특정 자세", "식후", "스트레스", "아침", "저녁/밤", "기타"}},
			{ID: "worseFactorsEtc", Label: "악화 요인 기타 (서술)", Type: TypeText, Optional: true},
			{ID: "reliefFactors", Label: "증상이 완화되는 상황", Type: TypeMulti, Options: []string{"휴식", "움직임", "냉찜질", "온찜질", "진통제 복용", "특정 자세", "기타"}},
			{ID: "reliefFactorsEtc", Label: "완화 요인 기타 (서술)", Type: TypeText, Optional: true},
		},
	},
	{
		ID:    "sec5",
		Title: "5. 동반 증상",
		Items: []Item{
			{ID: "associatedSymptoms", Label: "함께 나타나는 증상이 있나요?", Type: TypeMulti, Options: []string{"두통", "어지러움", "메스꺼움/구토", "발열", "피로감", "수면장애", "식욕변화", "체중변화", "없음", "기타"}},
			{ID: "associatedSymptomsEtc", Label: "동반 증상 기타 (서술)", Type: TypeText, Optional: true},
		},
	},
	{
		ID:    "sec6",
		Title: "6. 최근 트리거 / 계기",
		Items: []Item{
			{ID: "recentTriggers", Label: "최근 계기가 될 만한 사건이 있었나요?", Type: TypeMulti, Options: []string{"외상/부상", "수술", "여행", "새로운 약 복용", "생활 변화", "감염(감기 등)", "없음", "기타"}},
			{ID: "recentTriggersEtc", Label: "트리거 기타 (서술)", Type: TypeText, Optional: true},
		},
	},
	{
		ID:       "sec7",
		Title:    "7. 현재 복용 약 / 보충제",
		Optional: true,
		Items: []Item{
			{ID: "medsSupplements", Label: "현재 복용 중인 약이나 보충제가 있나요?", Type: TypeText, Help: "약 이름, 용도 등 자유 서술"},
		},
	},
	{
		ID:       "sec8",
		Title:    "8. 알레르기 / 이상반응",
		Optional: true,
		Items: []Item{
			{ID: "allergies", Label: "알려진 알레르기나 약물 이상반응이 있나요?", Type: TypeText, Help: "예: 페니실린 알레르기, 해산물 알레르기"},
		},
	},
	{
		ID:       "sec9",
		Title:    "9. 과거 병력 / 검사",
		Optional: true,
		Items: []Item{
			{ID: "pastHistory", Label: "관련된 과거 병력이나 검사 결과가 있나요?", Type: TypeText, Help: "진단명, 수술력, 최근 검사 결과 등"},
			{ID: "familyHistory", Label: "가족력이 있나요?", Type: TypeText, Optional: true, Help: "관련된 가족 병력"},
		},
	},
	{
		ID:       "sec10",
		Title:    "10. 생활습관 / 노출 / 임신 관련",
		Optional: true,
		Items: []Item{
			{ID: "lifestyleExposure", Label: "관련 생활습관이나 환경 노출이 있나요?", Type: TypeText, Optional: true, Help: "흡연, 음주, 직업적 노출 등"},
			{ID: "pregnancyRelated", Label: "임신 가능성 또는 관련 사항이 있나요?", Type: TypeYesNo, Optional: true},
		},
	},
}
