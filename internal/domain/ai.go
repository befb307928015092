package domain

import "context"

// Input bounds for the AI operations. Bounds are inclusive: a text of
// exactly the minimum or maximum length is accepted.
const (
	ParseTextMinLength = 50
	ParseTextMaxLength = 10000

	JobDescriptionMinLength = 50
	JobDescriptionMaxLength = 5000

	ImproveTextMinLength = 10
	ImproveTextMaxLength = 1000
)

// AIUsageLimits caps AI requests per user per UTC day. Consumed by the
// quota counter at the delivery boundary, not by the use-cases.
type AIUsageLimits struct {
	FreeDaily    int
	PremiumDaily int
}

// ForPremium returns the applicable daily cap.
func (l AIUsageLimits) ForPremium(premium bool) int {
	if premium {
		return l.PremiumDaily
	}
	return l.FreeDaily
}

// CVScore is the AI quality assessment of a CV.
type CVScore struct {
	Overall       int            `json:"overall"`
	SectionScores map[string]int `json:"section_scores"`
	Strengths     []string       `json:"strengths"`
	Improvements  []string       `json:"improvements"`
}

// JobMatch compares a CV against a job description.
type JobMatch struct {
	Score           int      `json:"score"`
	MatchingSkills  []string `json:"matching_skills"`
	MissingSkills   []string `json:"missing_skills"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
}

// ImprovedText is the result of an AI prose rewrite.
type ImprovedText struct {
	ImprovedText string   `json:"improved_text"`
	Explanation  string   `json:"explanation"`
	KeyChanges   []string `json:"key_changes"`
}

// AIService is the boundary to the AI provider. ExtractFromText returns
// a partially filled CVData; absent fields keep zero values.
type AIService interface {
	ScoreCV(ctx context.Context, data CVData) (*CVScore, error)
	ExtractFromText(ctx context.Context, text string) (*CVData, error)
	MatchJob(ctx context.Context, data CVData, jobDescription string) (*JobMatch, error)
	ImproveText(ctx context.Context, text, textContext string) (*ImprovedText, error)
}

type AIUsecase interface {
	AnalyzeCV(ctx context.Context, data CVData) (*CVScore, error)
	ParseCVText(ctx context.Context, text string) (*CVData, error)
	MatchJob(ctx context.Context, data CVData, jobDescription string) (*JobMatch, error)
	ImproveText(ctx context.Context, text, textContext string) (*ImprovedText, error)
}
