package transport

import "time"

// ScoringConfigRequest replaces the tenant's active rule set. Zero scores are
// valid: a field can be deliberately worth nothing.
type ScoringConfigRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`

	PhoneScore   int `json:"phone_score" validate:"min=0,max=100"`
	EmailScore   int `json:"email_score" validate:"min=0,max=100"`
	CompanyScore int `json:"company_score" validate:"min=0,max=100"`
	RoleScore    int `json:"role_score" validate:"min=0,max=100"`

	TemperatureHotScore  int `json:"temperature_hot_score" validate:"min=0,max=100"`
	TemperatureWarmScore int `json:"temperature_warm_score" validate:"min=0,max=100"`
	TemperatureColdScore int `json:"temperature_cold_score" validate:"min=0,max=100"`

	InterestHighScore   int `json:"interest_high_score" validate:"min=0,max=100"`
	InterestMediumScore int `json:"interest_medium_score" validate:"min=0,max=100"`
	InterestLowScore    int `json:"interest_low_score" validate:"min=0,max=100"`

	BudgetScore        int `json:"budget_score" validate:"min=0,max=100"`
	DecisionMakerScore int `json:"decision_maker_score" validate:"min=0,max=100"`
	PainPointScore     int `json:"pain_point_score" validate:"min=0,max=100"`

	LowScoreThreshold int `json:"low_score_threshold" validate:"min=0,max=200"`

	HighSegmentCloserID *string `json:"high_segment_closer_id,omitempty" validate:"omitempty,uuid"`
	LowSegmentCloserID  *string `json:"low_segment_closer_id,omitempty" validate:"omitempty,uuid"`
}

type ScoringConfigResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	PhoneScore   int `json:"phone_score"`
	EmailScore   int `json:"email_score"`
	CompanyScore int `json:"company_score"`
	RoleScore    int `json:"role_score"`

	TemperatureHotScore  int `json:"temperature_hot_score"`
	TemperatureWarmScore int `json:"temperature_warm_score"`
	TemperatureColdScore int `json:"temperature_cold_score"`

	InterestHighScore   int `json:"interest_high_score"`
	InterestMediumScore int `json:"interest_medium_score"`
	InterestLowScore    int `json:"interest_low_score"`

	BudgetScore        int `json:"budget_score"`
	DecisionMakerScore int `json:"decision_maker_score"`
	PainPointScore     int `json:"pain_point_score"`

	LowScoreThreshold int `json:"low_score_threshold"`

	HighSegmentCloserID *string `json:"high_segment_closer_id,omitempty"`
	LowSegmentCloserID  *string `json:"low_segment_closer_id,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
