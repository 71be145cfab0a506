// Package scoring computes lead scores from submitted attributes and a rule
// set. Evaluation is pure: the same input and rules always produce the same
// total and breakdown.
package scoring

import "strings"

// Breakdown field identifiers. These follow the column vocabulary of the
// scoring_configurations table and are stable API: dashboards group on them.
const (
	FieldPhone         = "telefone"
	FieldEmail         = "email"
	FieldCompany       = "empresa"
	FieldRole          = "cargo"
	FieldTemperature   = "temperatura"
	FieldInterest      = "nivel_interesse"
	FieldBudget        = "orcamento_disponivel"
	FieldDecisionMaker = "decisor_principal"
	FieldPainPoint     = "dor_principal"
)

// Temperature and interest categories after alias normalization.
const (
	temperatureHot  = "quente"
	temperatureWarm = "morna"
	temperatureCold = "fria"

	interestHigh   = "alto"
	interestMedium = "medio"
	interestLow    = "baixo"
)

// temperatureAliases maps accepted self-report labels onto canonical
// categories. Marketing forms submit a mix of Portuguese and English labels.
var temperatureAliases = map[string]string{
	"quente": temperatureHot,
	"hot":    temperatureHot,
	"morna":  temperatureWarm,
	"morno":  temperatureWarm,
	"warm":   temperatureWarm,
	"fria":   temperatureCold,
	"frio":   temperatureCold,
	"cold":   temperatureCold,
}

// interestAliases maps accepted interest labels onto canonical categories.
// Numeric labels come from the 1-3 selector used by older landing pages.
var interestAliases = map[string]string{
	"alto":   interestHigh,
	"high":   interestHigh,
	"3":      interestHigh,
	"medio":  interestMedium,
	"média":  interestMedium,
	"media":  interestMedium,
	"medium": interestMedium,
	"2":      interestMedium,
	"baixo":  interestLow,
	"low":    interestLow,
	"1":      interestLow,
}

// Input holds the submitted lead attributes relevant for scoring.
type Input struct {
	Phone           string
	Email           string
	Company         string
	Role            string
	Temperature     string
	InterestLevel   string
	BudgetAvailable float64
	IsDecisionMaker bool
	PainPoint       string
}

// Rules is a point table applied to an Input. It mirrors one row of
// scoring_configurations; DefaultRules is used when no row is active.
type Rules struct {
	Name string

	PhonePoints   int
	EmailPoints   int
	CompanyPoints int
	RolePoints    int

	TemperatureHotPoints  int
	TemperatureWarmPoints int
	TemperatureColdPoints int

	InterestHighPoints   int
	InterestMediumPoints int
	InterestLowPoints    int

	BudgetPoints        int
	DecisionMakerPoints int
	PainPointPoints     int

	Threshold int
}

// DefaultRules is the built-in fallback rule set when a tenant has no active
// configuration. Kept as an independent constant table on purpose: edits to
// a tenant's configuration must never shift the behavior of tenants that
// have not configured anything.
func DefaultRules() Rules {
	return Rules{
		Name:                  "default",
		PhonePoints:           10,
		EmailPoints:           10,
		CompanyPoints:         5,
		RolePoints:            5,
		TemperatureHotPoints:  20,
		TemperatureWarmPoints: 10,
		TemperatureColdPoints: 0,
		InterestHighPoints:    15,
		InterestMediumPoints:  8,
		InterestLowPoints:     0,
		BudgetPoints:          10,
		DecisionMakerPoints:   10,
		PainPointPoints:       10,
		Threshold:             60,
	}
}

// Detail is one breakdown entry. The sum of all entries equals the total.
type Detail struct {
	Field string `json:"field"`
	Score int    `json:"score"`
}

// Evaluation is the result of scoring an Input against Rules.
type Evaluation struct {
	Total   int
	Details []Detail
}

// Evaluate scores the input. Fields are checked in a fixed order (contact
// fields first, then qualitative fields) so the breakdown is deterministic.
// Absent fields contribute zero and are omitted from the breakdown;
// unrecognized categorical labels score at the most conservative category.
func Evaluate(input Input, rules Rules) Evaluation {
	eval := Evaluation{Details: make([]Detail, 0, 9)}

	addIf := func(field string, present bool, points int) {
		if !present || points == 0 {
			return
		}
		eval.Total += points
		eval.Details = append(eval.Details, Detail{Field: field, Score: points})
	}

	addIf(FieldPhone, strings.TrimSpace(input.Phone) != "", rules.PhonePoints)
	addIf(FieldEmail, strings.TrimSpace(input.Email) != "", rules.EmailPoints)
	addIf(FieldCompany, strings.TrimSpace(input.Company) != "", rules.CompanyPoints)
	addIf(FieldRole, strings.TrimSpace(input.Role) != "", rules.RolePoints)

	if label := strings.TrimSpace(input.Temperature); label != "" {
		addIf(FieldTemperature, true, temperaturePoints(label, rules))
	}
	if label := strings.TrimSpace(input.InterestLevel); label != "" {
		addIf(FieldInterest, true, interestPoints(label, rules))
	}
	addIf(FieldBudget, input.BudgetAvailable > 0, rules.BudgetPoints)
	addIf(FieldDecisionMaker, input.IsDecisionMaker, rules.DecisionMakerPoints)
	addIf(FieldPainPoint, strings.TrimSpace(input.PainPoint) != "", rules.PainPointPoints)

	return eval
}

func temperaturePoints(label string, rules Rules) int {
	switch temperatureAliases[normalizeLabel(label)] {
	case temperatureHot:
		return rules.TemperatureHotPoints
	case temperatureWarm:
		return rules.TemperatureWarmPoints
	default:
		// Unrecognized labels score at the coldest category.
		return rules.TemperatureColdPoints
	}
}

func interestPoints(label string, rules Rules) int {
	switch interestAliases[normalizeLabel(label)] {
	case interestHigh:
		return rules.InterestHighPoints
	case interestMedium:
		return rules.InterestMediumPoints
	default:
		return rules.InterestLowPoints
	}
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
