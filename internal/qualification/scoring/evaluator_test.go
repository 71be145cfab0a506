package scoring

import "testing"

func fullInput() Input {
	return Input{
		Phone:           "+5511999998888",
		Email:           "maria@empresa.com.br",
		Temperature:     "quente",
		InterestLevel:   "alto",
		BudgetAvailable: 5000,
		IsDecisionMaker: true,
		PainPoint:       "time comercial sem processo",
	}
}

func TestEvaluate_HotDecisionMakerWithBudget(t *testing.T) {
	eval := Evaluate(fullInput(), DefaultRules())

	if eval.Total != 85 {
		t.Fatalf("expected total 85, got %d", eval.Total)
	}
}

func TestEvaluate_WithoutDecisionMakerAndPainPoint(t *testing.T) {
	input := fullInput()
	input.IsDecisionMaker = false
	input.PainPoint = ""

	eval := Evaluate(input, DefaultRules())

	if eval.Total != 65 {
		t.Fatalf("expected total 65, got %d", eval.Total)
	}
}

func TestEvaluate_MinimalContactOnly(t *testing.T) {
	eval := Evaluate(Input{
		Phone: "+5511999998888",
		Email: "jose@exemplo.com",
	}, DefaultRules())

	if eval.Total != 20 {
		t.Fatalf("expected total 20, got %d", eval.Total)
	}
	if len(eval.Details) != 2 {
		t.Fatalf("expected 2 breakdown entries, got %d", len(eval.Details))
	}
}

func TestEvaluate_BreakdownSumsToTotal(t *testing.T) {
	eval := Evaluate(fullInput(), DefaultRules())

	sum := 0
	for _, detail := range eval.Details {
		sum += detail.Score
	}
	if sum != eval.Total {
		t.Fatalf("breakdown sums to %d, total is %d", sum, eval.Total)
	}
}

func TestEvaluate_AbsentFieldsOmittedFromBreakdown(t *testing.T) {
	eval := Evaluate(Input{Email: "so-email@exemplo.com"}, DefaultRules())

	if len(eval.Details) != 1 {
		t.Fatalf("expected 1 breakdown entry, got %d", len(eval.Details))
	}
	if eval.Details[0].Field != FieldEmail {
		t.Fatalf("expected field %q, got %q", FieldEmail, eval.Details[0].Field)
	}
}

func TestEvaluate_TemperatureAliases(t *testing.T) {
	cases := []struct {
		label    string
		expected int
	}{
		{"quente", 20},
		{"HOT", 20},
		{"  Morna ", 10},
		{"morno", 10},
		{"warm", 10},
		{"fria", 0},
		{"cold", 0},
	}

	for _, tc := range cases {
		eval := Evaluate(Input{Temperature: tc.label}, DefaultRules())
		if eval.Total != tc.expected {
			t.Fatalf("label %q: expected %d, got %d", tc.label, tc.expected, eval.Total)
		}
	}
}

func TestEvaluate_InterestAliases(t *testing.T) {
	cases := []struct {
		label    string
		expected int
	}{
		{"alto", 15},
		{"High", 15},
		{"3", 15},
		{"medio", 8},
		{"média", 8},
		{"2", 8},
		{"baixo", 0},
		{"1", 0},
	}

	for _, tc := range cases {
		eval := Evaluate(Input{InterestLevel: tc.label}, DefaultRules())
		if eval.Total != tc.expected {
			t.Fatalf("label %q: expected %d, got %d", tc.label, tc.expected, eval.Total)
		}
	}
}

func TestEvaluate_UnrecognizedLabelsScoreConservatively(t *testing.T) {
	rules := DefaultRules()
	rules.TemperatureColdPoints = 2
	rules.InterestLowPoints = 3

	eval := Evaluate(Input{Temperature: "fervendo", InterestLevel: "muito"}, rules)

	if eval.Total != 5 {
		t.Fatalf("expected total 5 (cold 2 + low 3), got %d", eval.Total)
	}
}

func TestEvaluate_ZeroBudgetScoresNothing(t *testing.T) {
	eval := Evaluate(Input{BudgetAvailable: 0}, DefaultRules())

	if eval.Total != 0 {
		t.Fatalf("expected total 0, got %d", eval.Total)
	}
	if len(eval.Details) != 0 {
		t.Fatalf("expected empty breakdown, got %d entries", len(eval.Details))
	}
}

func TestEvaluate_CustomRuleWeights(t *testing.T) {
	rules := Rules{
		Name:                 "aggressive",
		PhonePoints:          1,
		EmailPoints:          2,
		TemperatureHotPoints: 50,
		InterestHighPoints:   30,
		Threshold:            40,
	}

	eval := Evaluate(fullInput(), rules)

	// 1 + 2 + 50 + 30; budget, decision maker and pain point are weighted zero.
	if eval.Total != 83 {
		t.Fatalf("expected total 83, got %d", eval.Total)
	}
}
