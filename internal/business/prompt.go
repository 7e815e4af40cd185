package business

import (
	"strings"

	"triage-backend/internal/llm"
)

const complianceNote = "WARNING: Clinical involvement detected. Ensure all suggestions comply with relevant healthcare regulations and ethical guidelines."

var criteriaLabels = []struct {
	label string
	value func(Criteria) string
}{
	{"Service Type", func(c Criteria) string { return c.ServiceType }},
	{"Ownership", func(c Criteria) string { return c.Ownership }},
	{"Target Age Group", func(c Criteria) string { return c.TargetAgeGroup }},
	{"Location", func(c Criteria) string { return c.Location }},
	{"Market Demand", func(c Criteria) string { return c.MarketDemand }},
	{"Delivery Mode", func(c Criteria) string { return c.DeliveryMode }},
	{"Payment Methods", func(c Criteria) string { return c.PaymentMethods }},
	{"Accessibility Goal", func(c Criteria) string { return c.AccessibilityGoal }},
	{"Target Users", func(c Criteria) string { return c.TargetUsers }},
	{"Delivery", func(c Criteria) string { return c.Delivery }},
	{"Content", func(c Criteria) string { return c.Content }},
	{"Regulations", func(c Criteria) string { return c.Regulations }},
	{"Funding", func(c Criteria) string { return c.Funding }},
	{"Budget", func(c Criteria) string { return c.Budget }},
	{"Monetization", func(c Criteria) string { return c.Monetization }},
	{"Scope", func(c Criteria) string { return c.Scope }},
	{"Data Sensitivity", func(c Criteria) string { return c.DataSensitivity }},
	{"Clinical Involvement", func(c Criteria) string { return c.ClinicalInvolvement }},
}

// clinicallyInvolved is false for the answers the form uses to say "none".
func clinicallyInvolved(c Criteria) bool {
	switch strings.ToLower(strings.TrimSpace(c.ClinicalInvolvement)) {
	case "", "none", "no", "n/a", "na", "not applicable":
		return false
	default:
		return true
	}
}

func buildPrompt(c Criteria, model string) llm.Prompt {
	lines := make([]string, 0, len(criteriaLabels))
	for _, item := range criteriaLabels {
		lines = append(lines, item.label+": "+item.value(c))
	}
	note := ""
	if clinicallyInvolved(c) {
		note = "\n" + complianceNote + "\n"
	}
	return llm.Prompt{
		Name: llm.TemplateBusiness,
		User: llm.Render(llm.TemplateBusiness, map[string]string{
			"CRITERIA":        strings.Join(lines, "\n"),
			"COMPLIANCE_NOTE": note,
		}),
		Model: model,
	}
}
