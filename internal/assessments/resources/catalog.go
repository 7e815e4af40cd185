package resources

// The crisis list is returned verbatim whenever the self-harm item is endorsed.
var crisisResources = []CrisisResource{
	{ID: "CRISIS_988", Label: "988 Suicide & Crisis Lifeline (US)", Contact: "call or text 988"},
	{ID: "CRISIS_TEXT_LINE", Label: "Crisis Text Line (US)", Contact: "text HOME to 741741"},
	{ID: "CRISIS_EMERGENCY", Label: "Emergency services", Contact: "call 911 or your local emergency number if you are in immediate danger"},
	{ID: "CRISIS_IASP", Label: "International crisis centres directory", Contact: "https://www.iasp.info/resources/Crisis_Centres/"},
}

// CrisisNextStep is always the first next step for a flagged submission.
const CrisisNextStep = "Contact a crisis line now: call or text 988, or call emergency services if you are in immediate danger."

// crisisProfessional leads the professional list for a flagged submission.
var crisisProfessional = Professional{
	ProfessionalType: "Crisis counselor",
	Reason:           "You reported thoughts of being better off dead or of hurting yourself. A crisis counselor can help you stay safe right now.",
}

// Crisis returns the deterministic crisis resources in display order.
func Crisis() []string {
	out := make([]string, 0, len(crisisResources))
	for _, r := range crisisResources {
		out = append(out, r.String())
	}
	return out
}

// CrisisProfessional returns the professional entry for flagged submissions.
func CrisisProfessional() Professional {
	return crisisProfessional
}
