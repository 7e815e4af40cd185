package questionnaires

// Severity is a named score band.
type Severity string

const (
	SeverityMinimal          Severity = "Minimal"
	SeverityMild             Severity = "Mild"
	SeverityModerate         Severity = "Moderate"
	SeverityModeratelySevere Severity = "Moderately severe"
	SeveritySevere           Severity = "Severe"
)

// TriageLevel is the coarse urgency used by the triage flow.
type TriageLevel string

const (
	TriageMild     TriageLevel = "Mild"
	TriageModerate TriageLevel = "Moderate"
	TriageSevere   TriageLevel = "Severe"
)

// ScoreResult is the deterministic outcome of a submission.
type ScoreResult struct {
	Score        int      `json:"score"`
	MaxScore     int      `json:"maxScore"`
	Severity     Severity `json:"severity"`
	SelfHarmFlag bool     `json:"selfHarmFlag"`
}

type band struct {
	upper    int
	severity Severity
}

// Bands are inclusive upper bounds in ascending order.
var (
	phq9Bands = []band{
		{upper: 4, severity: SeverityMinimal},
		{upper: 9, severity: SeverityMild},
		{upper: 14, severity: SeverityModerate},
		{upper: 19, severity: SeverityModeratelySevere},
		{upper: 27, severity: SeveritySevere},
	}
	gad7Bands = []band{
		{upper: 4, severity: SeverityMinimal},
		{upper: 9, severity: SeverityMild},
		{upper: 14, severity: SeverityModerate},
		{upper: 21, severity: SeveritySevere},
	}
)

// Score sums the answers and classifies the total. A non-zero PHQ-9 self-harm
// item forces Severe and sets SelfHarmFlag regardless of the total.
func Score(s Submission) ScoreResult {
	total := 0
	for _, v := range s.Values() {
		total += v
	}
	res := ScoreResult{
		Score:    total,
		MaxScore: len(s.Values()) * maxAnswer,
		Severity: Classify(s.Type(), total),
	}
	if phq, ok := s.(PHQ9Submission); ok && phq.Answers[phq9SelfHarmIndex] > 0 {
		res.Severity = SeveritySevere
		res.SelfHarmFlag = true
	}
	return res
}

// Classify maps a total score to its band for t. Scores above the table clamp
// to the top band; negative scores to the bottom.
func Classify(t Type, score int) Severity {
	var bands []band
	switch t {
	case TypePHQ9:
		bands = phq9Bands
	case TypeGAD7:
		bands = gad7Bands
	default:
		return ""
	}
	for _, b := range bands {
		if score <= b.upper {
			return b.severity
		}
	}
	return bands[len(bands)-1].severity
}

// Rank orders severities from 0 (Minimal) to 4 (Severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityMinimal:
		return 0
	case SeverityMild:
		return 1
	case SeverityModerate:
		return 2
	case SeverityModeratelySevere:
		return 3
	case SeveritySevere:
		return 4
	default:
		return -1
	}
}

// TriageLevel folds the five bands into three: Minimal joins Mild and
// Moderately severe joins Severe.
func (s Severity) TriageLevel() TriageLevel {
	switch s {
	case SeverityMinimal, SeverityMild:
		return TriageMild
	case SeverityModerate:
		return TriageModerate
	default:
		return TriageSevere
	}
}
