package questionnaires

import "testing"

func TestScorePHQ9Bands(t *testing.T) {
	cases := []struct {
		score int
		want  Severity
	}{
		{0, SeverityMinimal},
		{4, SeverityMinimal},
		{5, SeverityMild},
		{9, SeverityMild},
		{10, SeverityModerate},
		{14, SeverityModerate},
		{15, SeverityModeratelySevere},
		{19, SeverityModeratelySevere},
		{20, SeveritySevere},
		{27, SeveritySevere},
	}
	for _, c := range cases {
		if got := Classify(TypePHQ9, c.score); got != c.want {
			t.Fatalf("Classify(PHQ-9, %d)=%q, want %q", c.score, got, c.want)
		}
	}
}

func TestScoreGAD7Bands(t *testing.T) {
	cases := []struct {
		score int
		want  Severity
	}{
		{0, SeverityMinimal},
		{4, SeverityMinimal},
		{5, SeverityMild},
		{9, SeverityMild},
		{10, SeverityModerate},
		{14, SeverityModerate},
		{15, SeveritySevere},
		{16, SeveritySevere},
		{21, SeveritySevere},
	}
	for _, c := range cases {
		if got := Classify(TypeGAD7, c.score); got != c.want {
			t.Fatalf("Classify(GAD-7, %d)=%q, want %q", c.score, got, c.want)
		}
	}
}

func TestClassifyIsMonotonic(t *testing.T) {
	for _, qt := range Types() {
		def, _ := Describe(qt)
		prev := -1
		for score := 0; score <= def.MaxScore; score++ {
			rank := Classify(qt, score).Rank()
			if rank < 0 {
				t.Fatalf("%s score %d has no band", qt, score)
			}
			if rank < prev {
				t.Fatalf("%s severity decreased at score %d", qt, score)
			}
			prev = rank
		}
	}
}

func TestScorePHQ9SumAndRange(t *testing.T) {
	// Every answer vector with the same value per item covers the range ends.
	for v := 0; v <= 3; v++ {
		var s PHQ9Submission
		for i := range s.Answers {
			s.Answers[i] = v
		}
		s.Answers[8] = 0
		got := Score(s)
		want := v * 8
		if got.Score != want {
			t.Fatalf("expected score %d, got %d", want, got.Score)
		}
		if got.Score < 0 || got.Score > 27 {
			t.Fatalf("score out of range: %d", got.Score)
		}
		if got.MaxScore != 27 {
			t.Fatalf("expected max 27, got %d", got.MaxScore)
		}
	}

	all := PHQ9Submission{Answers: [9]int{3, 3, 3, 3, 3, 3, 3, 3, 3}}
	if got := Score(all); got.Score != 27 || got.Severity != SeveritySevere {
		t.Fatalf("expected 27/Severe, got %+v", got)
	}
}

func TestScoreGAD7Range(t *testing.T) {
	all := GAD7Submission{Answers: [7]int{3, 3, 3, 3, 3, 3, 3}}
	got := Score(all)
	if got.Score != 21 || got.MaxScore != 21 {
		t.Fatalf("expected 21/21, got %+v", got)
	}
	if got.SelfHarmFlag {
		t.Fatalf("GAD-7 never sets the self-harm flag")
	}
}

func TestScoreSingleItemMinimal(t *testing.T) {
	s := PHQ9Submission{Answers: [9]int{0, 0, 2, 0, 0, 0, 0, 0, 0}}
	got := Score(s)
	if got.Score != 2 {
		t.Fatalf("expected score 2, got %d", got.Score)
	}
	if got.Severity != SeverityMinimal {
		t.Fatalf("expected Minimal, got %q", got.Severity)
	}
	if got.SelfHarmFlag {
		t.Fatalf("expected selfHarmFlag false")
	}
}

func TestScoreSelfHarmOverride(t *testing.T) {
	s := PHQ9Submission{Answers: [9]int{1, 1, 0, 0, 0, 0, 0, 0, 1}}
	got := Score(s)
	if got.Score != 3 {
		t.Fatalf("expected score 3, got %d", got.Score)
	}
	if got.Severity != SeveritySevere {
		t.Fatalf("expected Severe, got %q", got.Severity)
	}
	if !got.SelfHarmFlag {
		t.Fatalf("expected selfHarmFlag true")
	}
}

func TestScoreGAD7Sixteen(t *testing.T) {
	s := GAD7Submission{Answers: [7]int{3, 3, 3, 3, 2, 1, 1}}
	got := Score(s)
	if got.Score != 16 {
		t.Fatalf("expected 16, got %d", got.Score)
	}
	if got.Severity != SeveritySevere {
		t.Fatalf("expected Severe, got %q", got.Severity)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	s := PHQ9Submission{Answers: [9]int{2, 1, 3, 0, 1, 2, 1, 0, 0}}
	first := Score(s)
	second := Score(s)
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestTriageLevelGrouping(t *testing.T) {
	cases := map[Severity]TriageLevel{
		SeverityMinimal:          TriageMild,
		SeverityMild:             TriageMild,
		SeverityModerate:         TriageModerate,
		SeverityModeratelySevere: TriageSevere,
		SeveritySevere:           TriageSevere,
	}
	for sev, want := range cases {
		if got := sev.TriageLevel(); got != want {
			t.Fatalf("%q.TriageLevel()=%q, want %q", sev, got, want)
		}
	}
}
