package resources

import (
	"reflect"
	"testing"
)

func TestMergeStringsDedupesCaseInsensitive(t *testing.T) {
	got := MergeStrings(
		[]string{"  Try journaling ", "", "Walk daily"},
		[]string{"try journaling", "Sleep hygiene", "walk daily."},
	)
	want := []string{"Try journaling", "Walk daily", "Sleep hygiene"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MergeStrings = %v, want %v", got, want)
	}
}

func TestMergeStringsEmpty(t *testing.T) {
	got := MergeStrings(nil, []string{" ", ""})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestMergeStringsKeepsDistinctSymbolOnlyItems(t *testing.T) {
	got := MergeStrings([]string{"!!", "??", "->", "??"})
	want := []string{"!!", "??", "->"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MergeStrings = %v, want %v", got, want)
	}
}

func TestMergeProfessionalsFillsReason(t *testing.T) {
	got := MergeProfessionals(
		[]Professional{{ProfessionalType: "Psychologist"}},
		[]Professional{{ProfessionalType: "psychologist", Reason: "CBT"}, {ProfessionalType: " ", Reason: "x"}},
	)
	if len(got) != 1 || got[0].Reason != "CBT" || got[0].ProfessionalType != "Psychologist" {
		t.Fatalf("unexpected merge %+v", got)
	}
}

func TestWithCrisisPutsResourcesFirst(t *testing.T) {
	got := WithCrisis([]string{"Local clinic", Crisis()[0]})
	crisis := Crisis()
	if len(got) != len(crisis)+1 {
		t.Fatalf("expected %d items, got %v", len(crisis)+1, got)
	}
	for i := range crisis {
		if got[i] != crisis[i] {
			t.Fatalf("item %d: expected %q, got %q", i, crisis[i], got[i])
		}
	}
	if got[len(got)-1] != "Local clinic" {
		t.Fatalf("expected model resource last, got %v", got)
	}
}

func TestWithCrisisStepIsFirst(t *testing.T) {
	got := WithCrisisStep([]string{"Book a GP appointment"})
	if got[0] != CrisisNextStep {
		t.Fatalf("expected crisis step first, got %v", got)
	}
}

func TestWithCrisisProfessionalIsFirst(t *testing.T) {
	got := WithCrisisProfessional([]Professional{{ProfessionalType: "Psychiatrist", Reason: "medication review"}})
	if got[0].ProfessionalType != CrisisProfessional().ProfessionalType || len(got) != 2 {
		t.Fatalf("unexpected professionals %+v", got)
	}
}

func TestCrisisIsDeterministic(t *testing.T) {
	if !reflect.DeepEqual(Crisis(), Crisis()) {
		t.Fatalf("expected identical crisis lists")
	}
}
