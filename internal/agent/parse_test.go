package agent

import (
	"reflect"
	"testing"
)

func TestParseFreeform_TrimsRawText(t *testing.T) {
	got := ParseFreeform("  The rent is $1500 per month.  \n")
	if got != "The rent is $1500 per month." {
		t.Errorf("unexpected answer: %q", got)
	}
}

func TestParseFreeform_EmptyReturnsFallback(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t\n"} {
		if got := ParseFreeform(raw); got != FallbackAnswer {
			t.Errorf("ParseFreeform(%q) = %q, want fallback sentence", raw, got)
		}
	}
}

func TestParseAnalysis_HeadedSections(t *testing.T) {
	raw := `Summary:
A one-year residential lease for a two-bedroom apartment.

Pros:
- Rent is fixed for the full term
- Landlord covers water and trash

Cons:
- $100 late fee after the 3rd
- No subletting allowed

Important Points:
- 60 days notice required to end the lease
- Lease renews automatically month to month`

	got := ParseAnalysis(raw)
	if got.ParseFailed {
		t.Fatal("expected parse to succeed")
	}
	if got.Summary != "A one-year residential lease for a two-bedroom apartment." {
		t.Errorf("unexpected summary: %q", got.Summary)
	}
	wantPros := []string{"Rent is fixed for the full term", "Landlord covers water and trash"}
	if !reflect.DeepEqual(got.Pros, wantPros) {
		t.Errorf("pros = %v, want %v", got.Pros, wantPros)
	}
	wantCons := []string{"$100 late fee after the 3rd", "No subletting allowed"}
	if !reflect.DeepEqual(got.Cons, wantCons) {
		t.Errorf("cons = %v, want %v", got.Cons, wantCons)
	}
	wantPoints := []string{"60 days notice required to end the lease", "Lease renews automatically month to month"}
	if !reflect.DeepEqual(got.ImportantPoints, wantPoints) {
		t.Errorf("important points = %v, want %v", got.ImportantPoints, wantPoints)
	}
}

func TestParseAnalysis_HeadingVariants(t *testing.T) {
	raw := `SUMMARY
Short lease overview.

PROS:
* Good location clause

Risks:
1. High security deposit

Key things the tenant should know... nothing here matches.

IMPORTANT POINTS -
- Automatic renewal`

	got := ParseAnalysis(raw)
	if got.ParseFailed {
		t.Fatal("expected parse to succeed")
	}
	if got.Summary != "Short lease overview." {
		t.Errorf("unexpected summary: %q", got.Summary)
	}
	if len(got.Pros) != 1 || got.Pros[0] != "Good location clause" {
		t.Errorf("unexpected pros: %v", got.Pros)
	}
	if len(got.Cons) != 1 || got.Cons[0] != "High security deposit" {
		t.Errorf("unexpected cons: %v", got.Cons)
	}
	if len(got.ImportantPoints) != 1 || got.ImportantPoints[0] != "Automatic renewal" {
		t.Errorf("unexpected important points: %v", got.ImportantPoints)
	}
}

func TestParseAnalysis_MissingSectionsAreEmptyNotNil(t *testing.T) {
	got := ParseAnalysis("Summary:\nJust a summary, nothing else.")
	if got.ParseFailed {
		t.Fatal("expected parse to succeed")
	}
	if got.Pros == nil || got.Cons == nil || got.ImportantPoints == nil {
		t.Fatal("missing sections must be empty slices, never nil")
	}
	if len(got.Pros) != 0 || len(got.Cons) != 0 || len(got.ImportantPoints) != 0 {
		t.Errorf("expected empty sections, got %+v", got)
	}
}

func TestParseAnalysis_TrailingBoilerplateDiscarded(t *testing.T) {
	raw := `Cons:
- Late fees compound monthly

This analysis is for informational purposes only and is not legal advice.`

	got := ParseAnalysis(raw)
	if len(got.Cons) != 1 || got.Cons[0] != "Late fees compound monthly" {
		t.Errorf("unexpected cons: %v", got.Cons)
	}
}

func TestParseAnalysis_UnparseableSetsFailureFlag(t *testing.T) {
	got := ParseAnalysis("The model rambled about something entirely unrelated.\nNo structure at all.")
	if !got.ParseFailed {
		t.Fatal("expected ParseFailed to be set")
	}
	if got.Summary != "" || len(got.Pros) != 0 || len(got.Cons) != 0 || len(got.ImportantPoints) != 0 {
		t.Errorf("expected all-empty result, got %+v", got)
	}
	if got.Pros == nil || got.Cons == nil || got.ImportantPoints == nil {
		t.Error("degraded result must still carry empty slices")
	}
}

func TestParseAnalysis_StrictJSON(t *testing.T) {
	raw := `{"summary":"A simple lease.","pros":["Fixed rent"],"cons":["High deposit"],"important_points":["30 day notice"]}`
	got := ParseAnalysis(raw)
	if got.ParseFailed {
		t.Fatal("expected parse to succeed")
	}
	if got.Summary != "A simple lease." {
		t.Errorf("unexpected summary: %q", got.Summary)
	}
	if len(got.Pros) != 1 || len(got.Cons) != 1 || len(got.ImportantPoints) != 1 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestParseAnalysis_JSONInCodeFence(t *testing.T) {
	raw := "```json\n{\"summary\":\"Fenced.\",\"pros\":[],\"cons\":[],\"important_points\":[]}\n```"
	got := ParseAnalysis(raw)
	if got.ParseFailed {
		t.Fatal("expected parse to succeed")
	}
	if got.Summary != "Fenced." {
		t.Errorf("unexpected summary: %q", got.Summary)
	}
}

func TestParseAnalysis_Deterministic(t *testing.T) {
	raw := "Summary:\nSame in, same out.\n\nPros:\n- stable"
	first := ParseAnalysis(raw)
	second := ParseAnalysis(raw)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestFormatAnalysis_RoundTrip(t *testing.T) {
	cases := []AnalysisResult{
		{
			Summary:         "A twelve-month lease with fixed rent.",
			Pros:            []string{"Fixed rent", "Utilities included"},
			Cons:            []string{"Steep late fee"},
			ImportantPoints: []string{"60 day notice period"},
		},
		{
			Summary:         "Only a summary.",
			Pros:            []string{},
			Cons:            []string{},
			ImportantPoints: []string{},
		},
		{
			Summary:         "",
			Pros:            []string{"Single item"},
			Cons:            []string{},
			ImportantPoints: []string{},
		},
	}

	for i, want := range cases {
		got := ParseAnalysis(FormatAnalysis(want))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("case %d: round trip mismatch:\n got %+v\nwant %+v", i, got, want)
		}
	}
}

func TestMatchHeading_ItemLinesNotMistakenForHeadings(t *testing.T) {
	notHeadings := []string{
		"Consider the pet policy carefully",
		"Pros outweigh cons in this lease",
		"Important maintenance falls to the tenant",
		"The landlord keeps the deposit",
	}
	for _, line := range notHeadings {
		if _, ok := matchHeading(line); ok {
			t.Errorf("line %q wrongly matched as heading", line)
		}
	}
}

func TestMatchHeading_RecognizedForms(t *testing.T) {
	cases := []struct {
		line string
		want section
	}{
		{"Summary:", secSummary},
		{"summary", secSummary},
		{"Pros:", secPros},
		{"CONS / RISKS / RED FLAGS:", secCons},
		{"Risks", secCons},
		{"Important Points:", secImportant},
		{"## Summary", secSummary},
	}
	for _, tc := range cases {
		got, ok := matchHeading(tc.line)
		if !ok || got != tc.want {
			t.Errorf("matchHeading(%q) = (%v, %v), want (%v, true)", tc.line, got, ok, tc.want)
		}
	}
}
