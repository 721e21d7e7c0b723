package annotate

import (
	"reflect"
	"testing"

	"github.com/Preetham2702/ClauseBot/internal/agent"
	"github.com/Preetham2702/ClauseBot/internal/docparse"
)

func testPages() []docparse.Page {
	return []docparse.Page{
		{Number: 1, Text: "This lease is between the landlord and tenant. Monthly rent is $1500 due on the first."},
		{Number: 2, Text: "A late fee of $100 applies after the third day. The security deposit is $3000."},
		{Number: 3, Text: "The lease renews automatically unless sixty days written notice is given."},
	}
}

func TestAttribute_ItemsLandOnMatchingPages(t *testing.T) {
	result := agent.AnalysisResult{
		Summary:         "A standard residential lease.",
		Pros:            []string{"Monthly rent fixed at $1500"},
		Cons:            []string{"$100 late fee and a large security deposit"},
		ImportantPoints: []string{"Automatic renewal without sixty days notice"},
	}

	got := Attribute(testPages(), result)

	if len(got) != 3 {
		t.Fatalf("expected 3 pages in mapping, got %d", len(got))
	}
	if !containsTag(got[1], TagSummary) {
		t.Errorf("summary should tag page 1, got %v", got[1])
	}
	if !containsTag(got[1], TagPros) {
		t.Errorf("rent item should tag page 1, got %v", got[1])
	}
	if !containsTag(got[2], TagCons) {
		t.Errorf("late-fee item should tag page 2, got %v", got[2])
	}
	if !containsTag(got[3], TagImportantPoints) {
		t.Errorf("renewal item should tag page 3, got %v", got[3])
	}
}

func TestAttribute_MappingIsDense(t *testing.T) {
	result := agent.AnalysisResult{
		Pros: []string{"something about rent"},
	}
	got := Attribute(testPages(), result)
	for page := 1; page <= 3; page++ {
		if _, ok := got[page]; !ok {
			t.Errorf("page %d missing from mapping, mapping must be dense", page)
		}
	}
}

func TestAttribute_NoOverlapLeavesPagesUntagged(t *testing.T) {
	result := agent.AnalysisResult{
		Cons: []string{"zzz qqq xxx unrelated jargon"},
	}
	got := Attribute(testPages(), result)
	for page, tags := range got {
		if len(tags) != 0 {
			t.Errorf("page %d unexpectedly tagged: %v", page, tags)
		}
	}
}

func TestAttribute_EmptyPages(t *testing.T) {
	got := Attribute(nil, agent.AnalysisResult{Summary: "anything"})
	if !reflect.DeepEqual(got, map[int][]Tag{}) {
		t.Errorf("expected empty mapping for no pages, got %v", got)
	}
}

func containsTag(tags []Tag, want Tag) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
