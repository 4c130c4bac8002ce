package model

import (
	"strings"
	"testing"
)

func article(paragraphs int, lex, inf []int) *PerspectiveArticle {
	content := make([]string, paragraphs)
	for i := range content {
		content[i] = "paragraph"
	}
	return &PerspectiveArticle{Title: "t", Content: content, Lex: lex, Inf: inf}
}

func TestFlagLookupToleratesShortArrays(t *testing.T) {
	a := article(3, []int{1}, nil)

	if !a.LexicalAt(0) {
		t.Error("paragraph 0 should be lexically flagged")
	}
	if a.LexicalAt(1) || a.LexicalAt(2) {
		t.Error("indices past the end of lex must read as unflagged")
	}
	if a.InformationalAt(0) {
		t.Error("nil inf must read as unflagged")
	}
	if a.LexicalAt(-1) {
		t.Error("negative index must read as unflagged")
	}
	if !a.Flagged(0) || a.Flagged(2) {
		t.Error("Flagged should be the union of lex and inf")
	}
}

func TestFlagLookupOnlyOneCounts(t *testing.T) {
	a := article(2, []int{2, 1}, []int{0, 0})
	if a.LexicalAt(0) {
		t.Error("a value of 2 is not a flag")
	}
	if !a.LexicalAt(1) {
		t.Error("a value of 1 is a flag")
	}
}

func TestNewsArticle(t *testing.T) {
	n := News{Left: article(1, []int{0}, []int{0})}

	if _, ok := n.Article(PerspectiveLeft); !ok {
		t.Error("left should exist")
	}
	if _, ok := n.Article(PerspectiveRight); ok {
		t.Error("right should be absent")
	}
	if _, ok := n.Article(Perspective("up")); ok {
		t.Error("unknown perspective should be absent")
	}
}

func TestValidate(t *testing.T) {
	ok := article(2, []int{0, 1}, []int{1, 0})

	tests := []struct {
		name  string
		issue Issue
		kinds []ProblemKind
	}{
		{
			name:  "well formed",
			issue: Issue{ID: 1, Title: "A", News: News{Left: ok, Center: ok, Right: ok}},
		},
		{
			name:  "missing right",
			issue: Issue{ID: 1, Title: "A", News: News{Left: ok, Center: ok}},
			kinds: []ProblemKind{ProblemMissingPerspective},
		},
		{
			name:  "empty title",
			issue: Issue{ID: 1, News: News{Left: ok, Center: ok, Right: ok}},
			kinds: []ProblemKind{ProblemEmptyTitle},
		},
		{
			name: "short lex",
			issue: Issue{ID: 1, Title: "A", News: News{
				Left: article(2, []int{0}, []int{0, 0}), Center: ok, Right: ok,
			}},
			kinds: []ProblemKind{ProblemFlagLength},
		},
		{
			name: "non binary flag",
			issue: Issue{ID: 1, Title: "A", News: News{
				Left: ok, Center: article(1, []int{0}, []int{3}), Right: ok,
			}},
			kinds: []ProblemKind{ProblemFlagValue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.issue.Validate()
			if len(problems) != len(tt.kinds) {
				t.Fatalf("got %d problems %v, want %v", len(problems), problems, tt.kinds)
			}
			for i, p := range problems {
				if p.Kind != tt.kinds[i] {
					t.Errorf("problem %d: got %s, want %s", i, p.Kind, tt.kinds[i])
				}
			}
		})
	}
}

func TestFindIssueFirstMatchWins(t *testing.T) {
	issues := []Issue{
		{ID: 1, Title: "first"},
		{ID: 2, Title: "other"},
		{ID: 1, Title: "duplicate"},
	}

	got, ok := FindIssue(issues, 1)
	if !ok {
		t.Fatal("expected to find id 1")
	}
	if got.Title != "first" {
		t.Errorf("expected first match, got %q", got.Title)
	}
	if _, ok := FindIssue(issues, 99); ok {
		t.Error("id 99 should not be found")
	}
}

func TestIssueLabel(t *testing.T) {
	if got := (Issue{ID: 7}).Label(); got != "Issue #7" {
		t.Errorf("got %q", got)
	}
	if got := (Issue{ID: 7, Title: "Tariffs"}).Label(); got != "Tariffs" {
		t.Errorf("got %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Issue{
		ID:      1,
		Title:   "A",
		Roundup: []string{"one"},
		News:    News{Left: article(1, []int{1}, []int{0})},
	}
	clone := orig.Clone()
	clone.Roundup[0] = "changed"
	clone.News.Left.Lex[0] = 0
	clone.News.Left.Title = "changed"

	if orig.Roundup[0] != "one" {
		t.Error("roundup shares backing array")
	}
	if orig.News.Left.Lex[0] != 1 || orig.News.Left.Title != "t" {
		t.Error("article shares memory with clone")
	}
	if clone.News.Center != nil {
		t.Error("absent perspective should stay absent")
	}
}

func TestParsePerspective(t *testing.T) {
	for _, p := range Perspectives() {
		got, err := ParsePerspective(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePerspective(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParsePerspective("north"); err == nil || !strings.Contains(err.Error(), "north") {
		t.Errorf("expected error naming the bad value, got %v", err)
	}
}

func TestPerspectiveLabels(t *testing.T) {
	if PerspectiveLeft.Heading() != "From the Left" {
		t.Errorf("got %q", PerspectiveLeft.Heading())
	}
	if PerspectiveRight.Label() != "Right Perspective" {
		t.Errorf("got %q", PerspectiveRight.Label())
	}
}
