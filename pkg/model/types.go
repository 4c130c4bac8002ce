package model

import (
	"fmt"
)

// Issue is one news topic with a roundup and one article per perspective
type Issue struct {
	ID      int      `json:"id"`
	Title   string   `json:"issue"`
	Roundup []string `json:"roundup"`
	News    News     `json:"news"`
}

// Label returns the display title, falling back to the id for untitled issues
func (i Issue) Label() string {
	if i.Title == "" {
		return fmt.Sprintf("Issue #%d", i.ID)
	}
	return i.Title
}

// Clone creates a deep copy of the issue
func (i Issue) Clone() Issue {
	clone := i

	if i.Roundup != nil {
		clone.Roundup = make([]string, len(i.Roundup))
		copy(clone.Roundup, i.Roundup)
	}

	clone.News = News{
		Left:   i.News.Left.clone(),
		Center: i.News.Center.clone(),
		Right:  i.News.Right.clone(),
	}

	return clone
}

// Validate checks the issue shape and returns every problem found.
// A nil slice means the issue is well formed.
func (i *Issue) Validate() []Problem {
	var problems []Problem

	if i.Title == "" {
		problems = append(problems, Problem{Kind: ProblemEmptyTitle, Detail: "issue title is empty"})
	}

	for _, p := range Perspectives() {
		article, ok := i.News.Article(p)
		if !ok {
			problems = append(problems, Problem{
				Kind:        ProblemMissingPerspective,
				Perspective: p,
				Detail:      fmt.Sprintf("news.%s is missing", p),
			})
			continue
		}
		problems = append(problems, article.validate(p)...)
	}

	return problems
}

// FindIssue returns the first issue with the given id.
// Lookup is deterministic when ids repeat: earlier records win.
func FindIssue(issues []Issue, id int) (*Issue, bool) {
	for idx := range issues {
		if issues[idx].ID == id {
			return &issues[idx], true
		}
	}
	return nil, false
}

// Perspective is one of the three political perspectives an issue is covered from
type Perspective string

const (
	PerspectiveLeft   Perspective = "left"
	PerspectiveCenter Perspective = "center"
	PerspectiveRight  Perspective = "right"
)

// Perspectives returns all perspectives in display order
func Perspectives() []Perspective {
	return []Perspective{PerspectiveLeft, PerspectiveCenter, PerspectiveRight}
}

// ParsePerspective converts user input into a Perspective
func ParsePerspective(s string) (Perspective, error) {
	p := Perspective(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown perspective %q (valid: left, center, right)", s)
	}
	return p, nil
}

// IsValid returns true if the perspective is a recognized value
func (p Perspective) IsValid() bool {
	switch p {
	case PerspectiveLeft, PerspectiveCenter, PerspectiveRight:
		return true
	}
	return false
}

// Label returns the badge text for an article, e.g. "Left Perspective"
func (p Perspective) Label() string {
	switch p {
	case PerspectiveLeft:
		return "Left Perspective"
	case PerspectiveCenter:
		return "Center Perspective"
	case PerspectiveRight:
		return "Right Perspective"
	}
	return "Unknown Perspective"
}

// Heading returns the card heading, e.g. "From the Left"
func (p Perspective) Heading() string {
	switch p {
	case PerspectiveLeft:
		return "From the Left"
	case PerspectiveCenter:
		return "From the Center"
	case PerspectiveRight:
		return "From the Right"
	}
	return "From Elsewhere"
}

// News holds the article for each perspective. A nil entry means the
// record did not carry that perspective.
type News struct {
	Left   *PerspectiveArticle `json:"left,omitempty"`
	Center *PerspectiveArticle `json:"center,omitempty"`
	Right  *PerspectiveArticle `json:"right,omitempty"`
}

// Article returns the article for perspective p and whether it exists
func (n News) Article(p Perspective) (*PerspectiveArticle, bool) {
	var a *PerspectiveArticle
	switch p {
	case PerspectiveLeft:
		a = n.Left
	case PerspectiveCenter:
		a = n.Center
	case PerspectiveRight:
		a = n.Right
	}
	return a, a != nil
}

// PerspectiveArticle is a single news article annotated per paragraph.
// Lex[i] and Inf[i] describe Content[i].
type PerspectiveArticle struct {
	Title    string   `json:"newsTitle"`
	Source   string   `json:"newsSource"`
	Link     string   `json:"newsLink"`
	TopImage string   `json:"topImage"`
	Content  []string `json:"newsContent"`
	Lex      []int    `json:"lex"`
	Inf      []int    `json:"inf"`
}

// LexicalAt reports whether paragraph i carries lexical bias.
// Out-of-range indices are unflagged.
func (a *PerspectiveArticle) LexicalAt(i int) bool {
	return flagAt(a.Lex, i)
}

// InformationalAt reports whether paragraph i carries informational bias.
// Out-of-range indices are unflagged.
func (a *PerspectiveArticle) InformationalAt(i int) bool {
	return flagAt(a.Inf, i)
}

// Flagged reports whether paragraph i carries either kind of bias
func (a *PerspectiveArticle) Flagged(i int) bool {
	return a.LexicalAt(i) || a.InformationalAt(i)
}

func flagAt(flags []int, i int) bool {
	if i < 0 || i >= len(flags) {
		return false
	}
	return flags[i] == 1
}

func (a *PerspectiveArticle) validate(p Perspective) []Problem {
	var problems []Problem
	n := len(a.Content)

	if len(a.Lex) != n {
		problems = append(problems, Problem{
			Kind:        ProblemFlagLength,
			Perspective: p,
			Detail:      fmt.Sprintf("news.%s.lex has %d flags for %d paragraphs", p, len(a.Lex), n),
		})
	}
	if len(a.Inf) != n {
		problems = append(problems, Problem{
			Kind:        ProblemFlagLength,
			Perspective: p,
			Detail:      fmt.Sprintf("news.%s.inf has %d flags for %d paragraphs", p, len(a.Inf), n),
		})
	}

	sets := []struct {
		name  string
		flags []int
	}{{"lex", a.Lex}, {"inf", a.Inf}}
	for _, set := range sets {
		for i, v := range set.flags {
			if v != 0 && v != 1 {
				problems = append(problems, Problem{
					Kind:        ProblemFlagValue,
					Perspective: p,
					Detail:      fmt.Sprintf("news.%s.%s[%d] is %d, want 0 or 1", p, set.name, i, v),
				})
				break
			}
		}
	}

	return problems
}

func (a *PerspectiveArticle) clone() *PerspectiveArticle {
	if a == nil {
		return nil
	}
	v := *a
	v.Content = append([]string(nil), a.Content...)
	v.Lex = append([]int(nil), a.Lex...)
	v.Inf = append([]int(nil), a.Inf...)
	return &v
}

// ProblemKind categorizes a shape problem on a record
type ProblemKind string

const (
	ProblemMissingPerspective ProblemKind = "missing_perspective"
	ProblemEmptyTitle         ProblemKind = "empty_title"
	ProblemFlagLength         ProblemKind = "flag_length"
	ProblemFlagValue          ProblemKind = "flag_value"
	ProblemDuplicateID        ProblemKind = "duplicate_id"
)

// Excludes returns true if a record with this problem cannot be shown at all
func (k ProblemKind) Excludes() bool {
	return k == ProblemMissingPerspective
}

// Problem describes one shape defect in a record
type Problem struct {
	Kind        ProblemKind `json:"kind"`
	Perspective Perspective `json:"perspective,omitempty"`
	Detail      string      `json:"detail"`
}
