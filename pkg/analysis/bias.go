package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/biasaware/biasview/pkg/model"
)

// ============================================================================
// Bias Rates
// Per-paragraph lex/inf flags rolled up per article, issue, and dataset
// ============================================================================

// ArticleBias summarizes the flagged paragraphs of one article
type ArticleBias struct {
	Perspective       model.Perspective `json:"perspective"`
	Paragraphs        int               `json:"paragraphs"`         // Paragraph count
	Lexical           int               `json:"lexical"`            // Paragraphs with lexical bias
	Informational     int               `json:"informational"`      // Paragraphs with informational bias
	Flagged           int               `json:"flagged"`            // Paragraphs with either kind
	LexicalRate       float64           `json:"lexical_rate"`       // Lexical / Paragraphs, 0 when empty
	InformationalRate float64           `json:"informational_rate"` // Informational / Paragraphs, 0 when empty
	FlaggedRate       float64           `json:"flagged_rate"`       // Flagged / Paragraphs, 0 when empty
}

// IssueBias holds the article summaries for each perspective present on an issue
type IssueBias struct {
	IssueID  int           `json:"issue_id"`
	Title    string        `json:"title"`
	Articles []ArticleBias `json:"articles"` // Display order; absent perspectives are skipped
}

// Article returns the summary for perspective p, if the issue has one
func (ib IssueBias) Article(p model.Perspective) (ArticleBias, bool) {
	for _, a := range ib.Articles {
		if a.Perspective == p {
			return a, true
		}
	}
	return ArticleBias{}, false
}

// PerspectiveSummary is the dataset-wide view of one perspective
type PerspectiveSummary struct {
	Perspective           model.Perspective `json:"perspective"`
	Articles              int               `json:"articles"`
	MeanLexicalRate       float64           `json:"mean_lexical_rate"`
	MeanInformationalRate float64           `json:"mean_informational_rate"`
	MeanFlaggedRate       float64           `json:"mean_flagged_rate"`
}

// AnalyzeArticle computes bias counts for one article. Flags past the end
// of the content, or missing, count as unflagged.
func AnalyzeArticle(p model.Perspective, a *model.PerspectiveArticle) ArticleBias {
	n := len(a.Content)
	lex := make([]float64, n)
	inf := make([]float64, n)
	flagged := make([]float64, n)
	for i := 0; i < n; i++ {
		if a.LexicalAt(i) {
			lex[i] = 1
		}
		if a.InformationalAt(i) {
			inf[i] = 1
		}
		if a.Flagged(i) {
			flagged[i] = 1
		}
	}

	ab := ArticleBias{
		Perspective:   p,
		Paragraphs:    n,
		Lexical:       int(floats.Sum(lex)),
		Informational: int(floats.Sum(inf)),
		Flagged:       int(floats.Sum(flagged)),
	}
	if n > 0 {
		ab.LexicalRate = stat.Mean(lex, nil)
		ab.InformationalRate = stat.Mean(inf, nil)
		ab.FlaggedRate = stat.Mean(flagged, nil)
	}
	return ab
}

// AnalyzeIssue computes bias counts for every perspective on the issue
func AnalyzeIssue(issue model.Issue) IssueBias {
	ib := IssueBias{IssueID: issue.ID, Title: issue.Label()}
	for _, p := range model.Perspectives() {
		if a, ok := issue.News.Article(p); ok {
			ib.Articles = append(ib.Articles, AnalyzeArticle(p, a))
		}
	}
	return ib
}

// Summarize averages article rates per perspective across issues.
// Each article weighs the same regardless of its length.
func Summarize(issues []model.Issue) []PerspectiveSummary {
	type rates struct{ lex, inf, flagged []float64 }
	byPerspective := make(map[model.Perspective]*rates)
	for _, p := range model.Perspectives() {
		byPerspective[p] = &rates{}
	}

	for _, issue := range issues {
		for _, ab := range AnalyzeIssue(issue).Articles {
			r := byPerspective[ab.Perspective]
			r.lex = append(r.lex, ab.LexicalRate)
			r.inf = append(r.inf, ab.InformationalRate)
			r.flagged = append(r.flagged, ab.FlaggedRate)
		}
	}

	out := make([]PerspectiveSummary, 0, len(byPerspective))
	for _, p := range model.Perspectives() {
		r := byPerspective[p]
		ps := PerspectiveSummary{Perspective: p, Articles: len(r.lex)}
		if len(r.lex) > 0 {
			ps.MeanLexicalRate = stat.Mean(r.lex, nil)
			ps.MeanInformationalRate = stat.Mean(r.inf, nil)
			ps.MeanFlaggedRate = stat.Mean(r.flagged, nil)
		}
		out = append(out, ps)
	}
	return out
}
