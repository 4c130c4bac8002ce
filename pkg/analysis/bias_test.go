package analysis

import (
	"math"
	"testing"

	"github.com/biasaware/biasview/pkg/loader"
	"github.com/biasaware/biasview/pkg/model"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAnalyzeArticle(t *testing.T) {
	a := &model.PerspectiveArticle{
		Content: []string{"a", "b", "c", "d"},
		Lex:     []int{1, 0, 1, 0},
		Inf:     []int{1, 1, 0, 0},
	}
	ab := AnalyzeArticle(model.PerspectiveLeft, a)

	if ab.Paragraphs != 4 || ab.Lexical != 2 || ab.Informational != 2 || ab.Flagged != 3 {
		t.Errorf("unexpected counts %+v", ab)
	}
	if !approx(ab.LexicalRate, 0.5) || !approx(ab.FlaggedRate, 0.75) {
		t.Errorf("unexpected rates %+v", ab)
	}
}

func TestAnalyzeArticleShortFlags(t *testing.T) {
	a := &model.PerspectiveArticle{
		Content: []string{"a", "b", "c"},
		Lex:     []int{1},
	}
	ab := AnalyzeArticle(model.PerspectiveCenter, a)

	if ab.Lexical != 1 || ab.Informational != 0 {
		t.Errorf("missing flags count as unflagged, got %+v", ab)
	}
	if !approx(ab.LexicalRate, 1.0/3.0) {
		t.Errorf("got rate %f", ab.LexicalRate)
	}
}

func TestAnalyzeEmptyArticle(t *testing.T) {
	ab := AnalyzeArticle(model.PerspectiveRight, &model.PerspectiveArticle{})
	if ab.Paragraphs != 0 || ab.LexicalRate != 0 || math.IsNaN(ab.FlaggedRate) {
		t.Errorf("empty article should have zero rates, got %+v", ab)
	}
}

func TestAnalyzeIssueSkipsMissingPerspective(t *testing.T) {
	issue := model.Issue{ID: 4, Title: "T", News: model.News{
		Left:  &model.PerspectiveArticle{Content: []string{"a"}, Lex: []int{1}, Inf: []int{0}},
		Right: &model.PerspectiveArticle{Content: []string{"a"}, Lex: []int{0}, Inf: []int{0}},
	}}
	ib := AnalyzeIssue(issue)

	if len(ib.Articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(ib.Articles))
	}
	if _, ok := ib.Article(model.PerspectiveCenter); ok {
		t.Error("center is absent")
	}
	left, _ := ib.Article(model.PerspectiveLeft)
	if left.Lexical != 1 {
		t.Errorf("got %+v", left)
	}
}

func TestSummarizeSample(t *testing.T) {
	ds, err := loader.Sample()
	if err != nil {
		t.Fatal(err)
	}
	summary := Summarize(ds.Issues)

	if len(summary) != 3 {
		t.Fatalf("expected 3 perspectives, got %d", len(summary))
	}

	// Center articles in the sample carry no flags at all.
	center := summary[1]
	if center.Perspective != model.PerspectiveCenter || center.Articles != 2 {
		t.Fatalf("unexpected center summary %+v", center)
	}
	if center.MeanFlaggedRate != 0 {
		t.Errorf("center should be unflagged, got %f", center.MeanFlaggedRate)
	}

	// Left: climate lex 2/3, healthcare lex 1/3.
	left := summary[0]
	if !approx(left.MeanLexicalRate, 0.5) {
		t.Errorf("expected mean left lexical rate 0.5, got %f", left.MeanLexicalRate)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	for _, ps := range Summarize(nil) {
		if ps.Articles != 0 || ps.MeanLexicalRate != 0 {
			t.Errorf("expected zero summary, got %+v", ps)
		}
	}
}
