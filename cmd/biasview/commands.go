package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/biasaware/biasview/pkg/analysis"
	"github.com/biasaware/biasview/pkg/export"
	"github.com/biasaware/biasview/pkg/model"
	"github.com/biasaware/biasview/pkg/session"
	"github.com/biasaware/biasview/pkg/ui"
)

// Replaced in tests
var (
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
	terminalWidth = func() int {
		w, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || w <= 0 {
			return 80
		}
		return w
	}
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "biasview version %s\n", version)
		},
	}
}

// validateReport is the --json output of validate
type validateReport struct {
	Source   string          `json:"source"`
	OK       bool            `json:"ok"`
	Error    string          `json:"error,omitempty"`
	Issues   int             `json:"issues"`
	Excluded int             `json:"excluded"`
	Warnings []warningReport `json:"warnings"`
}

type warningReport struct {
	Line        int    `json:"line"`
	IssueID     int    `json:"issue_id"`
	Kind        string `json:"kind"`
	Perspective string `json:"perspective,omitempty"`
	Detail      string `json:"detail,omitempty"`
	Excluded    bool   `json:"excluded"`
}

func newValidateCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the dataset and report shape warnings",
		Long: `Load the dataset from scratch and report how many issues it holds and any
shape warnings. Exits non-zero when the load fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := a.source()
			ds, err := a.loader.LoadShared(cmd.Context(), src)

			report := validateReport{Source: src.String(), OK: err == nil, Warnings: []warningReport{}}
			if err != nil {
				report.Error = err.Error()
			} else {
				report.Issues = len(ds.Issues)
				report.Excluded = ds.Excluded()
				for _, w := range ds.Warnings {
					report.Warnings = append(report.Warnings, warningReport{
						Line:        w.Line,
						IssueID:     w.IssueID,
						Kind:        string(w.Problem.Kind),
						Perspective: string(w.Problem.Perspective),
						Detail:      w.Problem.Detail,
						Excluded:    w.Excluded(),
					})
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(report); encErr != nil {
					return encErr
				}
			} else if err == nil {
				fmt.Fprintf(out, "source:   %s\n", report.Source)
				fmt.Fprintf(out, "issues:   %d\n", report.Issues)
				fmt.Fprintf(out, "excluded: %d\n", report.Excluded)
				fmt.Fprintf(out, "warnings: %d\n", len(report.Warnings))
				for _, w := range ds.Warnings {
					fmt.Fprintf(out, "  %s\n", w)
				}
			}
			if err != nil {
				return fmt.Errorf("validate %s: %w", src, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List issues in load order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, issue := range ds.Issues {
				fmt.Fprintf(out, "%4d  %s\n", issue.ID, issue.Label())
			}
			return nil
		},
	}
}

func newReadCmd(a *app) *cobra.Command {
	var perspective string
	cmd := &cobra.Command{
		Use:   "read [issue]",
		Short: "Print an issue or one of its articles",
		Long: `Print an issue overview, or the article for one perspective with its bias
annotations. The issue is an id or a fuzzy match on its title. On a terminal,
missing choices are asked for interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			s := session.New()
			s.Finish(ds, nil)

			var issue *model.Issue
			switch {
			case len(args) == 1:
				issue, err = resolveIssue(s.Issues(), args[0])
			case isTerminal():
				issue, err = pickIssue(s.Issues())
			default:
				err = errors.New("issue argument required when not attached to a terminal")
			}
			if err != nil {
				return err
			}
			s.SelectIssue(issue.ID)

			var p model.Perspective
			switch {
			case perspective != "":
				p, err = model.ParsePerspective(perspective)
			case isTerminal():
				p, err = pickPerspective(issue)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			theme := ui.DefaultTheme(lipgloss.NewRenderer(out))
			width := terminalWidth()

			if p == "" {
				fmt.Fprintln(out, ui.RenderIssue(*issue, width, theme))
				return nil
			}
			if err := s.SelectPerspective(p); err != nil {
				return fmt.Errorf("%s: %w", p.Label(), err)
			}
			article, _, _ := s.SelectedArticle()
			a.logger.Debug("reading article", zap.Int("issue", issue.ID), zap.String("perspective", string(p)))
			fmt.Fprint(out, ui.RenderArticle(article, p, width, theme))
			return nil
		},
	}
	cmd.Flags().StringVarP(&perspective, "perspective", "p", "", "Perspective to read: left, center or right")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show bias rates per perspective",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			summary := analysis.Summarize(ds.Issues)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			fmt.Fprintln(out, renderStats(summary, len(ds.Issues), lipgloss.NewRenderer(out)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

func renderStats(summary []analysis.PerspectiveSummary, issues int, r *lipgloss.Renderer) string {
	percent := func(v float64) string { return strconv.FormatFloat(v*100, 'f', 1, 64) + "%" }

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("#6272A4"))).
		Headers("Perspective", "Articles", ui.LexicalBadge, ui.InformationalBadge, "Any")
	for _, ps := range summary {
		t.Row(ps.Perspective.Label(), strconv.Itoa(ps.Articles),
			percent(ps.MeanLexicalRate), percent(ps.MeanInformationalRate), percent(ps.MeanFlaggedRate))
	}
	return fmt.Sprintf("%d issues, mean share of biased paragraphs per article\n%s", issues, t.Render())
}

func newChartCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "chart <issue>",
		Short: "Write a bias chart for an issue as SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			issue, err := resolveIssue(ds.Issues, args[0])
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = fmt.Sprintf("issue-%d.svg", issue.ID)
			}
			if err := export.WriteFile(outPath, analysis.AnalyzeIssue(*issue)); err != nil {
				return err
			}
			a.logger.Info("chart written", zap.Int("issue", issue.ID), zap.String("path", outPath))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.Clean(outPath))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file, .svg or .png (default issue-<id>.svg)")
	return cmd
}

// resolveIssue finds an issue by id, or by the best fuzzy match on its title
func resolveIssue(issues []model.Issue, arg string) (*model.Issue, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		issue, ok := model.FindIssue(issues, id)
		if !ok {
			return nil, fmt.Errorf("no issue with id %d", id)
		}
		return issue, nil
	}

	titles := make([]string, len(issues))
	for i, issue := range issues {
		titles[i] = issue.Label()
	}
	matches := fuzzy.Find(arg, titles)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no issue matches %q", arg)
	}
	return &issues[matches[0].Index], nil
}

func pickIssue(issues []model.Issue) (*model.Issue, error) {
	if len(issues) == 0 {
		return nil, errors.New("the dataset has no issues")
	}
	options := make([]huh.Option[int], 0, len(issues))
	for _, issue := range issues {
		options = append(options, huh.NewOption(issue.Label(), issue.ID))
	}

	var id int
	if err := huh.NewSelect[int]().
		Title("Select an Issue").
		Options(options...).
		Value(&id).
		Run(); err != nil {
		return nil, err
	}
	issue, _ := model.FindIssue(issues, id)
	return issue, nil
}

// pickPerspective returns "" when the user chooses the overview
func pickPerspective(issue *model.Issue) (model.Perspective, error) {
	options := []huh.Option[model.Perspective]{huh.NewOption("Issue overview", model.Perspective(""))}
	for _, p := range model.Perspectives() {
		if a, ok := issue.News.Article(p); ok {
			options = append(options, huh.NewOption(p.Heading()+": "+a.Title, p))
		}
	}

	var p model.Perspective
	if err := huh.NewSelect[model.Perspective]().
		Title(issue.Label()).
		Options(options...).
		Value(&p).
		Run(); err != nil {
		return "", err
	}
	return p, nil
}
