// Package report summarizes sweep result files per model.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pingcap/errors"
)

// ModelSummary aggregates every row recorded for one model.
type ModelSummary struct {
	Model string `json:"model"`
	Runs  int    `json:"runs"`

	// Mean +/- std of rate_mean over rows that reported it.
	RateMean float64 `json:"rate_mean"`
	RateStd  float64 `json:"rate_std"`

	// p50/p95 of duration_mean over rows that reported it.
	DurationP50 float64 `json:"duration_p50"`
	DurationP95 float64 `json:"duration_p95"`

	Errors float64 `json:"errors"`

	// Cells that were N/A or otherwise not numeric.
	Unavailable int `json:"unavailable"`
}

// LoadFile reads a results file written by either sweep and summarizes it.
func LoadFile(path string) ([]ModelSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "open %s", path)
	}
	defer f.Close()

	summaries, err := Summarize(f)
	if err != nil {
		return nil, errors.Annotatef(err, "summarize %s", path)
	}
	return summaries, nil
}

// Summarize reads CSV rows from r, keyed by the header row, and builds one
// ModelSummary per model in first-seen order.
func Summarize(r io.Reader) ([]ModelSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("results file is empty")
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols["model"]; !ok {
		return nil, errors.Errorf("results header has no model column: %v", header)
	}

	type samples struct {
		runs        int
		rates       []float64
		durations   []float64
		errors      float64
		unavailable int
	}
	var order []string
	byModel := map[string]*samples{}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Trace(err)
		}
		model := cell(rec, cols, "model")
		s, ok := byModel[model]
		if !ok {
			s = &samples{}
			byModel[model] = s
			order = append(order, model)
		}
		s.runs++

		if v, ok := number(rec, cols, "rate_mean"); ok {
			s.rates = append(s.rates, v)
		} else {
			s.unavailable++
		}
		if v, ok := number(rec, cols, "duration_mean"); ok {
			s.durations = append(s.durations, v)
		} else {
			s.unavailable++
		}
		if v, ok := number(rec, cols, "errors"); ok {
			s.errors += v
		} else {
			s.unavailable++
		}
	}

	out := make([]ModelSummary, 0, len(order))
	for _, model := range order {
		s := byModel[model]
		ms := ModelSummary{
			Model:       model,
			Runs:        s.runs,
			DurationP50: quantile(s.durations, 0.50),
			DurationP95: quantile(s.durations, 0.95),
			Errors:      s.errors,
			Unavailable: s.unavailable,
		}
		ms.RateMean, ms.RateStd = meanStd(s.rates)
		out = append(out, ms)
	}
	return out, nil
}

func cell(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func number(rec []string, cols map[string]int, name string) (float64, bool) {
	v, err := strconv.ParseFloat(cell(rec, cols, name), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Render writes summaries as a bordered table.
func Render(w io.Writer, summaries []ModelSummary) error {
	if len(summaries) == 0 {
		return errors.New("no results to report")
	}
	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("244"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Model", "Runs", "Rate mean", "Rate std", "Duration p50", "Duration p95", "Errors", "N/A")

	for _, s := range summaries {
		t.Row(
			s.Model,
			strconv.Itoa(s.Runs),
			fmt.Sprintf("%.3f", s.RateMean),
			fmt.Sprintf("%.3f", s.RateStd),
			fmt.Sprintf("%.3f", s.DurationP50),
			fmt.Sprintf("%.3f", s.DurationP95),
			strconv.FormatFloat(s.Errors, 'f', -1, 64),
			strconv.Itoa(s.Unavailable),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// RenderJSON writes summaries as indented JSON.
func RenderJSON(w io.Writer, summaries []ModelSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
