// Package validate checks generated dashboards and rule files for PromQL
// syntax errors and references to metrics the notifier does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/price-alert-notifier/tools/dashgen/rules"
)

// histogramSuffixes are the series suffixes Prometheus derives from a
// histogram's base name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors fail generation; warnings
// are informational.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation produced no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Dashboard validates every Prometheus target in dash against known.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result
	for _, p := range dash.Panels {
		if p.Panel != nil {
			checkPanel(&r, *p.Panel, known)
		}
		if p.RowPanel != nil {
			for _, inner := range p.RowPanel.Panels {
				checkPanel(&r, inner, known)
			}
		}
	}
	return r
}

// Rules validates every expression in cr against known. Records defined
// earlier in the same file count as known for later rules.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result

	defined := make(map[string]bool, len(known))
	for k, v := range known {
		defined[k] = v
	}

	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			if name == "" {
				r.errorf("group %s: rule has neither record nor alert", g.Name)
				continue
			}
			checkExpr(&r, fmt.Sprintf("rule %s", name), rule.Expr, defined)
			if rule.Record != "" {
				defined[rule.Record] = true
			}
		}
	}
	return r
}

func checkPanel(r *Result, p dashboard.Panel, known map[string]bool) {
	title := "untitled"
	if p.Title != nil {
		title = *p.Title
	}

	if len(p.Targets) == 0 {
		r.warnf("panel %q has no targets", title)
		return
	}

	for _, t := range p.Targets {
		q, err := promTarget(t)
		if err != nil {
			r.errorf("panel %q: %v", title, err)
			continue
		}
		checkExpr(r, fmt.Sprintf("panel %q target %s", title, q.RefID), q.Expr, known)
	}
}

type promQuery struct {
	Expr  string `json:"expr"`
	RefID string `json:"refId"`
}

// promTarget extracts the expression from a dataquery variant through its
// JSON form so any datasource's query type can be inspected.
func promTarget(t any) (promQuery, error) {
	var q promQuery
	data, err := json.Marshal(t)
	if err != nil {
		return q, fmt.Errorf("encoding target: %w", err)
	}
	if err := json.Unmarshal(data, &q); err != nil {
		return q, fmt.Errorf("decoding target: %w", err)
	}
	if q.Expr == "" {
		return q, fmt.Errorf("target %s has no expression", q.RefID)
	}
	return q, nil
}

func checkExpr(r *Result, where, expr string, known map[string]bool) {
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		r.errorf("%s: invalid PromQL: %v", where, err)
		return
	}

	for _, name := range MetricNames(parsed) {
		if !isKnown(name, known) {
			r.errorf("%s: unknown metric %q", where, name)
		}
	}
}

// MetricNames returns the metric names selected anywhere in expr, in the
// order they appear.
func MetricNames(expr parser.Expr) []string {
	var names []string
	parser.Inspect(expr, func(node parser.Node, _ []parser.Node) error {
		if vs, ok := node.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, vs.Name)
		}
		return nil
	})
	return names
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
