// Package report renders scored models as a text summary, an aligned
// table, CSV or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nodeadmin/sbmate/calculator"
	"github.com/nodeadmin/sbmate/pipeline"
)

const (
	FormatReport = "report"
	FormatTable  = "table"
	FormatCSV    = "csv"
	FormatJSON   = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatReport, FormatTable, FormatCSV, FormatJSON}

// Columns are the metric columns of the report, table and CSV outputs.
var Columns = []string{
	"annotatable_entities",
	"annotated_entities",
	"coverage",
	"consistent_entities",
	"consistency",
	"specificity",
}

const (
	rule      = "----------------------"
	nullValue = "null"
)

// Render writes batch to w in the given format.
func Render(w io.Writer, format string, batch *pipeline.Batch) error {
	switch format {
	case FormatReport:
		return renderReport(w, batch)
	case FormatTable:
		return renderTable(w, batch)
	case FormatCSV:
		return renderCSV(w, batch)
	case FormatJSON:
		return renderJSON(w, batch)
	}
	return fmt.Errorf("unknown output format %q, use one of %s", format, strings.Join(Formats, ", "))
}

// Summary is the multi-line text summary of one model.
func Summary(rep *calculator.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summary of Metrics (%s)\n%s\n", rep.Name, rule)
	values := row(rep)
	for i, col := range Columns {
		fmt.Fprintf(&sb, "%s: %s\n", col, values[i])
	}
	if rep.IndeterminateEntities > 0 {
		fmt.Fprintf(&sb, "indeterminate_entities: %d\n", rep.IndeterminateEntities)
	}
	sb.WriteString(rule + "\n")
	return sb.String()
}

func renderReport(w io.Writer, batch *pipeline.Batch) error {
	for _, res := range batch.Results {
		var err error
		if res.Err != nil {
			_, err = fmt.Fprintf(w, "Error (%s): %v\n", res.Path, res.Err)
		} else {
			_, err = io.WriteString(w, Summary(res.Report))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, batch *pipeline.Batch) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "model\t%s\t\n", strings.Join(Columns, "\t"))
	for _, rep := range batch.Reports() {
		fmt.Fprintf(tw, "%s\t%s\t\n", rep.Name, strings.Join(row(rep), "\t"))
	}
	return tw.Flush()
}

func renderCSV(w io.Writer, batch *pipeline.Batch) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"model"}, Columns...)); err != nil {
		return err
	}
	for _, rep := range batch.Reports() {
		if err := cw.Write(append([]string{rep.Name}, row(rep)...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonBatch struct {
	RunID   string               `json:"run_id"`
	Reports []*calculator.Report `json:"reports"`
	Errors  []jsonError          `json:"errors,omitempty"`
}

type jsonError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func renderJSON(w io.Writer, batch *pipeline.Batch) error {
	out := jsonBatch{RunID: batch.RunID, Reports: batch.Reports()}
	if out.Reports == nil {
		out.Reports = []*calculator.Report{}
	}
	for _, f := range batch.Failed() {
		out.Errors = append(out.Errors, jsonError{Path: f.Path, Error: f.Err.Error()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

func row(rep *calculator.Report) []string {
	return []string{
		strconv.Itoa(rep.AnnotatableEntities),
		strconv.Itoa(rep.AnnotatedEntities),
		ratio(rep.Coverage),
		strconv.Itoa(rep.ConsistentEntities),
		ratio(rep.Consistency),
		ratio(rep.Specificity),
	}
}

func ratio(v *float64) string {
	if v == nil {
		return nullValue
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
