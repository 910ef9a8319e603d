package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gemini-keydoctor/internal/diagnostic"
)

const bannerWidth = 60

// Console prints a diagnostic run for humans. It implements
// diagnostic.Progress so step lines appear while probes are in flight.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) banner() string {
	return strings.Repeat("=", bannerWidth)
}

func (c *Console) Header() {
	fmt.Fprintf(c.w, "\n%s\n", c.banner())
	fmt.Fprintln(c.w, "🔍 GEMINI API DIAGNOSTIC TEST")
	fmt.Fprintln(c.w, c.banner())
}

func (c *Console) StepStarted(step diagnostic.Step, index, total int) {
	fmt.Fprintf(c.w, "\n[%d/%d] %s\n", index, total, step.Title)
}

func (c *Console) StepFinished(_ diagnostic.Step, _, _ int, res diagnostic.ProbeResult) {
	fmt.Fprintf(c.w, "      %s\n", res.Message)
}

func (c *Console) Summary(report diagnostic.Report) {
	fmt.Fprintf(c.w, "\n%s\n", c.banner())
	fmt.Fprintln(c.w, "📊 TEST SUMMARY")
	fmt.Fprintln(c.w, c.banner())

	if report.Passed() {
		fmt.Fprintln(c.w, "✅ All tests PASSED! Your Gemini API is working correctly.")
	} else {
		fmt.Fprintln(c.w, "❌ Some tests FAILED. Check the details above.")
	}

	fmt.Fprintln(c.w, "\nDetailed Results:")
	for _, step := range diagnostic.Steps {
		res, ok := report.Result(step.Name)
		if !ok {
			continue
		}
		fmt.Fprintf(c.w, "  • %-17s%s\n", step.Label+":", res.Message)
	}
	fmt.Fprintf(c.w, "%s\n\n", c.banner())
}

// JSONReport writes the report as indented JSON.
func JSONReport(w io.Writer, report diagnostic.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

var _ diagnostic.Progress = (*Console)(nil)
