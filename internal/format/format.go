// Package format provides ASCII and JSON formatting for dashboard
// resources: dependency lists, graphs, validations, sessions, and time
// reports.
package format

import (
	"strconv"
	"strings"

	"github.com/higexxp/issuedash/internal/deps"
	"github.com/higexxp/issuedash/internal/timetrack"
)

// Formatter formats dashboard resources as ASCII text or JSON.
type Formatter struct {
	factory *RendererFactory
}

// New creates a new Formatter.
func New() *Formatter {
	return &Formatter{
		factory: NewRendererFactory(),
	}
}

// Dependencies renders a parsed dependency list.
func (f *Formatter) Dependencies(dependencies []deps.IssueDependency, outputType OutputType) string {
	return f.factory.GetRenderer(outputType).RenderDependencies(dependencies)
}

// Validation renders a validation result.
func (f *Formatter) Validation(v *deps.Validation, outputType OutputType) string {
	return f.factory.GetRenderer(outputType).RenderValidation(v)
}

// Graph renders a dependency graph.
func (f *Formatter) Graph(g *deps.Graph, outputType OutputType) string {
	return f.factory.GetRenderer(outputType).RenderGraph(g)
}

// Session renders a tracking session.
func (f *Formatter) Session(s *timetrack.Session, outputType OutputType) string {
	return f.factory.GetRenderer(outputType).RenderSession(s)
}

// EntryList renders a list of time entries.
func (f *Formatter) EntryList(entries []timetrack.Entry, outputType OutputType) string {
	return f.factory.GetRenderer(outputType).RenderEntryList(entries)
}

// Report renders a time report.
func (f *Formatter) Report(r *timetrack.Report, outputType OutputType) string {
	return f.factory.GetRenderer(outputType).RenderReport(r)
}

// --- Utility functions ---

// line creates a horizontal separator line
func line(width int) string {
	return strings.Repeat("─", width)
}

// refLabel renders a dependency reference as repo#N or #N.
func refLabel(repository string, number int) string {
	return repository + "#" + strconv.Itoa(number)
}
