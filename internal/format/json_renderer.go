package format

import (
	"encoding/json"
	"fmt"

	"github.com/higexxp/issuedash/internal/deps"
	"github.com/higexxp/issuedash/internal/timetrack"
)

// JSONRenderer renders dashboard resources as JSON.
// This provides machine-readable output for scripting and automation.
type JSONRenderer struct{}

func (r *JSONRenderer) RenderDependencies(dependencies []deps.IssueDependency) string {
	if dependencies == nil {
		dependencies = []deps.IssueDependency{}
	}
	return r.marshal(dependencies)
}

func (r *JSONRenderer) RenderValidation(v *deps.Validation) string {
	if v == nil {
		return r.renderError("validation is nil")
	}
	return r.marshal(v)
}

func (r *JSONRenderer) RenderGraph(g *deps.Graph) string {
	if g == nil {
		return r.renderError("graph is nil")
	}
	return r.marshal(g)
}

func (r *JSONRenderer) RenderSession(s *timetrack.Session) string {
	if s == nil {
		return "null"
	}
	return r.marshal(s)
}

func (r *JSONRenderer) RenderEntryList(entries []timetrack.Entry) string {
	if entries == nil {
		entries = []timetrack.Entry{}
	}
	return r.marshal(entries)
}

func (r *JSONRenderer) RenderReport(rep *timetrack.Report) string {
	if rep == nil {
		return r.renderError("report is nil")
	}
	return r.marshal(rep)
}

// marshal converts a value to indented JSON.
func (r *JSONRenderer) marshal(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return r.renderError(fmt.Sprintf("failed to marshal: %v", err))
	}
	return string(data)
}

// renderError returns a JSON error object.
func (r *JSONRenderer) renderError(msg string) string {
	return fmt.Sprintf(`{"error": %q}`, msg)
}
