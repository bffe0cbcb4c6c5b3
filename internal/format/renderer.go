package format

import (
	"github.com/higexxp/issuedash/internal/deps"
	"github.com/higexxp/issuedash/internal/timetrack"
)

// Renderer defines the interface for formatting dashboard resources.
// Different implementations can render to text, JSON, or other formats.
type Renderer interface {
	RenderDependencies(dependencies []deps.IssueDependency) string
	RenderValidation(v *deps.Validation) string
	RenderGraph(g *deps.Graph) string
	RenderSession(s *timetrack.Session) string
	RenderEntryList(entries []timetrack.Entry) string
	RenderReport(r *timetrack.Report) string
}
