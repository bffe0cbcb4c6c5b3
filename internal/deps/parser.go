package deps

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parser extracts typed dependency references from free-form and structured
// issue text. Two independent passes run over the same body: an inline
// keyword pass over raw lines and a structured pass over markdown
// "## Dependencies" sections. Results are unioned and deduplicated, with
// the first occurrence winning for optional fields.
type Parser struct {
	md goldmark.Markdown
}

var (
	// Inline keyword lists: "Depends on: #1, owner/repo#2" and the
	// Japanese equivalents. Full-width colons appear in Japanese bodies.
	inlineDependsRe = regexp.MustCompile(`(?i)(?:depends on|依存)\s*[:：]\s*(.+)`)
	inlineBlocksRe  = regexp.MustCompile(`(?i)(?:blocks|ブロック)\s*[:：]\s*(.+)`)

	// An issue reference: "#N" or "owner/repo#N".
	refScanRe = regexp.MustCompile(`(?:([A-Za-z0-9][A-Za-z0-9_.-]*/[A-Za-z0-9][A-Za-z0-9_.-]*))?#(\d+)`)

	// Structured bullet: "Depends on: #N (description)". The keyword may
	// also appear as a bare 依存/ブロック prefix without a colon.
	bulletRe  = regexp.MustCompile(`(?i)^(depends on|blocks|依存|ブロック)\s*[:：]?\s*(.+)$`)
	refDescRe = regexp.MustCompile(`^((?:[A-Za-z0-9][A-Za-z0-9_.-]*/[A-Za-z0-9][A-Za-z0-9_.-]*)?#\d+)(?:\s*[（(](.*?)[）)])?`)
)

// NewParser creates a Parser with a default goldmark instance.
func NewParser() *Parser {
	return &Parser{md: goldmark.New()}
}

// Parse extracts dependencies from body. currentRepo names the repository
// the body belongs to; references that explicitly name it are normalized
// to same-repo (empty Repository) so they deduplicate against bare "#N"
// references. Output preserves first-appearance order across both passes.
// Malformed references are dropped, never surfaced as errors.
func (p *Parser) Parse(body, currentRepo string) []IssueDependency {
	var out []IssueDependency
	seen := make(map[string]struct{})
	add := func(d IssueDependency) {
		if d.Repository == currentRepo {
			d.Repository = ""
		}
		key := d.Key()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}

	p.parseInline(body, add)
	p.parseSections(body, add)
	return out
}

// parseInline scans raw lines for "depends on:" / "blocks:" keyword lists.
// Bullet lines are left to the structured pass, which knows how to carry
// their parenthesized descriptions.
func (p *Parser) parseInline(body string, add func(IssueDependency)) {
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			continue
		}
		if m := inlineDependsRe.FindStringSubmatch(line); m != nil {
			p.parseRefList(m[1], DependsOn, add)
		}
		if m := inlineBlocksRe.FindStringSubmatch(line); m != nil {
			p.parseRefList(m[1], Blocks, add)
		}
	}
}

// parseRefList extracts references from a comma-separated list. Items
// without a parseable reference are skipped.
func (p *Parser) parseRefList(list string, typ DependencyType, add func(IssueDependency)) {
	for _, item := range splitList(list) {
		dep, ok := parseRef(item)
		if !ok {
			continue
		}
		dep.Type = typ
		add(dep)
	}
}

// parseSections walks the markdown AST for "## Dependencies" / "## 依存関係"
// headings and parses the bullet lists that follow them.
func (p *Parser) parseSections(body string, add func(IssueDependency)) {
	src := []byte(body)
	doc := p.md.Parser().Parse(text.NewReader(src))

	inSection := false
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(nodeText(n, src))
			inSection = n.Level == 2 && (title == "Dependencies" || title == "依存関係")
		case *ast.List:
			if !inSection {
				continue
			}
			for li := n.FirstChild(); li != nil; li = li.NextSibling() {
				p.parseBullet(strings.TrimSpace(nodeText(li, src)), add)
			}
		}
	}
}

// parseBullet parses one structured bullet line, e.g.
// "Depends on: #123 (auth must land first)".
func (p *Parser) parseBullet(line string, add func(IssueDependency)) {
	m := bulletRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	rd := refDescRe.FindStringSubmatch(strings.TrimSpace(m[2]))
	if rd == nil {
		return
	}
	dep, ok := parseRef(rd[1])
	if !ok {
		return
	}
	dep.Type = keywordType(m[1])
	dep.Description = strings.TrimSpace(rd[2])
	add(dep)
}

// parseRef parses a single "#N" or "owner/repo#N" reference. A reference
// is rejected only when its numeric part does not parse as a positive
// integer.
func parseRef(s string) (IssueDependency, bool) {
	m := refScanRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return IssueDependency{}, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n <= 0 {
		return IssueDependency{}, false
	}
	return IssueDependency{IssueNumber: n, Repository: m[1]}, true
}

func keywordType(keyword string) DependencyType {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if strings.HasPrefix(kw, "depends") || kw == "依存" {
		return DependsOn
	}
	return Blocks
}

// splitList splits a keyword list on ASCII and Japanese commas.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '、'
	})
}

// nodeText collects the raw text content of a markdown node and its
// descendants.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
