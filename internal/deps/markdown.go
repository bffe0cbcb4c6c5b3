package deps

import (
	"strconv"
	"strings"
)

// GenerateMarkdown renders a dependency list as a markdown section the
// parser's structured pass recognizes. Entries are grouped under
// "**Depends on:**" and "**Blocks:**" headers, one bullet per entry.
// An empty list yields an empty string.
func GenerateMarkdown(dependencies []IssueDependency) string {
	if len(dependencies) == 0 {
		return ""
	}

	var dependsOn, blocks []IssueDependency
	for _, d := range dependencies {
		switch d.Type {
		case DependsOn:
			dependsOn = append(dependsOn, d)
		case Blocks:
			blocks = append(blocks, d)
		}
	}
	if len(dependsOn) == 0 && len(blocks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Dependencies\n")

	if len(dependsOn) > 0 {
		b.WriteString("\n**Depends on:**\n")
		for _, d := range dependsOn {
			writeBullet(&b, d)
		}
	}
	if len(blocks) > 0 {
		b.WriteString("\n**Blocks:**\n")
		for _, d := range blocks {
			writeBullet(&b, d)
		}
	}
	return b.String()
}

func writeBullet(b *strings.Builder, d IssueDependency) {
	b.WriteString("- ")
	if d.Repository != "" {
		b.WriteString(d.Repository)
	}
	b.WriteString("#")
	b.WriteString(strconv.Itoa(d.IssueNumber))
	if d.Description != "" {
		b.WriteString(" (")
		b.WriteString(d.Description)
		b.WriteString(")")
	}
	b.WriteString("\n")
}
