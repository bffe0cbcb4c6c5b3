package deps

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "", GenerateMarkdown(nil))
	assert.Equal(t, "", GenerateMarkdown([]IssueDependency{}))
}

func TestGenerateMarkdown_Grouping(t *testing.T) {
	md := GenerateMarkdown([]IssueDependency{
		{Type: DependsOn, IssueNumber: 123, Description: "auth first"},
		{Type: Blocks, IssueNumber: 456},
		{Type: DependsOn, IssueNumber: 9, Repository: "owner/lib"},
	})

	assert.True(t, strings.HasPrefix(md, "## Dependencies\n"))
	assert.Contains(t, md, "**Depends on:**\n- #123 (auth first)\n- owner/lib#9\n")
	assert.Contains(t, md, "**Blocks:**\n- #456\n")
	assert.Less(t, strings.Index(md, "**Depends on:**"), strings.Index(md, "**Blocks:**"))
}

func TestGenerateMarkdown_OnlyBlocks(t *testing.T) {
	md := GenerateMarkdown([]IssueDependency{
		{Type: Blocks, IssueNumber: 7},
	})

	assert.Contains(t, md, "## Dependencies")
	assert.Contains(t, md, "**Blocks:**")
	assert.NotContains(t, md, "**Depends on:**")
}
