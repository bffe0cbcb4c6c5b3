package deps

import (
	"fmt"
)

// Validate checks a dependency set for self-references, duplicates, and
// depends_on/blocks conflicts. currentIssue is the number of the issue the
// dependencies belong to; pass 0 when the context is unknown, which skips
// the self-dependency check. Duplicates and conflicts are warnings only;
// a self-dependency is an error. The result is always structured, never
// an error return.
func Validate(dependencies []IssueDependency, currentIssue int) Validation {
	v := Validation{Warnings: []string{}, Errors: []string{}}

	seen := make(map[string]struct{})
	types := make(map[string]map[DependencyType]struct{})
	conflicted := make(map[string]struct{})

	for _, d := range dependencies {
		if currentIssue > 0 && d.IssueNumber == currentIssue && d.Repository == "" {
			v.Errors = append(v.Errors, fmt.Sprintf("issue cannot depend on itself (#%d)", d.IssueNumber))
		}

		key := d.Key()
		if _, dup := seen[key]; dup {
			v.Warnings = append(v.Warnings, fmt.Sprintf("duplicate dependency: %s", describeRef(d)))
		} else {
			seen[key] = struct{}{}
		}

		issueKey := fmt.Sprintf("%s#%d", d.Repository, d.IssueNumber)
		if types[issueKey] == nil {
			types[issueKey] = make(map[DependencyType]struct{})
		}
		types[issueKey][d.Type] = struct{}{}

		_, hasDep := types[issueKey][DependsOn]
		_, hasBlock := types[issueKey][Blocks]
		if hasDep && hasBlock {
			if _, done := conflicted[issueKey]; !done {
				conflicted[issueKey] = struct{}{}
				v.Warnings = append(v.Warnings, fmt.Sprintf("conflicting depends_on and blocks for #%d", d.IssueNumber))
			}
		}
	}

	v.IsValid = len(v.Errors) == 0
	return v
}

// describeRef renders a dependency as it would appear in issue text.
func describeRef(d IssueDependency) string {
	if d.Repository != "" {
		return fmt.Sprintf("%s %s#%d", d.Type, d.Repository, d.IssueNumber)
	}
	return fmt.Sprintf("%s #%d", d.Type, d.IssueNumber)
}
