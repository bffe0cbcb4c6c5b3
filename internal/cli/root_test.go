package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higexxp/issuedash/internal/config"
	"github.com/higexxp/issuedash/internal/deps"
	"github.com/higexxp/issuedash/internal/format"
	"github.com/higexxp/issuedash/internal/service"
	"github.com/higexxp/issuedash/internal/timetrack"
)

// stubSync returns a fixed graph without touching GitHub.
type stubSync struct {
	graph *deps.Graph
	err   error
	repos []string
}

func (s *stubSync) SyncRepository(ctx context.Context, repository string) (*deps.Graph, error) {
	return s.Sync(ctx, []string{repository})
}

func (s *stubSync) Sync(ctx context.Context, repositories []string) (*deps.Graph, error) {
	s.repos = repositories
	return s.graph, s.err
}

func newTestDeps(t *testing.T) (*Dependencies, *stubSync) {
	t.Helper()

	store, err := timetrack.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	depSvc := service.NewDependencyService(time.Minute, time.Minute, nil)
	t.Cleanup(depSvc.Close)

	sync := &stubSync{graph: &deps.Graph{}}
	cfg := config.Default()
	return &Dependencies{
		Config:    cfg,
		Formatter: format.New(),
		Deps:      depSvc,
		Time:      service.NewTimeService(store, nil, nil),
		Sync:      sync,
	}, sync
}

// execCommand runs the CLI with injected dependencies and captured output.
func execCommand(t *testing.T, d *Dependencies, stdin string, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCmd()
	rootCmd.SetContext(context.WithValue(context.Background(), dependenciesKey, d))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	d, _ := newTestDeps(t)

	out, err := execCommand(t, d, "Depends on: #123 (auth)\nBlocks: #456",
		"parse", "-", "--repo", "owner/repo")
	require.NoError(t, err)

	assert.Contains(t, out, "DEPENDENCIES (2)")
	assert.Contains(t, out, "depends on #123 (auth)")
	assert.Contains(t, out, "blocks #456")
}

func TestParseCommand_JSONOutput(t *testing.T) {
	d, _ := newTestDeps(t)

	out, err := execCommand(t, d, "Depends on: #123",
		"parse", "-", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "depends_on"`)
	assert.Contains(t, out, `"issueNumber": 123`)
}

func TestValidateCommand_SelfDependencyFails(t *testing.T) {
	d, _ := newTestDeps(t)

	out, err := execCommand(t, d, "Depends on: #7",
		"validate", "-", "--issue", "7")
	require.Error(t, err)
	assert.Contains(t, out, "INVALID")
}

func TestValidateCommand_CleanBodyPasses(t *testing.T) {
	d, _ := newTestDeps(t)

	out, err := execCommand(t, d, "Depends on: #8",
		"validate", "-", "--issue", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "VALID")
}

func TestMarkdownCommand(t *testing.T) {
	d, _ := newTestDeps(t)

	out, err := execCommand(t, d, "Depends on: #123\nBlocks: #456", "markdown", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "## Dependencies")
	assert.Contains(t, out, "**Depends on:**")
	assert.Contains(t, out, "- #123")
	assert.Contains(t, out, "**Blocks:**")
	assert.Contains(t, out, "- #456")
}

func TestTrackLifecycle(t *testing.T) {
	d, _ := newTestDeps(t)

	out, err := execCommand(t, d, "", "track", "start", "42",
		"--repo", "owner/repo", "--user", "alice", "-d", "fixing the parser")
	require.NoError(t, err)
	assert.Contains(t, out, "owner/repo#42 [active] alice")

	out, err = execCommand(t, d, "", "track", "status", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "owner/repo#42")

	out, err = execCommand(t, d, "", "track", "stop", "42",
		"--repo", "owner/repo", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "ENTRIES (1)")
}

func TestTrackStop_NoSession(t *testing.T) {
	d, _ := newTestDeps(t)

	out, err := execCommand(t, d, "", "track", "stop", "42", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching session to stop.")
}

func TestTrackEntryAndReport(t *testing.T) {
	d, _ := newTestDeps(t)

	_, err := execCommand(t, d, "", "track", "entry", "5", "90",
		"--repo", "owner/repo", "--user", "bob",
		"--start", "2024-03-01T09:00:00Z", "-d", "review")
	require.NoError(t, err)

	out, err := execCommand(t, d, "", "track", "report",
		"--user", "bob", "--from", "2024-03-01", "--to", "2024-03-07")
	require.NoError(t, err)
	assert.Contains(t, out, "TIME REPORT (week)")
	assert.Contains(t, out, "Total: 90m")
	assert.Contains(t, out, "owner/repo#5: 90m (1 entries)")
}

func TestTrackLabelsCommand(t *testing.T) {
	d, _ := newTestDeps(t)

	_, err := execCommand(t, d, "", "track", "entry", "5", "45",
		"--repo", "owner/repo", "--user", "bob")
	require.NoError(t, err)

	out, err := execCommand(t, d, "", "track", "labels", "5",
		"--repo", "owner/repo", "--existing", "priority:high")
	require.NoError(t, err)
	assert.Contains(t, out, "priority:high")
	assert.Contains(t, out, "time-spent:45")
}

func TestTrackInvalidIssueNumber(t *testing.T) {
	d, _ := newTestDeps(t)

	_, err := execCommand(t, d, "", "track", "start", "abc", "--user", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid issue number")
}

func TestSyncCommand(t *testing.T) {
	d, sync := newTestDeps(t)
	sync.graph = &deps.Graph{
		Nodes: []deps.Node{{IssueNumber: 1, Repository: "owner/repo", Title: "api"}},
	}

	out, err := execCommand(t, d, "", "sync", "owner/repo")
	require.NoError(t, err)
	assert.Equal(t, []string{"owner/repo"}, sync.repos)
	assert.Contains(t, out, "GRAPH (1 nodes, 0 edges)")
}

func TestSyncCommand_NoRepos(t *testing.T) {
	d, _ := newTestDeps(t)

	_, err := execCommand(t, d, "", "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no repositories")
}
