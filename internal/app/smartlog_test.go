package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/smartlog/internal/config"
)

const zeroHex = "0000000000000000000000000000000000000000"

// fixture is an on-disk repository with two feature branches off master's
// first commit, HEAD on the first feature branch.
type fixture struct {
	dir            string
	m1, m2, f1, f2 plumbing.Hash
	cfg            *config.Config
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	w, err := r.Worktree()
	require.NoError(t, err)

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	commit := func(name, message string) plumbing.Hash {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
		_, err := w.Add(name)
		require.NoError(t, err)
		when = when.Add(time.Minute)
		hash, err := w.Commit(message, &gogit.CommitOptions{
			Author: &object.Signature{Name: "Test", Email: "test@example.com", When: when},
		})
		require.NoError(t, err)
		return hash
	}
	checkoutNewBranch := func(at plumbing.Hash, name string) {
		require.NoError(t, w.Checkout(&gogit.CheckoutOptions{Hash: at, Force: true}))
		require.NoError(t, w.Checkout(&gogit.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName(name),
			Create: true,
			Force:  true,
		}))
	}

	f := &fixture{dir: dir}
	f.m1 = commit("m1.txt", "Initial commit")
	f.m2 = commit("m2.txt", "Second on master")
	checkoutNewBranch(f.m1, "feature")
	f.f1 = commit("f1.txt", "Feature work")
	checkoutNewBranch(f.m1, "feature2")
	f.f2 = commit("f2.txt", "Other feature")
	require.NoError(t, w.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Force:  true,
	}))

	// go-git does not maintain reflogs; write HEAD's log the way git would
	// have during the steps above.
	writeReflog(t, dir,
		reflogLine(zeroHex, f.m1.String(), "commit (initial): Initial commit"),
		reflogLine(f.m1.String(), f.m2.String(), "commit: Second on master"),
		reflogLine(f.m2.String(), f.m1.String(), "checkout: moving from master to feature"),
		reflogLine(f.m1.String(), f.f1.String(), "commit: Feature work"),
		reflogLine(f.f1.String(), f.m1.String(), "checkout: moving from feature to feature2"),
		reflogLine(f.m1.String(), f.f2.String(), "commit: Other feature"),
		reflogLine(f.f2.String(), f.f1.String(), "checkout: moving from feature2 to feature"),
	)

	f.cfg = &config.Config{RepoPath: dir, DBFile: "smartlog.sqlite3", ForceText: true}
	return f
}

func reflogLine(oldHex, newHex, message string) string {
	return fmt.Sprintf("%s %s Test <test@example.com> 1700000000 +0000\t%s", oldHex, newHex, message)
}

func writeReflog(t *testing.T, dir string, lines ...string) {
	t.Helper()
	logsDir := filepath.Join(dir, ".git", "logs")
	require.NoError(t, os.MkdirAll(logsDir, 0o755))
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(logsDir, "HEAD"), []byte(content), 0o644))
}

func short(oid plumbing.Hash) string {
	return oid.String()[:8]
}

func TestRenderSmartlogEndToEnd(t *testing.T) {
	f := setupFixture(t)

	var out bytes.Buffer
	code := RenderSmartlog(f.cfg, &out)
	require.Equal(t, 0, code)

	want := strings.Join([]string{
		fmt.Sprintf("o %s Other feature", short(f.f2)),
		"|",
		fmt.Sprintf("| @ %s Feature work", short(f.f1)),
		"|\\",
		fmt.Sprintf("O %s Initial commit", short(f.m1)),
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())

	// Superseded master commits never show up.
	assert.NotContains(t, out.String(), "Second on master")
}

func TestRenderSmartlogDeterministic(t *testing.T) {
	f := setupFixture(t)

	var first bytes.Buffer
	require.Equal(t, 0, RenderSmartlog(f.cfg, &first))
	for i := 0; i < 3; i++ {
		var again bytes.Buffer
		require.Equal(t, 0, RenderSmartlog(f.cfg, &again))
		assert.Equal(t, first.String(), again.String())
	}
}

func TestHideThenRender(t *testing.T) {
	f := setupFixture(t)

	var out bytes.Buffer
	code := HideCommits(f.cfg, &out, []string{f.f2.String()})
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Hid commit: "+f.f2.String())

	out.Reset()
	require.Equal(t, 0, RenderSmartlog(f.cfg, &out))
	assert.NotContains(t, out.String(), "Other feature")
	assert.Contains(t, out.String(), "Feature work")

	out.Reset()
	require.Equal(t, 0, UnhideCommits(f.cfg, &out, []string{f.f2.String()}))
	out.Reset()
	require.Equal(t, 0, RenderSmartlog(f.cfg, &out))
	assert.Contains(t, out.String(), "Other feature")
}

func TestHideHeadStillShown(t *testing.T) {
	f := setupFixture(t)

	var out bytes.Buffer
	require.Equal(t, 0, HideCommits(f.cfg, &out, []string{f.f1.String()}))

	out.Reset()
	require.Equal(t, 0, RenderSmartlog(f.cfg, &out))
	// The head's own line survives hiding, rendered with the hidden-head
	// glyph.
	assert.Contains(t, out.String(), fmt.Sprintf("%% %s Feature work", short(f.f1)))
}

func TestInitDB(t *testing.T) {
	f := setupFixture(t)

	var out bytes.Buffer
	require.Equal(t, 0, InitDB(f.cfg, &out))
	assert.Contains(t, out.String(), "Initialized smartlog database")
	_, err := os.Stat(filepath.Join(f.dir, ".git", "smartlog.sqlite3"))
	assert.NoError(t, err)
}

func TestRenderSmartlogNotARepo(t *testing.T) {
	cfg := &config.Config{RepoPath: t.TempDir(), DBFile: "smartlog.sqlite3", ForceText: true}
	var out bytes.Buffer
	assert.NotEqual(t, 0, RenderSmartlog(cfg, &out))
	assert.Empty(t, out.String())
}
