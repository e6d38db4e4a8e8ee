package git

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignature(when time.Time) *object.Signature {
	return &object.Signature{Name: "Test", Email: "test@example.com", When: when}
}

// setupRepo builds an in-memory repository with two commits on master.
func setupRepo(t *testing.T) (*Repository, plumbing.Hash, plumbing.Hash) {
	t.Helper()
	fs := memfs.New()
	storer := memory.NewStorage()
	r, err := gogit.Init(storer, fs)
	require.NoError(t, err)
	w, err := r.Worktree()
	require.NoError(t, err)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err = fs.Create("a.txt")
	require.NoError(t, err)
	_, err = w.Add("a.txt")
	require.NoError(t, err)
	first, err := w.Commit("First commit\n\nBody text.", &gogit.CommitOptions{Author: testSignature(base)})
	require.NoError(t, err)

	_, err = fs.Create("b.txt")
	require.NoError(t, err)
	_, err = w.Add("b.txt")
	require.NoError(t, err)
	second, err := w.Commit("Second commit", &gogit.CommitOptions{Author: testSignature(base.Add(time.Minute))})
	require.NoError(t, err)

	return NewFromRepository(r, memfs.New()), first, second
}

func TestCommitData(t *testing.T) {
	repo, first, second := setupRepo(t)

	c, err := repo.Commit(first)
	require.NoError(t, err)
	assert.Equal(t, first, c.Hash)
	assert.Empty(t, c.ParentHashes)
	assert.Equal(t, "First commit", c.Summary, "summary is the first message line only")

	c, err = repo.Commit(second)
	require.NoError(t, err)
	require.Len(t, c.ParentHashes, 1)
	assert.Equal(t, first, c.ParentHashes[0])
	assert.False(t, c.When.IsZero())
}

func TestCommitNotFound(t *testing.T) {
	repo, _, _ := setupRepo(t)
	_, err := repo.Commit(plumbing.NewHash("0123456789012345678901234567890123456789"))
	assert.Error(t, err)
}

func TestHeadAndMasterOIDs(t *testing.T) {
	repo, _, second := setupRepo(t)

	head, err := repo.HeadOID()
	require.NoError(t, err)
	assert.Equal(t, second, head)

	master, err := repo.MasterOID()
	require.NoError(t, err)
	assert.Equal(t, second, master)
}

func TestResolveOID(t *testing.T) {
	repo, _, second := setupRepo(t)

	oid, err := repo.ResolveOID("master")
	require.NoError(t, err)
	assert.Equal(t, second, oid)

	oid, err = repo.ResolveOID(second.String())
	require.NoError(t, err)
	assert.Equal(t, second, oid)

	_, err = repo.ResolveOID("no-such-rev")
	assert.Error(t, err)
}
