package store

import (
	"database/sql"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// MergeBaseCache answers merge-base queries, memoizing results in memory
// for the current run and in SQLite across runs. Populating the cache on a
// large repository is slow the first time; afterwards queries are cheap.
type MergeBaseCache struct {
	db   *DB
	repo *gogit.Repository
	memo map[[2]plumbing.Hash]*plumbing.Hash
}

// NewMergeBaseCache creates a cache over db, computing misses from repo.
func NewMergeBaseCache(db *DB, repo *gogit.Repository) *MergeBaseCache {
	return &MergeBaseCache{
		db:   db,
		repo: repo,
		memo: make(map[[2]plumbing.Hash]*plumbing.Hash),
	}
}

// IsEmpty reports whether the persisted cache has no entries yet.
func (c *MergeBaseCache) IsEmpty() (bool, error) {
	var n int
	if err := c.db.sql.QueryRow("SELECT COUNT(*) FROM merge_base_cache").Scan(&n); err != nil {
		return false, fmt.Errorf("counting merge-base cache entries: %w", err)
	}
	return n == 0, nil
}

// MergeBaseOID returns the nearest common ancestor of lhs and rhs, or nil
// when the two commits share no history. The pair is order-normalized, so
// (a, b) and (b, a) share one cache entry; a persisted empty result records
// a pair known to have no common ancestor.
func (c *MergeBaseCache) MergeBaseOID(lhs, rhs plumbing.Hash) (*plumbing.Hash, error) {
	key := normalizeKey(lhs, rhs)
	if result, ok := c.memo[key]; ok {
		return result, nil
	}

	var hex string
	err := c.db.sql.QueryRow(
		"SELECT result FROM merge_base_cache WHERE lhs = ? AND rhs = ?",
		key[0].String(), key[1].String(),
	).Scan(&hex)
	switch {
	case err == nil:
		result := hashFromHex(hex)
		c.memo[key] = result
		return result, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("querying merge-base cache: %w", err)
	}

	result, err := c.compute(lhs, rhs)
	if err != nil {
		return nil, err
	}
	resultHex := ""
	if result != nil {
		resultHex = result.String()
	}
	if _, err := c.db.sql.Exec(
		"INSERT OR REPLACE INTO merge_base_cache (lhs, rhs, result) VALUES (?, ?, ?)",
		key[0].String(), key[1].String(), resultHex,
	); err != nil {
		return nil, fmt.Errorf("storing merge-base cache entry: %w", err)
	}
	c.memo[key] = result
	return result, nil
}

func (c *MergeBaseCache) compute(lhs, rhs plumbing.Hash) (*plumbing.Hash, error) {
	l, err := c.repo.CommitObject(lhs)
	if err != nil {
		return nil, fmt.Errorf("looking up commit %s: %w", lhs, err)
	}
	r, err := c.repo.CommitObject(rhs)
	if err != nil {
		return nil, fmt.Errorf("looking up commit %s: %w", rhs, err)
	}
	bases, err := l.MergeBase(r)
	if err != nil {
		return nil, fmt.Errorf("computing merge-base of %s and %s: %w", lhs, rhs, err)
	}
	if len(bases) == 0 {
		return nil, nil
	}
	base := bases[0].Hash
	return &base, nil
}

func normalizeKey(lhs, rhs plumbing.Hash) [2]plumbing.Hash {
	for i := range lhs {
		if lhs[i] < rhs[i] {
			return [2]plumbing.Hash{lhs, rhs}
		}
		if lhs[i] > rhs[i] {
			return [2]plumbing.Hash{rhs, lhs}
		}
	}
	return [2]plumbing.Hash{lhs, rhs}
}

func hashFromHex(hex string) *plumbing.Hash {
	if hex == "" {
		return nil
	}
	h := plumbing.NewHash(hex)
	return &h
}
