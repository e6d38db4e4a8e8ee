package graph

import (
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// fakeRepo serves commits from a map and records which ids were looked up.
type fakeRepo struct {
	commits map[plumbing.Hash]*Commit
	lookups map[plumbing.Hash]int
}

func (r *fakeRepo) Commit(oid plumbing.Hash) (*Commit, error) {
	r.lookups[oid]++
	c, ok := r.commits[oid]
	if !ok {
		return nil, fmt.Errorf("commit %s not found", oid)
	}
	return c, nil
}

// fakeOracle computes merge-bases directly from the fake repo's ancestry:
// the deepest commit reachable from both sides.
type fakeOracle struct {
	repo *fakeRepo
}

func (o *fakeOracle) MergeBaseOID(lhs, rhs plumbing.Hash) (*plumbing.Hash, error) {
	la := o.ancestors(lhs)
	ra := o.ancestors(rhs)
	var best *plumbing.Hash
	bestDepth := -1
	for oid := range la {
		if _, ok := ra[oid]; !ok {
			continue
		}
		depth := len(o.ancestors(oid))
		if depth > bestDepth {
			h := oid
			best = &h
			bestDepth = depth
		}
	}
	return best, nil
}

func (o *fakeOracle) ancestors(oid plumbing.Hash) map[plumbing.Hash]struct{} {
	seen := map[plumbing.Hash]struct{}{}
	frontier := []plumbing.Hash{oid}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		if _, ok := seen[current]; ok {
			continue
		}
		commit, ok := o.repo.commits[current]
		if !ok {
			continue
		}
		seen[current] = struct{}{}
		frontier = append(frontier, commit.ParentHashes...)
	}
	return seen
}

// repoBuilder builds fake commit histories with strictly increasing commit
// times.
type repoBuilder struct {
	repo  *fakeRepo
	clock time.Time
}

func newRepoBuilder() *repoBuilder {
	return &repoBuilder{
		repo: &fakeRepo{
			commits: map[plumbing.Hash]*Commit{},
			lookups: map[plumbing.Hash]int{},
		},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *repoBuilder) commit(name string, parents ...plumbing.Hash) plumbing.Hash {
	oid := oidOf(name)
	b.clock = b.clock.Add(time.Minute)
	b.repo.commits[oid] = &Commit{
		Hash:         oid,
		ParentHashes: parents,
		When:         b.clock,
		Summary:      name,
	}
	return oid
}

func (b *repoBuilder) oracle() *fakeOracle {
	return &fakeOracle{repo: b.repo}
}

func oidOf(name string) plumbing.Hash {
	return plumbing.Hash(sha1.Sum([]byte(name)))
}

func oidSet(oids ...plumbing.Hash) map[plumbing.Hash]struct{} {
	set := map[plumbing.Hash]struct{}{}
	for _, oid := range oids {
		set[oid] = struct{}{}
	}
	return set
}

func hexSet(oids ...plumbing.Hash) map[string]struct{} {
	set := map[string]struct{}{}
	for _, oid := range oids {
		set[oid.String()] = struct{}{}
	}
	return set
}
