package app

import (
	"fmt"
	"io"
	"log"

	"github.com/kurobon/smartlog/internal/config"
	"github.com/kurobon/smartlog/internal/git"
	"github.com/kurobon/smartlog/internal/store"
)

// HideCommits marks the given revisions hidden so the smartlog stops
// showing them and their descendants.
func HideCommits(cfg *config.Config, out io.Writer, revs []string) int {
	repo, oids, code := resolveRevs(cfg, revs)
	if code != 0 {
		return code
	}

	db, err := store.Open(repo.StateFile(cfg.DBFile))
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}
	defer db.Close()

	if err := store.NewHideStore(db).Hide(oids); err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}
	for _, oid := range oids {
		fmt.Fprintf(out, "Hid commit: %s\n", oid)
	}
	fmt.Fprintln(out, "To unhide, run: smartlog unhide <commit>")
	return 0
}

// UnhideCommits removes revisions from the hidden set.
func UnhideCommits(cfg *config.Config, out io.Writer, revs []string) int {
	repo, oids, code := resolveRevs(cfg, revs)
	if code != 0 {
		return code
	}

	db, err := store.Open(repo.StateFile(cfg.DBFile))
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}
	defer db.Close()

	removed, err := store.NewHideStore(db).Unhide(oids)
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}
	fmt.Fprintf(out, "Unhid %d commit(s)\n", removed)
	return 0
}

// InitDB creates the state database and its schema if they do not exist
// yet.
func InitDB(cfg *config.Config, out io.Writer) int {
	repo, err := git.Open(cfg.RepoPath)
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}
	path := repo.StateFile(cfg.DBFile)
	db, err := store.Open(path)
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}
	defer db.Close()
	fmt.Fprintf(out, "Initialized smartlog database at %s\n", path)
	return 0
}

// resolveRevs opens the repository and resolves each revision argument to a
// full commit id.
func resolveRevs(cfg *config.Config, revs []string) (*git.Repository, []string, int) {
	repo, err := git.Open(cfg.RepoPath)
	if err != nil {
		log.Printf("smartlog: %v", err)
		return nil, nil, 1
	}
	oids := make([]string, 0, len(revs))
	for _, rev := range revs {
		oid, err := repo.ResolveOID(rev)
		if err != nil {
			log.Printf("smartlog: %v", err)
			return nil, nil, 1
		}
		oids = append(oids, oid.String())
	}
	return repo, oids, 0
}
