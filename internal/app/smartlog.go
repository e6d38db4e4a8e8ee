// Package app wires the smartlog pipeline together: repository access,
// reflog replay, the hidden-commit store and merge-base cache, and the
// graph build/prune/render passes. Each operation returns a process exit
// code; fatal errors are logged here, once.
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/kurobon/smartlog/internal/config"
	"github.com/kurobon/smartlog/internal/git"
	"github.com/kurobon/smartlog/internal/glyphs"
	"github.com/kurobon/smartlog/internal/graph"
	"github.com/kurobon/smartlog/internal/store"
)

// RenderSmartlog renders the smartlog for the configured repository to out,
// one newline-terminated line per record.
func RenderSmartlog(cfg *config.Config, out io.Writer) int {
	gl := glyphs.ForWriter(out, cfg.ForceText)

	repo, err := git.Open(cfg.RepoPath)
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}

	headOID, err := repo.HeadOID()
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}
	masterOID, err := repo.MasterOID()
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}

	entries, err := repo.ReadHeadReflog()
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}
	replayer := git.NewRefLogReplayer(headOID)
	for _, entry := range entries {
		replayer.Process(entry)
	}
	replayer.FinishProcessing()
	visibleOIDs := replayer.VisibleOIDs()

	db, err := store.Open(repo.StateFile(cfg.DBFile))
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}
	defer db.Close()

	hiddenOIDs, err := store.NewHideStore(db).HiddenOIDs()
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}

	oracle := store.NewMergeBaseCache(db, repo.Underlying())
	if empty, err := oracle.IsEmpty(); err == nil && empty {
		log.Println("smartlog: merge-base cache not initialized -- this run may take a while to populate it")
	}

	g, err := graph.WalkFromVisibleCommits(repo, oracle, headOID, masterOID, visibleOIDs, hiddenOIDs)
	if err != nil {
		log.Printf("smartlog: %v", err)
		return 1
	}
	if err := graph.ConsistencyCheckGraph(g); err != nil {
		log.Printf("smartlog: graph inconsistent after build: %v", err)
		return 1
	}

	graph.HideCommits(g, headOID)
	if err := graph.ConsistencyCheckGraph(g); err != nil {
		log.Printf("smartlog: graph inconsistent after prune: %v", err)
		return 1
	}

	rootOIDs := graph.SplitGraphByRoots(oracle, g)
	lines := graph.RenderGraph(gl, g, headOID, rootOIDs)
	for i := len(lines) - 1; i >= 0; i-- {
		fmt.Fprintln(out, lines[i])
	}
	return 0
}
