package git

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// ReflogEntry is one line of a reference log. Entries are ordered oldest to
// newest, matching the on-disk log.
type ReflogEntry struct {
	Old     plumbing.Hash
	New     plumbing.Hash
	Message string
}

// ReadHeadReflog returns HEAD's own reflog.
func (r *Repository) ReadHeadReflog() ([]ReflogEntry, error) {
	return r.ReadReflog("HEAD")
}

// ReadReflog parses .git/logs/<ref>. go-git does not surface reflogs, so
// the log file is read directly. A missing log is not an error: the
// reference simply has no recorded movements yet.
func (r *Repository) ReadReflog(ref string) ([]ReflogEntry, error) {
	f, err := r.gitDir.Open(path.Join("logs", ref))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening reflog for %s: %w", ref, err)
	}
	defer f.Close()

	var entries []ReflogEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if entry, ok := parseReflogLine(scanner.Text()); ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading reflog for %s: %w", ref, err)
	}
	return entries, nil
}

// parseReflogLine parses "<old> <new> <ident> <timestamp> <tz>\t<message>".
// Malformed lines are skipped rather than failing the whole log.
func parseReflogLine(line string) (ReflogEntry, bool) {
	head, message, _ := strings.Cut(line, "\t")
	fields := strings.Fields(head)
	if len(fields) < 2 || len(fields[0]) != 40 || len(fields[1]) != 40 {
		return ReflogEntry{}, false
	}
	return ReflogEntry{
		Old:     plumbing.NewHash(fields[0]),
		New:     plumbing.NewHash(fields[1]),
		Message: message,
	}, true
}
