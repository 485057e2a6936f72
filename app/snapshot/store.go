package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/lysyi3m/sitrep/app/news"
)

const (
	CurrentFile  = "news.json"
	BriefingFile = "briefing.json"
	ArchiveDir   = "archive"
	DateLayout   = "2006-01-02"
)

var (
	ErrNoSnapshot  = errors.New("snapshot not found")
	ErrInvalidDate = errors.New("invalid archive date")
)

// Store keeps the published snapshot files under a single data directory:
// the current snapshot, one archive copy per UTC day and the briefing.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Write publishes snap as the current snapshot and as the archive entry for
// the UTC date of snap.LastUpdated. It returns that date.
func (s *Store) Write(snap news.Snapshot) (string, error) {
	if snap.Articles == nil {
		snap.Articles = []news.Article{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(s.dir, CurrentFile), data); err != nil {
		return "", fmt.Errorf("failed to write current snapshot: %w", err)
	}

	date := snap.LastUpdated.UTC().Format(DateLayout)
	if err := writeFileAtomic(s.archivePath(date), data); err != nil {
		return "", fmt.Errorf("failed to write archive snapshot: %w", err)
	}

	slog.Debug("Snapshot written", "dir", s.dir, "archive_date", date, "articles", snap.ArticleCount)
	return date, nil
}

func (s *Store) ReadCurrent() (*news.Snapshot, error) {
	var snap news.Snapshot
	if err := s.ReadJSON(CurrentFile, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) ReadArchive(date string) (*news.Snapshot, error) {
	if !ValidDate(date) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}

	var snap news.Snapshot
	if err := s.ReadJSON(filepath.Join(ArchiveDir, date+".json"), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListArchives returns the archived dates, newest first.
func (s *Store) ListArchives() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, ArchiveDir))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	dates := make([]string, 0, len(entries))
	for _, entry := range entries {
		date, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok || !ValidDate(date) {
			continue
		}
		dates = append(dates, date)
	}

	slices.Sort(dates)
	slices.Reverse(dates)
	return dates, nil
}

// WriteJSON stores v as indented JSON in a file relative to the data directory.
func (s *Store) WriteJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := writeFileAtomic(filepath.Join(s.dir, name), data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// ReadJSON decodes a file relative to the data directory into v. A missing
// file is reported as ErrNoSnapshot.
func (s *Store) ReadJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoSnapshot, name)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) archivePath(date string) string {
	return filepath.Join(s.dir, ArchiveDir, date+".json")
}

func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// writeFileAtomic replaces path only once the new content is fully on disk.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}
