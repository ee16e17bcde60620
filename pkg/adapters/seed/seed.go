// Package seed builds initial diary stores from fixture files.
//
// A seed is a list of entries written as YAML or JSON. Seeds are only ever
// read: the diary keeps its state in memory and never writes it back.
package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/diary/pkg/core"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported seed format")
	ErrDuplicateID       = errors.New("duplicate entry id")
	ErrMissingID         = errors.New("entry has no id")
)

// MockEntries returns the two entries a fresh diary starts with.
func MockEntries(now time.Time) []core.Entry {
	ms := now.UnixMilli()
	return []core.Entry{
		{ID: core.IDOf(1), CreatedDate: ms, EmotionID: 1, Content: "1번 일기 내용"},
		{ID: core.IDOf(2), CreatedDate: ms, EmotionID: 2, Content: "2번 일기 내용"},
	}
}

// Load reads a seed file. The format is chosen by extension.
// Records without a creation date are stamped with now.
func Load(path string, now time.Time) ([]core.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f, filepath.Ext(path), now)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes a seed in the format identified by ext (".yaml", ".yml" or ".json").
func Parse(r io.Reader, ext string, now time.Time) ([]core.Entry, error) {
	s, err := serializerFor(ext)
	if err != nil {
		return nil, err
	}

	records, err := s.Parse(r)
	if err != nil {
		return nil, err
	}

	entries := make([]core.Entry, 0, len(records))
	seen := make(map[core.ID]int, len(records))
	for i, rec := range records {
		e, err := rec.toEntry(now)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if prev, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("records %d and %d: %w %s", prev, i, ErrDuplicateID, e.ID)
		}
		seen[e.ID] = i
		entries = append(entries, e)
	}
	return entries, nil
}

// Encode renders entries in the format identified by ext.
func Encode(entries []core.Entry, ext string) ([]byte, error) {
	s, err := serializerFor(ext)
	if err != nil {
		return nil, err
	}
	return s.Serialize(Records(entries))
}

// Records converts entries to their serializable form.
func Records(entries []core.Entry) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		var id any = e.ID.String()
		if n, ok := e.ID.Int(); ok {
			id = n
		}
		records = append(records, Record{
			ID:          id,
			CreatedDate: e.CreatedDate,
			EmotionID:   e.EmotionID,
			Content:     e.Content,
		})
	}
	return records
}

func serializerFor(ext string) (Serializer, error) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s, ok := DefaultSerializers()[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return s, nil
}

func (r Record) toEntry(now time.Time) (core.Entry, error) {
	if r.ID == nil {
		return core.Entry{}, ErrMissingID
	}
	id := core.IDOf(r.ID)
	if id == "" {
		return core.Entry{}, ErrMissingID
	}

	created, err := parseDate(r.CreatedDate, now)
	if err != nil {
		return core.Entry{}, err
	}

	return core.Entry{
		ID:          id,
		CreatedDate: created,
		EmotionID:   r.EmotionID,
		Content:     r.Content,
	}, nil
}

// parseDate accepts epoch milliseconds (numeric or text) and RFC 3339 timestamps.
func parseDate(v any, now time.Time) (int64, error) {
	switch d := v.(type) {
	case nil:
		return now.UnixMilli(), nil
	case int:
		return int64(d), nil
	case int64:
		return d, nil
	case uint64:
		return int64(d), nil
	case float64:
		return int64(d), nil
	case json.Number:
		n, err := d.Int64()
		if err != nil {
			return 0, fmt.Errorf("invalid createdDate %q: %w", d, err)
		}
		return n, nil
	case time.Time:
		return d.UnixMilli(), nil
	case string:
		if n, err := strconv.ParseInt(d, 10, 64); err == nil {
			return n, nil
		}
		t, err := time.Parse(time.RFC3339, d)
		if err != nil {
			return 0, fmt.Errorf("invalid createdDate %q: %w", d, err)
		}
		return t.UnixMilli(), nil
	default:
		return 0, fmt.Errorf("invalid createdDate %v", v)
	}
}

// sniff is used when a seed arrives without a file name: JSON documents start
// with '[' and everything else is treated as YAML.
func sniff(data []byte) string {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return ".json"
	}
	return ".yaml"
}

// ParseBytes decodes a seed whose format is detected from its content.
func ParseBytes(data []byte, now time.Time) ([]core.Entry, error) {
	return Parse(bytes.NewReader(data), sniff(data), now)
}
