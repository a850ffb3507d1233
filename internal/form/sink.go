package form

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink delivers an exported document to the user.
type Sink interface {
	// Deliver stores doc under name and returns where it ended up.
	Deliver(ctx context.Context, name string, doc *Document) (string, error)
}

// ExportFileName is the deterministic download name for a quote.
func ExportFileName(quoteID string) string {
	return "quote_" + sanitizeID(quoteID) + ".pdf"
}

func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}

// FileSink writes documents into a directory.
type FileSink struct {
	Dir string
}

// NewFileSink returns a sink writing into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Deliver writes the document, replacing any previous export of the same quote.
func (s *FileSink) Deliver(ctx context.Context, name string, doc *Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(s.Dir, filepath.Base(name))
	tmp := path + ".part"
	if err := os.WriteFile(tmp, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
