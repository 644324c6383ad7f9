package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/couchcryptid/aero-refdb/internal/config"
	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/couchcryptid/aero-refdb/internal/pipeline"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

const (
	jsonExt   = ".json"
	zstdExt   = ".zst"
	reportExt = ".report.yaml"
)

// Writer is the primary sink: one JSON document per database plus a YAML
// build report beside it. Files are replaced atomically.
type Writer struct {
	dir      string
	compress bool
}

// NewWriter creates a Writer for OUTPUT_DIR and OUTPUT_COMPRESSION.
func NewWriter(cfg *config.Config) *Writer {
	return &Writer{
		dir:      cfg.OutputDir,
		compress: cfg.OutputCompression == config.CompressionZstd,
	}
}

func (w *Writer) Name() string { return "file" }

// Path returns where database name is written.
func (w *Writer) Path(name string) string {
	p := filepath.Join(w.dir, name+jsonExt)
	if w.compress {
		p += zstdExt
	}
	return p
}

// reportDoc is the on-disk layout of a build report.
type reportDoc struct {
	Build   domain.BuildMeta `yaml:"build"`
	Entries int              `yaml:"entries"`
	Report  domain.Report    `yaml:"report"`
}

// Publish writes the database and then its report.
func (w *Writer) Publish(_ context.Context, ds pipeline.Dataset) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	err := writeAtomic(w.Path(ds.Name()), func(out io.Writer) error {
		if !w.compress {
			return encodeJSON(out, ds.Value)
		}
		zw, err := zstd.NewWriter(out)
		if err != nil {
			return err
		}
		if err := encodeJSON(zw, ds.Value); err != nil {
			zw.Close() //nolint:errcheck // already failing
			return err
		}
		return zw.Close()
	})
	if err != nil {
		return err
	}

	doc := reportDoc{Build: ds.Meta, Entries: ds.Len, Report: ds.Report}
	return writeAtomic(filepath.Join(w.dir, ds.Name()+reportExt), func(out io.Writer) error {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	})
}

func encodeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeAtomic writes to a temp file in the target directory and renames it
// over path, so readers never observe a partial file.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()           //nolint:errcheck // cleanup
			os.Remove(tmp.Name()) //nolint:errcheck // cleanup
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// ReadDatabase decodes database name from dir into v, accepting either the
// plain or the zstd-compressed file.
func ReadDatabase(dir, name string, v any) error {
	var lastErr error
	for _, p := range []string{
		filepath.Join(dir, name+jsonExt),
		filepath.Join(dir, name+jsonExt+zstdExt),
	} {
		contents, err := ReadFile(p)
		if errors.Is(err, domain.ErrMissingInput) {
			lastErr = err
			continue
		}
		if err != nil {
			return err
		}
		if err := json.Unmarshal(contents, v); err != nil {
			return fmt.Errorf("decode %s: %w", p, err)
		}
		return nil
	}
	return lastErr
}
