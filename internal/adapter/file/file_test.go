package file_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/aero-refdb/internal/adapter/file"
	"github.com/couchcryptid/aero-refdb/internal/config"
	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/couchcryptid/aero-refdb/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fixDataset(t *testing.T) pipeline.Dataset {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	tbl := domain.NewTable[domain.NamedFix]()
	tbl.Set("ZZZZZ", domain.NamedFix{ID: "ZZZZZ", Lat: 40.5, Lon: -75.25})
	tbl.Set("AAAAA", domain.NamedFix{ID: "AAAAA", Lat: 41, Lon: -76})

	report := domain.FixReport{Parsed: 2, IDColumn: "FIX_ID", LatColumn: "LAT_DECIMAL", LonColumn: "LONG_DECIMAL"}
	report.Read = 3
	report.Skip("outside CONUS")
	return pipeline.NewDataset(pipeline.DatabaseFixes, "fixes.csv", tbl, report)
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestInputs_Open(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "airports.csv")
	packed := filepath.Join(dir, "airports.csv.zst")
	require.NoError(t, os.WriteFile(plain, []byte("ident\nKAAA\n"), 0o600))
	require.NoError(t, os.WriteFile(packed, zstdBytes(t, []byte("ident\nKAAA\n")), 0o600))

	for _, p := range []string{plain, packed} {
		t.Run(filepath.Base(p), func(t *testing.T) {
			rc, err := file.Inputs{}.Open(p)
			require.NoError(t, err)
			defer rc.Close()

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, "ident\nKAAA\n", string(got))
		})
	}
}

func TestInputs_OpenMissing(t *testing.T) {
	_, err := file.Inputs{}.Open(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingInput)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestWriter_Publish(t *testing.T) {
	dir := t.TempDir()
	w := file.NewWriter(&config.Config{OutputDir: dir, OutputCompression: config.CompressionNone})

	require.NoError(t, w.Publish(context.Background(), fixDataset(t)))

	data, err := os.ReadFile(filepath.Join(dir, "fixes.json"))
	require.NoError(t, err)
	assert.Equal(t, `{
  "ZZZZZ": {
    "id": "ZZZZZ",
    "lat": 40.5,
    "lon": -75.25
  },
  "AAAAA": {
    "id": "AAAAA",
    "lat": 41,
    "lon": -76
  }
}
`, string(data))

	raw, err := os.ReadFile(filepath.Join(dir, "fixes.report.yaml"))
	require.NoError(t, err)
	var doc struct {
		Build struct {
			Database string    `yaml:"database"`
			Source   string    `yaml:"source"`
			BuiltAt  time.Time `yaml:"built_at"`
		} `yaml:"build"`
		Entries int `yaml:"entries"`
		Report  struct {
			Read        int            `yaml:"read"`
			Skipped     int            `yaml:"skipped"`
			SkipReasons map[string]int `yaml:"skip_reasons"`
			Parsed      int            `yaml:"parsed"`
			IDColumn    string         `yaml:"id_column"`
		} `yaml:"report"`
	}
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Equal(t, "fixes", doc.Build.Database)
	assert.Equal(t, "fixes.csv", doc.Build.Source)
	assert.Equal(t, time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC), doc.Build.BuiltAt)
	assert.Equal(t, 2, doc.Entries)
	assert.Equal(t, 3, doc.Report.Read)
	assert.Equal(t, 1, doc.Report.Skipped)
	assert.Equal(t, map[string]int{"outside CONUS": 1}, doc.Report.SkipReasons)
	assert.Equal(t, 2, doc.Report.Parsed)
	assert.Equal(t, "FIX_ID", doc.Report.IDColumn)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestWriter_PublishIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	w := file.NewWriter(&config.Config{OutputDir: dir, OutputCompression: config.CompressionNone})

	require.NoError(t, w.Publish(context.Background(), fixDataset(t)))
	first, err := os.ReadFile(filepath.Join(dir, "fixes.json"))
	require.NoError(t, err)

	require.NoError(t, w.Publish(context.Background(), fixDataset(t)))
	second, err := os.ReadFile(filepath.Join(dir, "fixes.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriter_CompressedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := file.NewWriter(&config.Config{OutputDir: dir, OutputCompression: config.CompressionZstd})

	require.NoError(t, w.Publish(context.Background(), fixDataset(t)))
	assert.Equal(t, filepath.Join(dir, "fixes.json.zst"), w.Path("fixes"))
	assert.FileExists(t, w.Path("fixes"))

	got := domain.NewTable[domain.NamedFix]()
	require.NoError(t, file.ReadDatabase(dir, "fixes", got))
	assert.Equal(t, []string{"ZZZZZ", "AAAAA"}, got.Keys())
}

func TestReadDatabase_Missing(t *testing.T) {
	err := file.ReadDatabase(t.TempDir(), "airways", domain.NewTable[domain.Airway]())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}
