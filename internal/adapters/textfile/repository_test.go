package textfile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/emiliopalmerini/researchlog/internal/adapters/textfile"
	"github.com/emiliopalmerini/researchlog/internal/codec"
	"github.com/emiliopalmerini/researchlog/internal/domain"
)

func newRepo(t *testing.T, format string, skip bool) (*textfile.Repository, string) {
	t.Helper()
	c, err := codec.New(format)
	if err != nil {
		t.Fatalf("codec.New(%q): %v", format, err)
	}
	path := filepath.Join(t.TempDir(), "research_data.txt")
	return textfile.NewRepository(path, c, nil, textfile.Options{SkipInvalidLines: skip}), path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestRepository_LoadMissingFile(t *testing.T) {
	repo, _ := newRepo(t, "legacy", false)

	res, err := repo.Load(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res.Records))
	assert.Equal(t, 0, len(res.Skipped))
}

func TestRepository_SaveWritesLegacyFormat(t *testing.T) {
	repo, path := newRepo(t, "legacy", false)
	records := []domain.Record{
		domain.NewRecord("exp1", "2024-01-15", "Dr. A", []float64{1, 2.5}),
		domain.NewRecord("exp2", "2024-01-16", "Dr. B", []float64{3}),
	}

	assert.Nil(t, repo.Save(context.Background(), records))

	data, err := os.ReadFile(path)
	assert.Nil(t, err)
	assert.Equal(t, "exp1,2024-01-15,Dr. A,1.0,2.5\nexp2,2024-01-16,Dr. B,3.0\n", string(data))
}

func TestRepository_SaveOverwrites(t *testing.T) {
	repo, _ := newRepo(t, "legacy", false)
	ctx := context.Background()

	assert.Nil(t, repo.Save(ctx, []domain.Record{
		domain.NewRecord("a", "", "", []float64{1}),
		domain.NewRecord("b", "", "", []float64{2}),
	}))
	assert.Nil(t, repo.Save(ctx, []domain.Record{domain.NewRecord("c", "", "", []float64{3})}))

	res, err := repo.Load(ctx)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Records))
	assert.Equal(t, "c", res.Records[0].Name)
}

func TestRepository_RoundTrip(t *testing.T) {
	records := []domain.Record{
		domain.NewRecord("exp1", "2024-01-15", "Dr. A", []float64{1, 2.5, -0.125}),
		domain.NewRecord("exp2", "2024-01-16", "Dr. B", []float64{1.0 / 3, 1e-9, 2e20}),
		domain.NewRecord("exp1", "2024-01-17", "Dr. A", []float64{7}),
		domain.NewRecord("  padded exp", "2024-01-18", "ann ", nil),
		domain.NewRecord(" lead", " 2024-01-19 ", "\tDr. C", []float64{4}),
	}

	for _, format := range codec.Names() {
		t.Run(format, func(t *testing.T) {
			repo, _ := newRepo(t, format, false)
			ctx := context.Background()

			assert.Nil(t, repo.Save(ctx, records))
			res, err := repo.Load(ctx)
			assert.Nil(t, err)
			assert.Equal(t, records, res.Records)
		})
	}
}

func TestRepository_LoadInvalidLine(t *testing.T) {
	content := "good1,2024-01-01,ann,1.0,2.0\n" +
		"bad,2024-01-02,bob,1.0,abc\n" +
		"\n" +
		"short,2024-01-03\n" +
		"good2,2024-01-04,cy,3.0\n"

	t.Run("strict policy fails the whole load", func(t *testing.T) {
		repo, path := newRepo(t, "legacy", false)
		writeFile(t, path, content)

		res, err := repo.Load(context.Background())
		assert.True(t, res == nil)
		assert.True(t, errors.Is(err, domain.ErrMalformedLine))
		assert.True(t, errors.Is(err, domain.ErrInvalidDataPoint))

		var lineErr *domain.LineError
		assert.True(t, errors.As(err, &lineErr))
		assert.Equal(t, 2, lineErr.Line)
	})

	t.Run("skip policy drops bad lines", func(t *testing.T) {
		repo, path := newRepo(t, "legacy", true)
		writeFile(t, path, content)

		res, err := repo.Load(context.Background())
		assert.Nil(t, err)
		assert.Equal(t, 2, len(res.Records))
		assert.Equal(t, "good1", res.Records[0].Name)
		assert.Equal(t, "good2", res.Records[1].Name)
		assert.Equal(t, []float64{3}, res.Records[1].DataPoints)

		assert.Equal(t, 2, len(res.Skipped))
		assert.Equal(t, 2, res.Skipped[0].Line)
		assert.Equal(t, 4, res.Skipped[1].Line)
	})
}

func TestRepository_SaveEncodeErrorLeavesFileUntouched(t *testing.T) {
	repo, path := newRepo(t, "legacy", false)
	writeFile(t, path, "keep,2024-01-01,ann,1.0\n")

	err := repo.Save(context.Background(), []domain.Record{domain.NewRecord("line\nbreak", "", "", []float64{1})})
	assert.True(t, errors.Is(err, domain.ErrUnencodable))

	data, readErr := os.ReadFile(path)
	assert.Nil(t, readErr)
	assert.Equal(t, "keep,2024-01-01,ann,1.0\n", string(data))
}

func TestRepository_KindAndLocation(t *testing.T) {
	repo, path := newRepo(t, "csv", false)
	assert.Equal(t, "file", repo.Kind())
	assert.Equal(t, path, repo.Location())
}

func TestRepository_LongLineRoundTrip(t *testing.T) {
	points := make([]float64, 80000)
	for i := range points {
		points[i] = float64(i) / 3
	}
	records := []domain.Record{
		domain.NewRecord("long", "2024-01-15", "Dr. A", points),
		domain.NewRecord("short", "2024-01-16", "Dr. B", []float64{1}),
	}

	for _, format := range codec.Names() {
		t.Run(format, func(t *testing.T) {
			repo, _ := newRepo(t, format, true)
			ctx := context.Background()

			assert.Nil(t, repo.Save(ctx, records))
			res, err := repo.Load(ctx)
			assert.Nil(t, err)
			assert.Equal(t, 0, len(res.Skipped))
			assert.Equal(t, records, res.Records)
		})
	}
}

func TestRepository_LoadCRLFAndNoTrailingNewline(t *testing.T) {
	repo, path := newRepo(t, "legacy", false)
	writeFile(t, path, "a,2024-01-15,ann ,1.0\r\n\r\nb,2024-01-16,bob,2.0")

	res, err := repo.Load(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, []domain.Record{
		domain.NewRecord("a", "2024-01-15", "ann ", []float64{1}),
		domain.NewRecord("b", "2024-01-16", "bob", []float64{2}),
	}, res.Records)
}
