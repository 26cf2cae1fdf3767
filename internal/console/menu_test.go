package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/research"
)

type memRepo struct {
	records []domain.Record
	loadErr error
}

func (r *memRepo) Save(ctx context.Context, records []domain.Record) error {
	r.records = records
	return nil
}

func (r *memRepo) Load(ctx context.Context) (*domain.LoadResult, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return &domain.LoadResult{Records: r.records}, nil
}

func (r *memRepo) Kind() string     { return "mem" }
func (r *memRepo) Location() string { return "memory" }

func runMenu(t *testing.T, svc *research.Service, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := NewMenu(svc, strings.NewReader(input), &out).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func TestMenu_AddViewAnalyze(t *testing.T) {
	svc := research.NewService(&memRepo{}, nil, nil, domain.StdDevUndefined)

	input := strings.Join([]string{
		"1", "Trial", "2024-01-15", "Dr. A", "2, 4,4,4,5,5,7,9",
		"1", "Solo", "2024-01-16", "Dr. B", "3",
		"2",
		"3",
		"5",
	}, "\n") + "\n"

	out := runMenu(t, svc, input)

	wants := []string{
		"Experiment: Trial, Date: 2024-01-15, Researcher: Dr. A, Data Points: [2.0, 4.0, 4.0, 4.0, 5.0, 5.0, 7.0, 9.0]",
		"Experiment: Solo, Date: 2024-01-16, Researcher: Dr. B, Data Points: [3.0]",
		"Average: 5.0",
		"Median: 4.5",
		"Standard Deviation: N/A",
		"Median: 3.0",
	}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\n%s", w, out)
		}
	}
}

func TestMenu_InvalidDataPoints(t *testing.T) {
	svc := research.NewService(&memRepo{}, nil, nil, domain.StdDevUndefined)

	out := runMenu(t, svc, "1\nexp\n2024-01-01\nme\n1,abc\n5\n")

	if !strings.Contains(out, "Error: invalid data point") {
		t.Errorf("expected parse error in output:\n%s", out)
	}
	if svc.Len() != 0 {
		t.Errorf("entry should not be added, have %d", svc.Len())
	}
}

func TestMenu_InvalidChoice(t *testing.T) {
	svc := research.NewService(&memRepo{}, nil, nil, domain.StdDevUndefined)

	out := runMenu(t, svc, "9\n5\n")
	if !strings.Contains(out, "Invalid choice, please try again.") {
		t.Errorf("expected invalid choice message:\n%s", out)
	}
}

func TestMenu_EOFExits(t *testing.T) {
	svc := research.NewService(&memRepo{}, nil, nil, domain.StdDevUndefined)

	runMenu(t, svc, "")
	runMenu(t, svc, "1\nhalf-typed")

	if svc.Len() != 0 {
		t.Errorf("partial entry should not be added, have %d", svc.Len())
	}
}

func TestMenu_SaveAndReload(t *testing.T) {
	repo := &memRepo{}
	svc := research.NewService(repo, nil, nil, domain.StdDevUndefined)

	out := runMenu(t, svc, "1\na\nd\nr\n1,2\n4\n")
	if !strings.Contains(out, "Saved 1 entries to memory") {
		t.Errorf("expected save message:\n%s", out)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 saved record, got %d", len(repo.records))
	}

	fresh := research.NewService(repo, nil, nil, domain.StdDevUndefined)
	out = runMenu(t, fresh, "6\n2\n")
	if !strings.Contains(out, "Loaded 1 entries from memory") || !strings.Contains(out, "Experiment: a") {
		t.Errorf("expected reload output:\n%s", out)
	}
}

func TestMenu_ReloadError(t *testing.T) {
	repo := &memRepo{loadErr: errors.New("corrupt")}
	svc := research.NewService(repo, nil, nil, domain.StdDevUndefined)

	out := runMenu(t, svc, "6\n5\n")
	if !strings.Contains(out, "Error: failed to load entries: corrupt") {
		t.Errorf("expected load error:\n%s", out)
	}
}

func TestMenu_EmptyStore(t *testing.T) {
	svc := research.NewService(&memRepo{}, nil, nil, domain.StdDevUndefined)

	out := runMenu(t, svc, "2\n3\n5\n")
	if !strings.Contains(out, "No entries to display.") || !strings.Contains(out, "No data available for analysis.") {
		t.Errorf("expected empty messages:\n%s", out)
	}
}

func TestMenu_AnalyzeEmptyRecord(t *testing.T) {
	svc := research.NewService(&memRepo{}, nil, nil, domain.StdDevUndefined)
	svc.Add(context.Background(), domain.NewRecord("blank", "", "", nil))

	out := runMenu(t, svc, "3\n5\n")
	if !strings.Contains(out, "Experiment: blank") || !strings.Contains(out, "no data points") {
		t.Errorf("expected per-record error:\n%s", out)
	}
}

func TestMenu_ContextCancelled(t *testing.T) {
	svc := research.NewService(&memRepo{}, nil, nil, domain.StdDevUndefined)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewMenu(svc, strings.NewReader("2\n"), &out).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
