// Package console implements the numbered text menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emiliopalmerini/researchlog/internal/research"
	"github.com/emiliopalmerini/researchlog/internal/util"
)

const menuText = `
Menu:
1. Add a research data entry
2. View all entries
3. Analyze data
4. Save entries to file
5. Exit
6. Reload entries from file
`

// Menu runs the interactive loop over a Service.
type Menu struct {
	svc    *research.Service
	reader *bufio.Reader
	out    io.Writer
}

func NewMenu(svc *research.Service, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		svc:    svc,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.print(menuText)
		choice, err := m.prompt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := m.addEntry(ctx); errors.Is(err, io.EOF) {
				return nil
			} else if err != nil {
				return err
			}
		case "2":
			m.viewEntries()
		case "3":
			m.analyze(ctx)
		case "4":
			m.save(ctx)
		case "5":
			return nil
		case "6":
			m.reload(ctx)
		default:
			m.println("Invalid choice, please try again.")
		}
	}
}

func (m *Menu) addEntry(ctx context.Context) error {
	name, err := m.prompt("Enter experiment name: ")
	if err != nil {
		return err
	}
	date, err := m.prompt("Enter date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	researcher, err := m.prompt("Enter researcher name: ")
	if err != nil {
		return err
	}
	raw, err := m.prompt("Enter data points separated by commas: ")
	if err != nil {
		return err
	}

	if _, err := m.svc.AddEntry(ctx, name, date, researcher, raw); err != nil {
		m.println(fmt.Sprintf("Error: %v", err))
	}
	return nil
}

func (m *Menu) viewEntries() {
	entries := m.svc.Entries()
	if len(entries) == 0 {
		m.println("No entries to display.")
		return
	}
	for _, e := range entries {
		m.println(fmt.Sprintf("Experiment: %s, Date: %s, Researcher: %s, Data Points: %s",
			e.Name, e.Date, e.Researcher, util.FormatPoints(e.DataPoints)))
	}
}

func (m *Menu) analyze(ctx context.Context) {
	results := m.svc.Analyze(ctx)
	if len(results) == 0 {
		m.println("No data available for analysis.")
		return
	}
	for _, a := range results {
		m.println("Experiment: " + a.Experiment)
		if a.Err != nil {
			m.println(fmt.Sprintf("Error: %v", a.Err))
			continue
		}
		m.println("Average: " + util.FormatFloat(a.Summary.Mean))
		m.println("Standard Deviation: " + util.FormatOptional(a.Summary.StdDev, -1))
		m.println("Median: " + util.FormatFloat(a.Summary.Median))
	}
}

func (m *Menu) save(ctx context.Context) {
	n, err := m.svc.Save(ctx)
	if err != nil {
		m.println(fmt.Sprintf("Error: %v", err))
		return
	}
	m.println(fmt.Sprintf("Saved %d entries to %s", n, m.svc.Location()))
}

func (m *Menu) reload(ctx context.Context) {
	res, err := m.svc.Load(ctx)
	if err != nil {
		m.println(fmt.Sprintf("Error: %v", err))
		return
	}
	for _, le := range res.Skipped {
		m.println(fmt.Sprintf("Skipped %v", le))
	}
	m.println(fmt.Sprintf("Loaded %d entries from %s", len(res.Records), m.svc.Location()))
}

// prompt writes label and returns the next input line without its line
// ending. A final line without a newline is still returned.
func (m *Menu) prompt(label string) (string, error) {
	m.print(label)
	line, err := m.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (m *Menu) print(s string) {
	_, _ = fmt.Fprint(m.out, s)
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}
