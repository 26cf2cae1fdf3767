package templates

// Message kinds shown in the banner.
const (
	MessageInfo  = "info"
	MessageError = "error"
)

type Message struct {
	Kind string
	Text string
}

// FormValues echoes the entry form back after a rejected submission.
type FormValues struct {
	Name       string
	Date       string
	Researcher string
	DataPoints string
}

type EntryRow struct {
	Index      int
	Name       string
	Date       string
	Researcher string
	DataPoints string
}

type AnalysisRow struct {
	Experiment string
	Average    string
	StdDev     string
	Median     string
	Error      string
}

// Page is everything the index page can show.
type Page struct {
	Message    *Message
	Form       FormValues
	EntryCount int
	Location   string
	Entries    []EntryRow
	Analysis   []AnalysisRow
}
