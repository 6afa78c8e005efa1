package model

// Section is the display mode picked in the sidebar menu.
type Section string

const (
	SectionQuotes Section = "quotes"
	SectionSample Section = "sample"
	SectionUpload Section = "upload"
)

// Sections lists the menu entries in display order.
var Sections = []Section{SectionQuotes, SectionSample, SectionUpload}

// ParseSection maps a query value to a Section. Anything unknown selects
// the first menu entry.
func ParseSection(s string) Section {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec
		}
	}
	return SectionQuotes
}

// Label returns the menu caption.
func (s Section) Label() string {
	switch s {
	case SectionSample:
		return "Sample dataset"
	case SectionUpload:
		return "Upload CSV"
	default:
		return "Quotes"
	}
}

// IsTable reports whether the section shows a tabular dataset.
func (s Section) IsTable() bool {
	return s == SectionSample || s == SectionUpload
}
