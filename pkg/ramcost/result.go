package ramcost

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UsageEntry is one line of a cost breakdown.
type UsageEntry struct {
	Type Kind    `json:"type" yaml:"type"`
	Name string  `json:"name" yaml:"name"`
	Cost float64 `json:"cost" yaml:"cost"`
}

// Result is the total RAM cost of a script and its breakdown. Entries start
// with the base cost and follow first-seen order.
type Result struct {
	Cost    float64      `json:"cost" yaml:"cost"`
	Entries []UsageEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// Format writes the breakdown as a plain table.
func (r *Result) Format(w io.Writer) error {
	return r.FormatLocale(w, language.English)
}

// FormatLocale writes the breakdown with numbers formatted for tag.
func (r *Result) FormatLocale(w io.Writer, tag language.Tag) error {
	p := message.NewPrinter(tag)
	for _, e := range r.Entries {
		if _, err := p.Fprintf(w, "%-5s %-40s %10.2f GB\n", e.Type, e.Name, e.Cost); err != nil {
			return err
		}
	}
	_, err := p.Fprintf(w, "%-46s %10.2f GB\n", "Total", r.Cost)
	return err
}
