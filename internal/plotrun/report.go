package plotrun

import "oeplot/internal/selection"

// Skip reasons recorded in a Report.
const (
	ReasonNotFound = "not_found"
	ReasonInvalid  = "invalid"
)

// Skipped describes an entry that produced no plot.
type Skipped struct {
	Selector selection.Selector `json:"selector"`
	Path     string             `json:"path"`
	Reason   string             `json:"reason"`
	Error    string             `json:"error"`
}

// Report summarizes one batch.
type Report struct {
	RunID   string    `json:"run_id"`
	RunDir  string    `json:"run_dir,omitempty"`
	Figures []string  `json:"figures"`
	Skipped []Skipped `json:"skipped,omitempty"`
	// Plotted counts entries that were drawn onto a figure.
	Plotted int `json:"plotted"`
}

func (r *Report) skip(sel selection.Selector, path, reason string, err error) {
	r.Skipped = append(r.Skipped, Skipped{
		Selector: sel,
		Path:     path,
		Reason:   reason,
		Error:    err.Error(),
	})
}
