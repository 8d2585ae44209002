package entrylog

import "math"

// Column kinds reported by Summarize.
const (
	KindNumeric = "numeric"
	KindText    = "text"
)

// ColumnSummary describes the contents of one column.
type ColumnSummary struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Count    int     `json:"count"`
	Missing  int     `json:"missing"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Mean     *float64 `json:"mean,omitempty"`
	Distinct int     `json:"distinct,omitempty"`
}

// Summarize computes per-column statistics. Numeric columns report min, max,
// and mean over their finite values; text columns report the number of
// distinct values. Statistics that cannot be computed are left nil.
func Summarize(table *Table) []ColumnSummary {
	if table == nil {
		return nil
	}
	out := make([]ColumnSummary, 0, len(table.Columns))
	for _, col := range table.Columns {
		s := ColumnSummary{Name: col.Name}
		if col.Numeric() {
			s.Kind = KindNumeric
			summarizeNumeric(&s, col)
		} else {
			s.Kind = KindText
			seen := make(map[string]struct{})
			for _, v := range col.Values {
				if v.Missing() {
					s.Missing++
					continue
				}
				s.Count++
				seen[v.Text] = struct{}{}
			}
			s.Distinct = len(seen)
		}
		out = append(out, s)
	}
	return out
}

func summarizeNumeric(s *ColumnSummary, col Column) {
	minV, maxV, sum := math.Inf(1), math.Inf(-1), 0.0
	finite := 0
	for _, v := range col.Values {
		if v.Missing() {
			s.Missing++
			continue
		}
		s.Count++
		// Out-of-range cells parse to an infinity and are counted but not averaged.
		if math.IsInf(v.Number, 0) {
			continue
		}
		finite++
		sum += v.Number
		minV = math.Min(minV, v.Number)
		maxV = math.Max(maxV, v.Number)
	}
	if finite == 0 {
		return
	}
	mean := sum / float64(finite)
	s.Min, s.Max, s.Mean = &minV, &maxV, &mean
}
