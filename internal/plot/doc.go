// Package plot turns entry log tables into line-chart figures and renders them
// to PNG or SVG.
//
// A Figure is one output image made of vertically stacked panels. Two-column
// tables contribute a single series to a caller-supplied panel, so several
// entries can share one chart and legend. Wider tables get a figure of their
// own with one panel per value column, all sharing the x values. Rendering is
// delegated to go-chart per panel; panels are then composed into one image.
package plot
