// Package plotrun drives batches of entry logs through load, draw, write,
// and display.
//
// A Runner resolves every selector to its CSV file, draws the loaded table
// with the plot package, and writes the resulting figures into a per-run
// directory under the configured output directory. Missing or unreadable
// entries are reported on the status writer and skipped; the batch always
// continues with the next entry.
//
// Plot serves the flat node/entry form and either batches all figures until
// the end or shows each entry on its own as soon as it is drawn. PlotGroups
// serves the grouped form and shows each group's figures before moving on.
package plotrun
