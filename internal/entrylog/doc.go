// Package entrylog reads the per-entry CSV files written by the logging
// subsystem.
//
// Files live at <root>/<node>/<object_entry>.csv. The first row is a header,
// the first column is the timestamp in microseconds, and the remaining columns
// hold one value stream each. Cells that look numeric are parsed as float64;
// everything else is kept as text so enum names and status strings survive.
package entrylog
