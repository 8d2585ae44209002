// Package textutil provides text helpers for turning display labels into
// filesystem-safe names.
//
// Slug folds case and strips diacritics before reducing a label to a
// hyphen-separated token, so "Motor Température" becomes
// "motor-temperature".
package textutil
