// Package table renders tabular data as a Google Slides table.
//
// Slides only returns the id of a new table after it is created, so Create
// makes two batch updates: one creating an empty table on the slide and one
// moving, filling and styling it.
package table
