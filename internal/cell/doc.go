// Package cell converts between A1-style spreadsheet cell names and 1-based
// row/column numbers.
//
// Column letters use bijective base-26 (A=1 ... Z=26, AA=27 ... ZZ=702). Only
// one or two letters are supported, so the largest addressable column is 702.
package cell
