// Package frame moves tables between memory and Google Sheets.
//
// A Frame records where a table lives in a sheet: the header row sits at
// the anchor cell and the data rows follow it. Frames are produced by
// Create, which writes a Table, or by Get, which reads one back. Charts
// reference frame columns through ColumnRange.
//
// Tables can be loaded from CSV (optionally in a legacy 8-bit encoding) or
// from an Excel workbook.
package frame
