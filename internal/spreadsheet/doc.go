// Package spreadsheet creates and reads Google Sheets spreadsheets and
// manages their sheets.
package spreadsheet
