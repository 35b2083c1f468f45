// Package cmd implements the command-line interface for gslides.
//
// This package provides the following commands:
//   - auth: Authorize an account and cache its OAuth token
//   - config: Show the effective settings or write them to the settings file
//   - spreadsheet: Create spreadsheets and add or remove sheets
//   - frame: Upload CSV or XLSX tables to a sheet and print ranges
//   - presentation: Create presentations and remove slides
//   - deck: Build charts, tables and slides from a YAML manifest
//   - version: Display version information
package cmd
