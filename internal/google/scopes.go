package google

import (
	sheets "google.golang.org/api/sheets/v4"
	slides "google.golang.org/api/slides/v1"
)

// DefaultOAuthScopes are the Google OAuth scopes gslides requests.
//
// The scopes provide access to:
//   - Google Sheets: create spreadsheets, write values, add charts
//   - Google Slides: create presentations, slides, tables and linked charts
var DefaultOAuthScopes = []string{
	sheets.SpreadsheetsScope,
	slides.PresentationsScope,
}
