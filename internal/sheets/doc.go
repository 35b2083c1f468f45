// Package sheets wraps the Google Sheets v4 API service.
//
// The Client adds tracing, metrics and debug logging of request bodies around
// the handful of calls gslides needs, and caches sheet id to title lookups per
// spreadsheet. Domain packages depend on the narrow API interface so they can
// be tested against fakes.
package sheets
