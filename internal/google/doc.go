// Package google provides OAuth2 credentials for the Google Sheets and Slides APIs.
//
// Two credential kinds are supported, both read from one JSON file:
//   - a service account key, used directly through the JWT flow;
//   - an OAuth client secrets file for an installed app, combined with a
//     per-account token cached under the user cache directory
//     (gslides/google-<account>.token).
//
// The TokenProvider interface lets the service gateway stay independent of
// where tokens come from.
package google
