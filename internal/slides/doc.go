// Package slides wraps the Google Slides v1 API service with tracing,
// metrics and debug logging of request bodies.
package slides
