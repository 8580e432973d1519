// Package classify extracts article metadata from paper text and matches
// the abstract against the configured filing rules using an OpenRouter
// style chat completion API.
package classify
