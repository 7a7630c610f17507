// Package jobs implements the job-posting domain: the Posting model, its
// postgres store (create + OR-filter), and the authenticated HTTP endpoints.
//
// All job endpoints sit behind the session middleware; handlers read the
// verified identity from the request context and never trust client-supplied
// user ids.
package jobs
