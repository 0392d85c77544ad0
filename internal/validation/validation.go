// Package validation contains the logic for validating
// request data.
//
// Request payloads arrive as loosely typed JSON, so most rules run on
// the decoded `data` object (Payload) through a data-driven Schema.
// Route parameters are checked with the `validator` library's struct
// tags. Either way, failures are converted into field errors the client
// can understand.
package validation
