// Package model holds the records the API serves and the request
// payloads that create and change them.
package model
