// Package httpserver provides the HTTP shell around the execution core.
//
// The shell owns pre-validation only: it rejects malformed requests and
// oversized code with client errors before the core is invoked, and turns
// every well-formed core result into a 200 response with the output and
// exit-code envelope. Core outcomes, including infrastructure failures and
// timeouts, are never surfaced as transport errors.
package httpserver
