// Package env expands {{variable}} references in suite files.
//
// Variables come from three places, later ones winning:
//   - a .env file next to the suite
//   - the suite's own variables block
//   - process environment variables prefixed with STRUCTEQ_VAR_
//
// {{$NAME}} reads the process environment variable NAME directly.
package env
