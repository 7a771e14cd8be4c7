// Package parsers converts raw tool output into normalized findings.
//
// Every parser is a pure function: text or bytes in, findings out. They
// never return errors for malformed tool output. Lines or records that
// do not match the tool's format are skipped, so headers, footers and
// informational noise degrade to partial or empty results instead of
// failures. The rule identifier style is threaded in explicitly so
// callers (and tests) control it without touching process state.
package parsers
