// Package linestream turns an unbounded serial byte stream into decoded,
// trimmed text lines.
//
// Bytes are accumulated until a '\n' terminator arrives. Each completed
// segment is decoded as UTF-8, with invalid sequences replaced by U+FFFD,
// and trimmed of surrounding whitespace (which also removes a trailing '\r').
// Empty results are dropped. Framing does not depend on how the input was
// chunked:
//
// ┌──────────────┐  Fill()  ┌────────────┐  '\n'  ┌──────────────┐
// │ io.ReadCloser │────────▶│ LineBuffer │──────▶│ pending lines │──▶ Poll()
// └──────────────┘          └────────────┘        └──────────────┘
//
// A Reader is owned by a single goroutine and is not safe for concurrent use.
package linestream
