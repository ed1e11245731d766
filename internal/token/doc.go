// Package token defines the lexical token kinds produced by the tokenizer.
// Invariants:
//   - Token.Text is exactly the document text covered by Token.Span.
//   - Span offsets are rune offsets; Span.Len() equals the rune length of Text.
//   - Word tokens contain letters (with their combining marks) only.
//   - The tokens of a document, without EOF, partition it: no gaps, no overlaps.
package token
