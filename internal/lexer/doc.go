// Package lexer splits DQL query text into raw tokens.
//
// The lexer is the first stage of the front-end pipeline:
//
//	[query text] → lexer.Tokenizer → token.Stream → parser.Builder → validate
//
// A raw token is a Span into the Source buffer. Spans never copy text; they
// stay valid for as long as the Source they came from. Classification (and
// the owned copy of the text) happens in package token.
//
// SCANNING RULES:
//
// Each call to Tokenizer.Next performs one step:
//  1. Skip leading whitespace.
//  2. Digit run: the maximal run of digits.
//  3. Letter run: a letter followed by letters, digits and underscores.
//  4. Quoted run: a single quote up to and including the next single quote
//     (or the end of the buffer when the quote is never closed).
//  5. Self-delimiting characters ; , ( ) * are always a run of one.
//  6. Symbol run: the maximal run of characters that are either not
//     alphanumeric or are whitespace, stopping in front of a quote or a
//     self-delimiting character. This is what keeps "> =" together so the
//     classifier can normalize it to ">=".
//
// An underscore continues a letter run but never starts one. A leading
// underscore therefore opens a symbol run: "_X" scans as "_" then "X", and
// "B = _Y" as "B", "= _", "Y". Names that begin with an underscore are
// not identifiers in DQL and the parser rejects them.
//
// The Tokenizer is finite and not restartable. Construct a new one to scan
// the same Source again.
package lexer
