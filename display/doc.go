// Package display formats domain values for people: pt-BR labels, dates,
// relative times, document masks and plain-text previews of rich text.
package display
