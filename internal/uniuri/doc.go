// Package uniuri generates random strings from a restricted alphabet,
// good for session payloads and other URL-safe identifiers.
package uniuri
