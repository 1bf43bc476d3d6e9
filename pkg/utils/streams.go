// Package utils holds cursor helpers shared by the scanner (over runes)
// and the parser (over tokens). Each helper reads a slice at an index
// owned by the caller and never panics on out-of-range positions.
package utils

import (
	"github.com/ostnam/nlox/pkg/tokens"
)

// Returns a pointer to the element at pos, or nil past the end.
func Peek[T any](str []T, pos int) *T {
	if pos >= 0 && pos < len(str) {
		return &str[pos]
	}
	return nil
}

// Returns the element just before pos, or nil at the start.
func Previous[T any](str []T, pos int) *T {
	return Peek(str, pos-1)
}

// Returns the element at *pos and moves the cursor past it.
func Advance[T any](str []T, pos *int) *T {
	if *pos >= len(str) || *pos < 0 {
		return nil
	}
	res := &str[*pos]
	*pos++
	return res
}

func IsAtEnd[T any](str []T, pos int) bool {
	return pos >= len(str)
}

// Consumes the element at *pos if it equals one of vals.
func Match[T comparable](slice []T, pos *int, vals ...T) bool {
	if *pos >= len(slice) {
		return false
	}
	for _, val := range vals {
		if slice[*pos] == val {
			*pos++
			return true
		}
	}
	return false
}

// Consumes the token at *pos if its type is one of vals.
func MatchTokenType(slice []tokens.Token, pos *int, vals ...tokens.TokType) bool {
	if !PeekMatchesTokType(slice, *pos, vals...) {
		return false
	}
	*pos++
	return true
}

func PeekMatchesTokType(slice []tokens.Token, pos int, vals ...tokens.TokType) bool {
	peeked := Peek(slice, pos)
	if peeked == nil {
		return false
	}
	for _, val := range vals {
		if val == peeked.Type {
			return true
		}
	}
	return false
}
