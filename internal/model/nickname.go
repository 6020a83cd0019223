package model

import (
	"errors"
	"unicode/utf8"
)

// MaxNicknameLen is the longest nickname the game accepts
const MaxNicknameLen = 16

var (
	// ErrNicknameEmpty means the nickname was empty or whitespace only
	ErrNicknameEmpty = errors.New("nickname cannot be empty")

	// ErrNicknameTooLong means the nickname exceeds MaxNicknameLen
	ErrNicknameTooLong = errors.New("nickname is too long (max 16 characters)")
)

// ValidateNickname checks the nickname constraints applied before any
// backend call. Validation failures never reach the backend. Length is
// counted in characters, not bytes, so non-latin nicknames get the full
// sixteen.
func ValidateNickname(nick string) error {
	if nick == "" {
		return ErrNicknameEmpty
	}
	if utf8.RuneCountInString(nick) > MaxNicknameLen {
		return ErrNicknameTooLong
	}
	return nil
}
