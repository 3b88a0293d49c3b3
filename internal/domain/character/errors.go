package character

import "errors"

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrAlreadyCollected  = errors.New("character already collected")
)
