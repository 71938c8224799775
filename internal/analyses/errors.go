package analyses

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrNoAudio  = errors.New("no audio provided")
)
