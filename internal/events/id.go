package events

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	idSuffixLen = 5
)

// NewShareID builds a human-shareable event identifier of the form
// eventra-<prefix>-<random>, where prefix is the creator UUID segment before
// the first dash. Collisions are handled by the caller retrying on insert.
func NewShareID(creatorUUID string) (string, error) {
	prefix := creatorUUID
	if i := strings.Index(prefix, "-"); i > 0 {
		prefix = prefix[:i]
	}
	suffix, err := gonanoid.Generate(idAlphabet, idSuffixLen)
	if err != nil {
		return "", err
	}
	return "eventra-" + prefix + "-" + suffix, nil
}
