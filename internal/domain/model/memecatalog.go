package model

import (
	"math/rand/v2"
	"strings"
)

// MemeCatalog is a fixed, ordered list of celebration image URLs compiled
// into the binary.
type MemeCatalog []string

// DefaultMemeCatalog is the production catalog posted on freshly approved
// pull requests.
var DefaultMemeCatalog = MemeCatalog{
	"https://media.giphy.com/media/111ebonMs90YLu/giphy.gif",
	"https://media.giphy.com/media/3o6fJ1BM7R2EBRDnxK/giphy.gif",
	"https://media.giphy.com/media/l0MYt5jPR6QX5pnqM/giphy.gif",
	"https://media.giphy.com/media/LZElUsjl1Bu6c/giphy.gif",
	"https://media.giphy.com/media/4xpB3eE00FfBm/giphy.gif",
	"https://media.giphy.com/media/DKnMqdm9i980E/giphy.gif",
	"https://media.giphy.com/media/xUPGcEliCc7bETyfO8/giphy.gif",
	"https://media.giphy.com/media/mGK1g88HZRa2FlKGbz/giphy.gif",
}

// Random returns a uniformly random catalog entry. Back-to-back calls may
// return the same URL.
func (c MemeCatalog) Random() string {
	return c[rand.IntN(len(c))]
}

// AppearsIn reports whether any catalog URL occurs as a substring of the
// given comment body. This is deliberately broader than "posted by us": a
// manually posted catalog URL also counts as already celebrated.
func (c MemeCatalog) AppearsIn(body string) bool {
	for _, url := range c {
		if strings.Contains(body, url) {
			return true
		}
	}
	return false
}
