package secret

import (
	"errors"
	"strings"
)

// Proquint encoding: each 16-bit word becomes a five-letter
// consonant-vowel-consonant-vowel-consonant syllable, words joined by
// dashes. The mapping is deterministic and reversible.

const (
	proquintConsonants = "bdfghjklmnprstvz"
	proquintVowels     = "aiou"
)

var errBadProquint = errors.New("invalid proquint")

func proquintEncode(data []byte) string {
	var b strings.Builder
	for i := 0; i+1 < len(data); i += 2 {
		if i > 0 {
			b.WriteByte('-')
		}
		w := uint16(data[i])<<8 | uint16(data[i+1])
		b.WriteByte(proquintConsonants[w>>12&0xf])
		b.WriteByte(proquintVowels[w>>10&0x3])
		b.WriteByte(proquintConsonants[w>>6&0xf])
		b.WriteByte(proquintVowels[w>>4&0x3])
		b.WriteByte(proquintConsonants[w&0xf])
	}
	return b.String()
}

func proquintDecode(s string) ([]byte, error) {
	words := strings.Split(s, "-")
	out := make([]byte, 0, len(words)*2)
	for _, word := range words {
		if len(word) != 5 {
			return nil, errBadProquint
		}
		var w uint16
		for i := 0; i < 5; i++ {
			var idx int
			if i%2 == 0 {
				idx = strings.IndexByte(proquintConsonants, word[i])
				if idx < 0 {
					return nil, errBadProquint
				}
				w = w<<4 | uint16(idx)
			} else {
				idx = strings.IndexByte(proquintVowels, word[i])
				if idx < 0 {
					return nil, errBadProquint
				}
				w = w<<2 | uint16(idx)
			}
		}
		out = append(out, byte(w>>8), byte(w))
	}
	return out, nil
}
