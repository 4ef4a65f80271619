package device

import "github.com/mixvm/negroni/mix"

// wordByteSize is the on-disk size of one encoded word: one sign byte
// followed by the five magnitude bytes.
const wordByteSize = 1 + mix.WordBytes

func encodeWord(w mix.Word, out []byte) {
	if w.Sign == mix.Negative {
		out[0] = 1
	} else {
		out[0] = 0
	}
	copy(out[1:], w.Bytes[:])
}

func decodeWord(in []byte) mix.Word {
	s := mix.Positive
	if in[0] == 1 {
		s = mix.Negative
	}
	var w mix.Word
	w.Sign = s
	copy(w.Bytes[:], in[1:1+mix.WordBytes])
	return w
}

func encodeWords(words []mix.Word) []byte {
	out := make([]byte, len(words)*wordByteSize)
	for i, w := range words {
		encodeWord(w, out[i*wordByteSize:])
	}
	return out
}

func decodeWords(buf []byte) []mix.Word {
	n := len(buf) / wordByteSize
	out := make([]mix.Word, n)
	for i := 0; i < n; i++ {
		out[i] = decodeWord(buf[i*wordByteSize:])
	}
	return out
}
