package token

// Kind represents the category of a token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the document. It covers no text.
	EOF
	// Word is a run of letter clusters.
	Word
	// Space is a run of white space, line breaks included.
	Space
	// Punct is a run of anything else: punctuation, symbols, digits, stray marks.
	Punct
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Word:
		return "Word"
	case Space:
		return "Space"
	case Punct:
		return "Punct"
	default:
		return "Invalid"
	}
}
