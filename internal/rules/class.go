package rules

// Class is the phonetic class of a sound unit.
type Class uint8

const (
	None Class = iota
	Vowel
	Consonant
	Glide
)

func (c Class) String() string {
	switch c {
	case Vowel:
		return "vowel"
	case Consonant:
		return "consonant"
	case Glide:
		return "glide"
	default:
		return "none"
	}
}

// Letter returns the one-letter tag used in compact listings.
func (c Class) Letter() byte {
	switch c {
	case Vowel:
		return 'V'
	case Consonant:
		return 'C'
	case Glide:
		return 'G'
	default:
		return '?'
	}
}
