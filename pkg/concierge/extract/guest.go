package extract

import "strings"

const nameWords = `[\p{Lu}][\p{L}'’-]+(?:\s+[\p{Lu}][\p{L}'’-]+){0,3}`

var (
	instructionDetectors = []Detector{
		rx("special", `(?i)\bspecial\s+(?:instructions?|notes?|requests?)\s*[:\-]\s*([^\n]+)`),
	}
	nameDetectors = []Detector{
		rx("guest-name", `(?i:\bguest(?:'s)?\s+name)\s*(?:is\s+|:\s*|-\s*)(`+nameWords+`)`),
		rx("honorific", `\b((?:Mr|Mrs|Ms|Miss|Dr)\.?\s+`+nameWords+`)`),
		rx("name", `(?i:\bname)\s*:\s*(`+nameWords+`)`),
	}
	emailDetectors = []Detector{
		rx("email", `([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`),
	}
	phoneDetectors = []Detector{
		rx("labelled", `(?i)\b(?:phone|tel|telephone|mobile|cell|contact)(?:\s+number)?\s*(?:is\s+|:\s*|-\s*)?(\+?\d[\d\s().\-]{5,}\d)`),
		rx("international", `(\+\d[\d\s().\-]{6,}\d)`),
		rx("local", `(\(?\b\d{3}\)?[\s.\-]\d{3}[\s.\-]\d{4}\b)`),
	}
)

// SpecialInstructions returns the text following a "special
// instructions/notes/requests:" marker, or "".
func SpecialInstructions(text string) string {
	v, _ := First(instructionDetectors, text)
	return strings.TrimRight(v, " .")
}

// GuestName returns the guest's name, or "".
func GuestName(text string) string {
	v, _ := First(nameDetectors, text)
	return normalizeSpace(v)
}

// GuestEmail returns the first e-mail address in text, lowercased, or "".
func GuestEmail(text string) string {
	v, _ := First(emailDetectors, text)
	return strings.ToLower(strings.TrimRight(v, "."))
}

// GuestPhone returns a phone number, or "".
func GuestPhone(text string) string {
	v, _ := First(phoneDetectors, text)
	return normalizeSpace(v)
}
