package extract

var roomDetectors = []Detector{
	rx("room", `(?i)\b(?:room|phòng)\s*(?:number|no\.?|num\.?)?\s*[#:\-]?\s*(\d{1,5}[A-Za-z]?)\b`),
	rx("room-details", `(?i)\broom\s+details?\s*[:\-]?[^\d\n]{0,40}?(\d{1,5}[A-Za-z]?)\b`),
	rx("details-room", `(?i)\bdetails?\b[^\n]{0,80}?\broom\b[^\d\n]{0,20}?(\d{1,5}[A-Za-z]?)\b`),
}

// RoomNumber returns the guest's room number, trying the direct "room N"
// form first and then the two "details" fallbacks.
func RoomNumber(text string) (string, bool) {
	return First(roomDetectors, text)
}
