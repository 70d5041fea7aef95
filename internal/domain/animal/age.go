package animal

import "time"

// AgeInMonths counts whole months between dob and now. A month is only
// counted once the day of month has been reached. Future dates yield 0.
func AgeInMonths(dob, now time.Time) int {
	months := (now.Year()-dob.Year())*12 + int(now.Month()-dob.Month())
	if now.Day() < dob.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
