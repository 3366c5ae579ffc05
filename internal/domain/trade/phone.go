package trade

import "regexp"

var intakePhonePattern = regexp.MustCompile(`^5\d{9}$`)

// ValidIntakePhone reports whether the phone is a bare 10-digit GSM number
// starting with 5. This strict form is only required at order intake;
// stored orders may carry phones in other formats.
func ValidIntakePhone(phone string) bool {
	return intakePhonePattern.MatchString(phone)
}

// NormalizePhone strips every non-digit character
func NormalizePhone(phone string) string {
	out := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			out = append(out, phone[i])
		}
	}
	return string(out)
}

// PhoneSuffix returns the trailing 10 digits of the phone, which identify a
// Turkish GSM subscriber regardless of 0 or +90 prefixes. It returns "" when
// the phone carries fewer than 10 digits.
func PhoneSuffix(phone string) string {
	digits := NormalizePhone(phone)
	if len(digits) < 10 {
		return ""
	}
	return digits[len(digits)-10:]
}
