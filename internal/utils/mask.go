package utils

import "strings"

const maskFill = "****"

// MaskPhoneNumber hides the middle of a phone number for logging.
// Separators are dropped first; numbers of six digits or fewer are masked entirely.
//
//	"+1 555 000-1111" -> "+15****1111"
func MaskPhoneNumber(phone string) string {
	phone = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, phone)

	if len(phone) <= 6 {
		return maskFill
	}
	return phone[:3] + maskFill + phone[len(phone)-4:]
}

// MaskSecret keeps the first four characters of a token or password-like value
func MaskSecret(secret string) string {
	if len(secret) <= 8 {
		return maskFill
	}
	return secret[:4] + maskFill
}
