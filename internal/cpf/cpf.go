// Package cpf implements normalization, display formatting, and check-digit
// validation for the Brazilian CPF (11-digit individual taxpayer number).
package cpf

// Normalize strips everything but decimal digits from raw.
func Normalize(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			out = append(out, raw[i])
		}
	}
	return string(out)
}

// Format renders up to 11 digits in the 000.000.000-00 mask. Partial input
// is masked as far as it goes, so the function is safe to call on every
// keystroke.
func Format(raw string) string {
	digits := Normalize(raw)
	if len(digits) > 11 {
		digits = digits[:11]
	}
	if digits == "" {
		return ""
	}
	out := make([]byte, 0, 14)
	for i := 0; i < len(digits); i++ {
		out = append(out, digits[i])
		remaining := len(digits) - (i + 1)
		if remaining == 0 {
			continue
		}
		switch i {
		case 2, 5:
			out = append(out, '.')
		case 8:
			out = append(out, '-')
		}
	}
	return string(out)
}

func verifierDigit(digits string, factorStart int) int {
	total := 0
	for i := 0; i < len(digits); i++ {
		total += int(digits[i]-'0') * (factorStart - i)
	}
	remainder := total % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

// Validate reports whether raw contains a well-formed CPF: exactly 11 digits
// after normalization, not a single repeated digit, and both verifier digits
// matching the national check-digit algorithm.
func Validate(raw string) bool {
	digits := Normalize(raw)
	if len(digits) != 11 {
		return false
	}
	repeated := true
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return false
	}
	if verifierDigit(digits[:9], 10) != int(digits[9]-'0') {
		return false
	}
	return verifierDigit(digits[:10], 11) == int(digits[10]-'0')
}
