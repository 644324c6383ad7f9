package arinc424

// DecodeLatitude decodes "N38443200" (hemisphere, DD MM SS hh).
func DecodeLatitude(s string) (float64, bool) {
	return decodeDMS(s, 2, 'N', 'S')
}

// DecodeLongitude decodes "W077261900" (hemisphere, DDD MM SS hh).
func DecodeLongitude(s string) (float64, bool) {
	return decodeDMS(s, 3, 'E', 'W')
}

// decodeDMS computes deg + min/60 + (sec + hundredths/100)/3600, negated for
// the negative hemisphere. Short or non-numeric input reports false.
func decodeDMS(s string, degDigits int, pos, neg byte) (float64, bool) {
	if len(s) < 1+degDigits+6 {
		return 0, false
	}
	var sign float64
	switch s[0] {
	case pos:
		sign = 1
	case neg:
		sign = -1
	default:
		return 0, false
	}

	i := 1
	deg, ok := digits(s[i : i+degDigits])
	if !ok {
		return 0, false
	}
	i += degDigits
	mins, ok := digits(s[i : i+2])
	if !ok {
		return 0, false
	}
	secs, ok := digits(s[i+2 : i+4])
	if !ok {
		return 0, false
	}
	hundredths, ok := digits(s[i+4 : i+6])
	if !ok {
		return 0, false
	}

	v := float64(deg) + float64(mins)/60 + (float64(secs)+float64(hundredths)/100)/3600
	return sign * v, true
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
