package repository

import "strconv"

// nextID derives the next sequential dialogue identifier from the existing
// ones: non-numeric entries are ignored, the maximum is incremented, and
// "1" is returned when no numeric identifier exists yet.
func nextID(existing []string) string {
	max := 0
	for _, id := range existing {
		if !isDigits(id) {
			continue
		}
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
