package lcs

// SplitWords splits a string into words based on character transitions. It
// detects word boundaries at:
//   - Uppercase letter after lowercase letter: "getID" -> "get" + "ID"
//   - Around underscores: "send_nowait" -> "send" + "_" + "nowait"
//   - Around digits: "file2name" -> "file" + "2" + "name"
func SplitWords(s string) []string {
	var words []string
	i := 0
	for i < len(s) {
		splitted := false

		j := i + 1
		for ; j < len(s); j++ {
			var next byte
			if j != len(s)-1 {
				next = s[j+1]
			}

			if isWordBoundary(s[j-1], s[j], next) {
				words = append(words, s[i:j])
				i = j
				splitted = true
				break
			}
		}

		if !splitted {
			words = append(words, s[i:])
			break
		}
	}
	return words
}

// isWordBoundary detects word boundaries based on character transitions.
func isWordBoundary(prev, curr, next byte) bool {
	// Uppercase after lowercase (camelCase transition)
	if isLower(prev) && isUpper(curr) {
		return true
	}

	// Uppercase before lowercase while preceded by uppercase (acronym end:
	// "HTTPServer" -> "HTTP" + "Server")
	if isUpper(prev) && isUpper(curr) && isLower(next) {
		return true
	}

	// Around underscores
	if prev != '_' && curr == '_' {
		return true
	}
	if prev == '_' && curr != '_' {
		return true
	}

	// Around digits
	if !isDigit(prev) && isDigit(curr) {
		return true
	}
	if isDigit(prev) && !isDigit(curr) {
		return true
	}

	return false
}

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }
