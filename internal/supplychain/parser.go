package supplychain

import "strings"

// parseList splits a generated enumeration into clean items. Models answer
// with comma, semicolon or newline separated lists, often with numbering
// or bullets; all of that is stripped.
func parseList(text string) []string {
	text = strings.ReplaceAll(text, ";", ",")
	text = strings.ReplaceAll(text, "\n", ",")

	var items []string
	for _, raw := range strings.Split(text, ",") {
		item := cleanItem(raw)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func cleanItem(raw string) string {
	item := strings.TrimSpace(raw)
	item = strings.TrimLeft(item, "-*• \t")

	// Strip leading "1." / "2)" style numbering.
	for i, r := range item {
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '.' || r == ')' {
			item = strings.TrimSpace(item[i+1:])
		}
		break
	}

	return strings.Trim(item, `"'.`)
}

// parseTicker extracts a ticker symbol from a one-line answer. Models
// sometimes lead with prose or the company name ("NVIDIA (NVDA)"), so the
// last plausible uppercase token wins.
func parseTicker(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	ticker := ""
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '(' || r == ')' || r == ':' || r == ',' || r == '\n'
	}) {
		token := strings.Trim(field, `"'.`)
		if isTickerLike(token) {
			ticker = token
		}
	}
	return ticker
}

// isTickerLike accepts 1-5 uppercase letters, optionally with a dot-class
// suffix like BRK.B.
func isTickerLike(s string) bool {
	if s == "" || len(s) > 7 {
		return false
	}
	if s == "N/A" || s == "NONE" {
		return false
	}

	letters := 0
	for i, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
		case r == '.' && i > 0 && i < len(s)-1:
			// class suffix separator
		default:
			return false
		}
	}
	return letters >= 1 && letters <= 6
}
