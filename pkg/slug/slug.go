package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

var transliterator = strings.NewReplacer(
	"'", "", "’", "",
	"á", "a", "à", "a", "â", "a", "ä", "a", "ã", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i", "ı", "i",
	"ó", "o", "ò", "o", "ô", "o", "ö", "o", "õ", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n", "ş", "s", "ğ", "g",
)

// Generate creates a taxonomy id from a display name.
//
// Examples:
//   - "Home & Kitchen" → "home-kitchen"
//   - "Men's Clothing" → "mens-clothing"
//   - "Crème Brûlée  Sets" → "creme-brulee-sets"
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = transliterator.Replace(slug)

	// Runs of anything else collapse into a single hyphen.
	slug = slugRegexp.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}
