package metadata

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldText reduces s to a case- and accent-insensitive ASCII form so
// "Amélie" matches "amelie".
func foldText(s string) string {
	s = strings.TrimSpace(norm.NFKC.String(s))
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(cases.Fold().String(unidecode.Unidecode(s))), " ")
}
