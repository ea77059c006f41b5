package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"user-registry-api/internal/application/ports"
)

var angleStripper = strings.NewReplacer("<", "", ">", "")

// maxPasses bounds the decode loop for inputs nested in many entity layers.
const maxPasses = 8

// XSS removes every HTML element and keeps the text content. Entities are
// decoded layer by layer and stray angle brackets dropped until the text
// stops changing, so running it twice gives the same output.
type XSS struct {
	policy *bluemonday.Policy
}

func NewXSS() *XSS {
	return &XSS{policy: bluemonday.StrictPolicy()}
}

var _ ports.XSSSanitizer = (*XSS)(nil)

func (x *XSS) Sanitize(s string) string {
	if s == "" {
		return s
	}
	for i := 0; i < maxPasses; i++ {
		next := x.pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func (x *XSS) pass(s string) string {
	return angleStripper.Replace(html.UnescapeString(x.policy.Sanitize(s)))
}
