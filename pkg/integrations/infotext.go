package integrations

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText flattens the HTML fragments the catalog sometimes returns in
// free-text fields: tags are dropped, entities decoded and whitespace
// collapsed. Block-level breaks become single spaces.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}
