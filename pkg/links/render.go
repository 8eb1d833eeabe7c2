package links

import (
	"html"
	"strings"
)

// renderAnchor builds the anchor for a resolved occurrence. The title
// attribute is only emitted when the tag carries one; the link text falls
// back to the target title. Tag content is inner markup and is written as is.
func renderAnchor(item LinkItem, attrs Attributes) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(item.URL))
	b.WriteByte('"')
	if title := attrs.Title(); title != "" {
		writeAttr(&b, AttrTitle, title)
	}
	if target := attrs.Target(); target != "" {
		writeAttr(&b, AttrTarget, target)
	}
	b.WriteByte('>')
	if content := attrs.Content(); content != "" {
		b.WriteString(content)
	} else {
		b.WriteString(html.EscapeString(item.Title))
	}
	b.WriteString("</a>")
	return b.String()
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
}

// degrade returns the plain replacement for an occurrence whose target did
// not resolve.
func degrade(attrs Attributes) string {
	if content := attrs.Content(); content != "" {
		return content
	}
	return html.EscapeString(attrs.Title())
}
