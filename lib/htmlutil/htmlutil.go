package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under node, as is.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText folds every unicode space (nbsp included) into a plain space,
// drops non printable runes, collapses runs of whitespace and trims.
func CleanText(s string) string {
	out := strings.Builder{}
	for _, c := range s {
		switch {
		case unicode.IsSpace(c):
			out.WriteRune(' ')
		case unicode.IsPrint(c):
			out.WriteRune(c)
		}
	}
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(out.String(), " "))
}

// Text returns the cleaned text content of every node in the selection.
func Text(sel *goquery.Selection) string {
	var out strings.Builder
	for _, n := range sel.Nodes {
		out.WriteString(GetText(n))
	}
	return CleanText(out.String())
}

// Children returns the immediate element children of the first node in
// sel, in document order. Text, comments and grandchildren are skipped.
func Children(sel *goquery.Selection) []*goquery.Selection {
	children := sel.First().Children()
	out := make([]*goquery.Selection, children.Length())
	for i := range out {
		out[i] = children.Eq(i)
	}
	return out
}
