// Package normalize holds the cleaning primitives every source mapper
// composes into a canonical job record.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	specialCharsRe  = regexp.MustCompile(`[^\p{L}\p{N}\s.,\-_/()]`)
	htmlTagRe       = regexp.MustCompile(`<[^>]*>`)
	trailingPunctRe = regexp.MustCompile(`[.,;:!?]+$`)
)

// CleanWhitespace collapses whitespace runs into single spaces and trims.
func CleanWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RemoveSpecialCharacters keeps letters, digits, whitespace and . , - _ ( ) /
func RemoveSpecialCharacters(s string) string {
	return specialCharsRe.ReplaceAllString(s, "")
}

func StripHTMLTags(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}

// NormalizeCase lowercases s and uppercases the first letter of every word.
func NormalizeCase(s string) string {
	rs := []rune(strings.ToLower(s))
	prevWord := false
	for i, r := range rs {
		w := isWordRune(r)
		if w && !prevWord {
			rs[i] = unicode.ToUpper(r)
		}
		prevWord = w
	}
	return string(rs)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// NormalizeCompanyName derives the lowercase match key for a company name.
func NormalizeCompanyName(company string) string {
	s := strings.ToLower(RemoveSpecialCharacters(company))
	s = CleanWhitespace(s)
	return trailingPunctRe.ReplaceAllString(s, "")
}

// HTMLText extracts the readable text of an HTML fragment or document,
// separating block elements so words from adjacent paragraphs don't fuse.
func HTMLText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return CleanWhitespace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CleanWhitespace(StripHTMLTags(fragment))
	}
	doc.Find("script, style").Remove()
	doc.Find("p, div, li, br, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendNodes(&html.Node{Type: html.TextNode, Data: " "})
	})
	return CleanWhitespace(doc.Text())
}
