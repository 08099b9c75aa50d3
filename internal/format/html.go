// Package format converts the small markdown dialect used by canned replies
// into the HTML fragments the chat widget renders.
package format

import (
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

type listKind int

const (
	listNone listKind = iota
	listUnordered
	listOrdered
)

func (k listKind) openTag() string {
	if k == listOrdered {
		return "<ol>"
	}
	return "<ul>"
}

func (k listKind) closeTag() string {
	if k == listOrdered {
		return "</ol>"
	}
	return "</ul>"
}

// ToHTML renders bold spans, bullet lines ("•" or "-"), numbered lines
// ("1." through "9.") and paragraphs. Blank lines are dropped but still
// close an open list. Lines that already start with a block tag are kept
// verbatim so formatting an already formatted reply is a no-op.
func ToHTML(text string) string {
	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")

	var out []string
	open := listNone

	switchTo := func(kind listKind) {
		if open == kind {
			return
		}
		if open != listNone {
			out = append(out, open.closeTag())
		}
		if kind != listNone {
			out = append(out, kind.openTag())
		}
		open = kind
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case isBullet(line):
			switchTo(listUnordered)
			out = append(out, "<li>"+strings.TrimSpace(strings.TrimLeft(line, "•-"))+"</li>")
		case isNumbered(line):
			switchTo(listOrdered)
			out = append(out, "<li>"+stripNumber(line)+"</li>")
		default:
			switchTo(listNone)
			if line == "" {
				continue
			}
			if isBlockHTML(line) {
				out = append(out, line)
				continue
			}
			out = append(out, "<p>"+line+"</p>")
		}
	}
	switchTo(listNone)

	return strings.Join(out, "\n")
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-")
}

// isNumbered matches a single digit 1-9 followed by a dot; "10." is a paragraph.
func isNumbered(line string) bool {
	return len(line) >= 2 && line[0] >= '1' && line[0] <= '9' && line[1] == '.'
}

func stripNumber(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i < len(line) && line[i] == '.' {
		i++
	}
	return strings.TrimLeft(line[i:], " \t")
}

var blockPrefixes = []string{"<p>", "<ul>", "</ul>", "<ol>", "</ol>", "<li>"}

func isBlockHTML(line string) bool {
	for _, p := range blockPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
