package heuristics

import (
	"regexp"
	"strings"
)

var atxHeading = regexp.MustCompile(`^#{1,6}[\s\p{Zs}]`)

const softHyphen = "\u00ad"

// Normalize undoes PDF line wrapping. Inside every blank-line delimited
// paragraph the wrapped lines are joined with a single space; paragraph
// boundaries are kept. Heading lines always stay on a line of their own.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
		}
	}

	chunks := strings.Split(strings.Join(lines, "\n"), "\n\n")
	out := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if joined := joinChunk(chunk); joined != "" {
			out = append(out, joined)
		}
	}
	return strings.Join(out, "\n\n")
}

func joinChunk(chunk string) string {
	var rows []string
	var cur strings.Builder

	closeRow := func() {
		if cur.Len() > 0 {
			rows = append(rows, cur.String())
			cur.Reset()
		}
	}

	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		if atxHeading.MatchString(line) {
			closeRow()
			rows = append(rows, line)
			continue
		}
		if cur.Len() > 0 {
			prev := cur.String()
			if strings.HasSuffix(prev, softHyphen) {
				// rejoin a word the converter split with a soft hyphen
				prev = strings.TrimSuffix(strings.TrimSuffix(prev, softHyphen), "-")
				cur.Reset()
				cur.WriteString(prev)
			} else {
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(line)
	}
	closeRow()

	return strings.Join(rows, "\n")
}
