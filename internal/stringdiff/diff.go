// Package stringdiff renders side by side line diffs, used to show how a
// committed generated file differs from what the generator would write.
package stringdiff

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Row is one line of the side by side output. Marker is "==" for unchanged
// lines, otherwise the number of differing blocks followed by their kind:
// d (characters), w (whitespace), $ (line endings) or q (mixed).
type Row struct {
	Left   string
	Right  string
	Marker string
}

// Changed reports whether the row differs between both sides.
func (r Row) Changed() bool {
	return r.Marker != "=="
}

type config struct {
	context int
	term    bool
}

// Option configures Diff.
type Option func(*config)

// Context keeps n unchanged lines around each change. A negative n keeps all lines.
func Context(n int) Option {
	return func(c *config) {
		c.context = n
	}
}

// Term colors changed rows for a terminal.
func Term(on bool) Option {
	return func(c *config) {
		c.term = on
	}
}

var (
	leftStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	rightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Diff compares left and right line by line.
func Diff(left, right string, opts ...Option) string {
	cfg := config{context: -1}
	for _, opt := range opts {
		opt(&cfg)
	}
	rows := Rows(left, right)
	if cfg.context >= 0 {
		rows = trim(rows, cfg.context)
	}
	return format(rows, cfg.term)
}

// Rows aligns the lines of left and right. Runs of deleted and inserted lines
// are paired up in order, the remainder of the longer run is one sided.
func Rows(left, right string) []Row {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(left, right)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var rows []Row
	var deleted, inserted []string
	flush := func() {
		n := max(len(deleted), len(inserted))
		for k := 0; k < n; k++ {
			switch {
			case k >= len(inserted):
				rows = append(rows, Row{Left: deleted[k], Marker: oneSided(deleted[k])})
			case k >= len(deleted):
				rows = append(rows, Row{Right: inserted[k], Marker: oneSided(inserted[k])})
			default:
				rows = append(rows, Row{Left: deleted[k], Right: inserted[k], Marker: marker(deleted[k], inserted[k])})
			}
		}
		deleted, inserted = nil, nil
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			deleted = append(deleted, splitLines(d.Text)...)
		case diffmatchpatch.DiffInsert:
			inserted = append(inserted, splitLines(d.Text)...)
		case diffmatchpatch.DiffEqual:
			flush()
			for _, line := range splitLines(d.Text) {
				rows = append(rows, Row{Left: line, Right: line, Marker: "=="})
			}
		}
	}
	flush()
	return rows
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// trim drops unchanged rows further than n rows from a change. Gaps are
// replaced by a single "..." row.
func trim(rows []Row, n int) []Row {
	keep := make([]bool, len(rows))
	for i, r := range rows {
		if !r.Changed() {
			continue
		}
		for k := max(0, i-n); k <= min(len(rows)-1, i+n); k++ {
			keep[k] = true
		}
	}
	var out []Row
	gap := false
	for i, r := range rows {
		if keep[i] {
			out = append(out, r)
			gap = false
			continue
		}
		if !gap {
			out = append(out, Row{Left: "...", Right: "...", Marker: "=="})
			gap = true
		}
	}
	return out
}

// oneSided is the marker of a line present on one side only.
func oneSided(line string) string {
	if strings.TrimSpace(line) == "" {
		return "1w"
	}
	return "1d"
}

func marker(l, r string) string {
	if l == r {
		return "=="
	}
	if l == "" || r == "" {
		return oneSided(l + r)
	}

	blocks := diffBlocks([]rune(l), []rune(r))
	mask := 0 // 1=char, 2=space, 4=eol
	for _, b := range blocks {
		mask |= b
	}

	suffix := "q"
	switch mask {
	case 4:
		suffix = "$"
	case 2:
		suffix = "w"
	case 1:
		suffix = "d"
	}
	return fmt.Sprintf("%d%s", len(blocks), suffix)
}

// diffBlocks returns the kind mask of each contiguous differing block of the
// longest common subsequence alignment of s1 and s2.
func diffBlocks(s1, s2 []rune) []int {
	m, n := len(s1), len(s2)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if s1[i-1] == s2[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	var blocks []int
	i, j := m, n
	inDiff := false
	for i > 0 || j > 0 {
		var char rune
		switch {
		case i > 0 && j > 0 && s1[i-1] == s2[j-1]:
			i--
			j--
			inDiff = false
			continue
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			char = s2[j-1]
			j--
		default:
			char = s1[i-1]
			i--
		}

		mask := 1
		if char == '\r' || char == '\n' {
			mask = 4
		} else if unicode.IsSpace(char) {
			mask = 2
		}
		if inDiff {
			blocks[len(blocks)-1] |= mask
		} else {
			blocks = append(blocks, mask)
			inDiff = true
		}
	}
	return blocks
}

func format(rows []Row, term bool) string {
	var buf bytes.Buffer
	maxLeft, maxMarker := 0, 0
	for _, r := range rows {
		maxLeft = max(maxLeft, len(r.Left))
		maxMarker = max(maxMarker, len(r.Marker))
	}

	for _, r := range rows {
		// Pad before styling, escape codes have no width.
		left := r.Left + strings.Repeat(" ", maxLeft-len(r.Left))
		mark := r.Marker + strings.Repeat(" ", maxMarker-len(r.Marker))
		right := r.Right
		if term && r.Changed() {
			left = leftStyle.Render(left)
			mark = markerStyle.Render(mark)
			right = rightStyle.Render(right)
		}
		buf.WriteString(strings.TrimRight(fmt.Sprintf("%s | %s | %s", left, mark, right), " "))
		buf.WriteString("\n")
	}
	return buf.String()
}
