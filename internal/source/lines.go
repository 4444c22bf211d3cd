package source

import "sort"

// LineIndex maps byte offsets to 1-based line and column numbers.
type LineIndex struct {
	content []byte
	starts  []int
}

// NewLineIndex records the start offset of every line in content.
func NewLineIndex(content []byte) *LineIndex {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{content: content, starts: starts}
}

// Line returns the 1-based line containing offset.
func (li *LineIndex) Line(offset int) int {
	return sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
}

// Position returns the 1-based line and column of offset.
func (li *LineIndex) Position(offset int) (line, column int) {
	line = li.Line(offset)
	return line, offset - li.starts[line-1] + 1
}

// LineText returns the text of a 1-based line without its line terminator.
func (li *LineIndex) LineText(line int) string {
	if line < 1 || line > len(li.starts) {
		return ""
	}
	start := li.starts[line-1]
	end := len(li.content)
	if line < len(li.starts) {
		end = li.starts[line] - 1
	}
	if end > start && li.content[end-1] == '\r' {
		end--
	}
	return string(li.content[start:end])
}
