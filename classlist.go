package cssconsolidate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadClassList reads class names one per line. Blank lines and lines
// starting with '#' are skipped, a leading '.' is dropped.
func ReadClassList(r io.Reader) ([]string, error) {
	var names []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name := strings.TrimPrefix(line, ".")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// ReadClassListFile reads a class list from path.
func ReadClassListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class list: %w", err)
	}
	defer f.Close()

	names, err := ReadClassList(f)
	if err != nil {
		return nil, fmt.Errorf("read class list %s: %w", path, err)
	}
	return names, nil
}
