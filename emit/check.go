package emit

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/glenum/errors"
)

// CheckResult holds the result of comparing generated output with disk.
type CheckResult struct {
	UpToDate bool
	// Differences maps file name to a reason ("missing", "differs", or a read error)
	Differences map[string]string
}

// Stale returns the differing file names, sorted.
func (r *CheckResult) Stale() []string {
	names := make([]string, 0, len(r.Differences))
	for name := range r.Differences {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compare checks freshly rendered files (name -> content) against dir.
// Lines carrying MetadataPrefix are ignored.
func Compare(dir string, rendered map[string]string) (*CheckResult, error) {
	if dir == "" {
		return nil, errors.New("output directory required for comparison")
	}
	differences := make(map[string]string)

	for name, want := range rendered {
		existing, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			differences[name] = "missing"
			continue
		}
		if err != nil {
			differences[name] = "error: " + err.Error()
			continue
		}
		if filterMetadataLines([]byte(want)) != filterMetadataLines(existing) {
			differences[name] = "differs"
		}
	}

	return &CheckResult{
		UpToDate:    len(differences) == 0,
		Differences: differences,
	}, nil
}

// filterMetadataLines removes the generator banner line from content.
// Returns empty string if scanner encounters an error.
func filterMetadataLines(content []byte) string {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, MetadataPrefix) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return ""
	}
	return result.String()
}
