package pipeline

import (
	"fmt"
	"os"
	"strings"
)

// FindYearFiles lists the entries of dir whose names start with
// "quotes-<year>-". Subdirectories are skipped and nothing is recursed into.
func FindYearFiles(dir, year string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	prefix := "quotes-" + year + "-"
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
