package choco

import (
	"strconv"
	"strings"
)

// Package is one line of choco --limit-output.
type Package struct {
	Name      string
	Version   string
	Available string
	Pinned    bool
}

// ParseInstalled parses "name|version" lines. Malformed lines are skipped.
func ParseInstalled(output string) []Package {
	var pkgs []Package
	for _, fields := range splitRecords(output) {
		if len(fields) < 2 {
			continue
		}
		pkgs = append(pkgs, Package{Name: fields[0], Version: fields[1]})
	}
	return pkgs
}

// ParseOutdated parses "name|current|available|pinned" lines.
func ParseOutdated(output string) []Package {
	var pkgs []Package
	for _, fields := range splitRecords(output) {
		if len(fields) < 3 {
			continue
		}
		pkg := Package{Name: fields[0], Version: fields[1], Available: fields[2]}
		if len(fields) > 3 {
			pkg.Pinned, _ = strconv.ParseBool(fields[3])
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs
}

func splitRecords(output string) [][]string {
	var records [][]string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		fields := strings.Split(line, "|")
		if fields[0] == "" {
			continue
		}
		records = append(records, fields)
	}
	return records
}
