package mapping

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/jaeyoung0509/Meld/internal/errlist"
)

// The fallback parser keeps the tool runnable without the TOML library. It
// supports exactly the subset of TOML the project's own mapping files use:
// comments, blank lines, a [coverage] table, repeated [[links]] blocks, and
// key = value lines whose values are JSON scalars/arrays or bare integers.

type section int

const (
	sectionRoot section = iota
	sectionCoverage
	sectionLinks
)

// ParseSubset reads the restricted mapping dialect line by line and returns
// the same root-table shape the TOML parser would produce. Parse problems
// are recorded on errs; the affected value is nil.
func ParseSubset(r io.Reader, errs *errlist.List) map[string]any {
	root := map[string]any{}
	coverage := map[string]any{}
	links := []any{}
	state := sectionRoot
	var current map[string]any

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "[coverage]":
			state = sectionCoverage
			current = nil
			continue
		case "[[links]]":
			state = sectionLinks
			current = map[string]any{}
			links = append(links, current)
			continue
		}

		key, valueRaw, found := strings.Cut(line, "=")
		if !found {
			errs.Addf("links.toml line %d: expected key = value", lineNumber)
			continue
		}
		key = strings.TrimSpace(key)
		value := parseValue(strings.TrimSpace(valueRaw), lineNumber, errs)

		switch state {
		case sectionCoverage:
			coverage[key] = value
		case sectionLinks:
			// [[links]] always opens a record, so this cannot happen
			// structurally; guarded anyway.
			if current == nil {
				errs.Addf("links.toml line %d: key outside [[links]] block", lineNumber)
				continue
			}
			current[key] = value
		default:
			root[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		errs.Addf("links.toml: %v", err)
	}

	root["coverage"] = coverage
	root["links"] = links
	return root
}

// parseValue decodes a right-hand side: JSON first (covers quoted strings,
// arrays of strings, booleans), then a bare non-negative integer.
func parseValue(raw string, lineNumber int, errs *errlist.List) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	if raw != "" && allDigits(raw) {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	}
	errs.Addf("links.toml line %d: unsupported value: %s", lineNumber, raw)
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
