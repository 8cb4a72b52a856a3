// Package envfile reads dotenv files into settings snapshots and watches
// them for changes.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"orgair-hq/atlas/pkg/settings"
)

// Parse reads dotenv syntax into a snapshot. Supported forms:
//
//	KEY=value
//	KEY="quoted value"   # with \n, \t, \", \\ escapes
//	KEY='literal value'
//	export KEY=value
//	# comment
//
// Later assignments of the same key win. Blank lines are ignored.
func Parse(data []byte) (settings.Snapshot, error) {
	snap := settings.Snapshot{}

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '=' in %q", lineno, line)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineno)
		}

		value, err := unquote(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		snap[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Load reads and parses a dotenv file.
func Load(path string) (settings.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	snap, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing env file %s: %w", path, err)
	}
	return snap, nil
}

func unquote(value string) (string, error) {
	if len(value) < 2 {
		return stripComment(value), nil
	}

	switch value[0] {
	case '"':
		if value[len(value)-1] != '"' {
			return "", fmt.Errorf("unterminated double quote")
		}
		return expandEscapes(value[1 : len(value)-1])
	case '\'':
		if value[len(value)-1] != '\'' {
			return "", fmt.Errorf("unterminated single quote")
		}
		return value[1 : len(value)-1], nil
	default:
		return stripComment(value), nil
	}
}

// stripComment drops a trailing unquoted comment: KEY=value # note.
func stripComment(value string) string {
	if i := strings.Index(value, " #"); i >= 0 {
		return strings.TrimSpace(value[:i])
	}
	return value
}

func expandEscapes(value string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(value) {
			return "", fmt.Errorf("trailing backslash")
		}
		switch value[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		default:
			return "", fmt.Errorf("unknown escape \\%c", value[i])
		}
	}
	return sb.String(), nil
}
