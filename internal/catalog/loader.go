package catalog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ThemeData is a theme read from a user file.
type ThemeData struct {
	Name    string
	Symbols []string
	Source  string
}

var (
	separatorRe = regexp.MustCompile(`(?m)^-{3,}[ \t]*$`)
	nameRe      = regexp.MustCompile(`(?i)^name:\s*(.+)$`)
)

// LoadThemeFiles loads themes from a list of paths (files or directories).
//
// A file holds one or more blocks separated by a line of three or more
// dashes. A block may start with a "NAME: <theme>" line; the remaining
// whitespace-separated tokens are its symbols. Blocks without a name are
// named after their file.
func LoadThemeFiles(paths []string) ([]ThemeData, error) {
	var themes []ThemeData

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if !info.IsDir() {
			t, err := loadThemeFile(path)
			if err != nil {
				return nil, err
			}
			themes = append(themes, t...)
			continue
		}

		files, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read dir %s: %w", path, err)
		}
		for _, entry := range files {
			if entry.IsDir() {
				continue
			}
			t, err := loadThemeFile(filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, err
			}
			themes = append(themes, t...)
		}
	}

	return themes, nil
}

func loadThemeFile(path string) ([]ThemeData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	var contentBuilder strings.Builder
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		contentBuilder.WriteString(scanner.Text() + "\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan file %s: %w", path, err)
	}

	var blocks []string
	for _, part := range separatorRe.Split(contentBuilder.String(), -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			blocks = append(blocks, trimmed)
		}
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	themes := make([]ThemeData, 0, len(blocks))
	for i, block := range blocks {
		name, body := splitName(block)
		if name == "" {
			name = stem
			if len(blocks) > 1 {
				name = fmt.Sprintf("%s #%d", stem, i+1)
			}
		}
		themes = append(themes, ThemeData{
			Name:    name,
			Symbols: strings.Fields(body),
			Source:  path,
		})
	}

	return themes, nil
}

func splitName(block string) (name, body string) {
	first, rest, _ := strings.Cut(block, "\n")
	if m := nameRe.FindStringSubmatch(strings.TrimSpace(first)); m != nil {
		return strings.TrimSpace(m[1]), rest
	}
	return "", block
}

// AddThemes registers loaded themes, stopping at the first name clash.
func (c *Catalog) AddThemes(themes []ThemeData) error {
	for _, t := range themes {
		if err := c.AddTheme(t.Name, t.Symbols); err != nil {
			return fmt.Errorf("%s: %w", t.Source, err)
		}
	}
	return nil
}
