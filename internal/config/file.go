package config

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// File is a parsed emergence.conf: section name -> key -> value.
// Keys that appear before any [section] header live under "".
type File map[string]map[string]string

// Get returns the value for section.key.
func (f File) Get(section, key string) (string, bool) {
	if f == nil {
		return "", false
	}
	v, ok := f[section][key]
	return v, ok
}

// Parse reads the line-oriented config format:
//
//	[section]
//	key = value
//	key = "quoted value"
//
// Blank, comment and malformed lines are skipped. Later keys overwrite earlier ones.
func Parse(r io.Reader) (File, error) {
	file := File{}
	section := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "", strings.HasPrefix(line, "#"), strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		if file[section] == nil {
			file[section] = map[string]string{}
		}
		file[section][key] = unquote(strings.TrimSpace(value))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return file, nil
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	return v
}

// ReadFile parses the file at path. A path that cannot be stat'ed (missing
// file or unreadable directory) reports found=false and no error; a file that
// exists but cannot be opened or read returns a *FileError.
func ReadFile(path string) (file File, found bool, err error) {
	if _, err := os.Stat(path); err != nil {
		return nil, false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, true, &FileError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	file, err = Parse(f)
	if err != nil {
		return nil, true, &FileError{Path: path, Cause: err}
	}
	return file, true, nil
}

// LoadFirst parses the first existing file among paths and returns its path.
// No existing file yields an empty File and an empty path.
func LoadFirst(paths []string) (File, string, error) {
	for _, path := range paths {
		file, found, err := ReadFile(path)
		if err != nil {
			return nil, path, err
		}
		if found {
			return file, path, nil
		}
	}
	return File{}, "", nil
}
