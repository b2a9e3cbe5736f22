package util

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

// ExpandPath resolves a leading "~" to the home directory of the current user
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return path, err
	}
	return filepath.Join(currentUser.HomeDir, path[1:]), nil
}

func readTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if len(text) <= 0 {
		return "", fmt.Errorf("file is empty: %s", path)
	}
	return text, nil
}

func ReadIntFromFile(path string) (value int, err error) {
	text, err := readTrimmed(path)
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(text)
}

func ReadFloatFromFile(path string) (value float64, err error) {
	text, err := readTrimmed(path)
	if err != nil {
		return -1, err
	}
	return strconv.ParseFloat(text, 64)
}

func resolvePath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// WriteStringToFileAtomic replaces the content of the file at path,
// readers never observe a partially written file.
func WriteStringToFileAtomic(value string, path string) error {
	evaluatedPath, err := resolvePath(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	return atomic.WriteFile(path, strings.NewReader(value))
}
