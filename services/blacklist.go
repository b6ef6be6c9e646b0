package services

import (
	"bufio"
	"os"
	"strings"
)

// LoadBlackList reads one banned password per line into a lookup set. Blank
// lines and surrounding whitespace are ignored.
func LoadBlackList(filePath string) (map[string]bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	entries := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries[line] = true
	}

	return entries, scanner.Err()
}
