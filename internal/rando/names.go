package rando

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
)

// RandomSeed builds a random seed string by joining two entries from
// the name list bundled with the randomizer. The file may delimit
// names with newlines or commas.
func (a *Adapter) RandomSeed() (string, error) {
	names, err := loadNames(a.cfg.NamesPath)
	if err != nil {
		return "", err
	}

	return names[rand.IntN(len(names))] + names[rand.IntN(len(names))], nil
}

func loadNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read name list %s: %w", path, err)
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		for _, name := range strings.Split(line, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				names = append(names, name)
			}
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("name list %s contains no names", path)
	}

	return names, nil
}
