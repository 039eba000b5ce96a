package app

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

// LoadEnvFiles loads dotenv files of KEY=VALUE lines into the process
// environment. Variables already set in the environment are left alone;
// among the files, later ones override earlier ones. Missing files are
// skipped, blank lines and '#' comments are ignored, and values are not
// expanded.
func LoadEnvFiles(paths ...string) error {
	merged := map[string]string{}
	var order []string
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		err := readEnvFile(p, func(key, val string) {
			if _, seen := merged[key]; !seen {
				order = append(order, key)
			}
			merged[key] = val
		})
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
	}
	for _, key := range order {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, merged[key]); err != nil {
			return err
		}
	}
	return nil
}

func readEnvFile(path string, set func(key, val string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}
		set(key, val)
	}
	return scanner.Err()
}
