package regulator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/projectdiscovery/regulator/internal/induce"
)

// LoadHosts reads observed hostnames from r, one per line, and returns the
// working set: trimmed, lowercased, deduplicated, sorted, with the bare
// target and malformed entries removed. Malformed hosts are logged and
// skipped, never fatal; the filtered list is built as a copy so the scan
// never mutates what it iterates.
func LoadHosts(r io.Reader, target string) ([]string, error) {
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		host := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if host == "" || host == target {
			continue
		}
		seen[host] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read host list: %w", err)
	}

	hosts := make([]string, 0, len(seen))
	for host := range seen {
		if _, err := induce.Tokenize(host, target); err != nil {
			gologger.Warning().Msgf("Rejecting malformed input: %s", host)
			continue
		}
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts, nil
}

// LoadHostsFile reads the observed host corpus from a file.
func LoadHostsFile(path, target string) ([]string, error) {
	if !fileutil.FileExists(path) {
		return nil, fmt.Errorf("hosts file %s does not exist", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hosts file %s: %w", path, err)
	}
	defer f.Close()
	return LoadHosts(f, target)
}
