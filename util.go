package regulator

import (
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DeriveTarget returns the registrable domain shared by hosts and errors
// when the corpus is not homogeneous: the induction passes assume a single
// target domain.
func DeriveTarget(hosts []string) (string, error) {
	var target string
	for _, host := range hosts {
		if strings.TrimSpace(host) == "" {
			continue
		}
		if target == "" {
			root, err := publicsuffix.EffectiveTLDPlusOne(host)
			if err != nil || root == "" {
				return "", fmt.Errorf("failed to derive target domain from %v: %v", host, err)
			}
			target = root
		} else if host != target && !strings.HasSuffix(host, "."+target) {
			return "", fmt.Errorf("host %v does not belong to target %v, only homogeneous corpora are supported", host, target)
		}
	}
	if target == "" {
		return "", fmt.Errorf("no valid hosts found after filtering empty entries")
	}
	return target, nil
}
