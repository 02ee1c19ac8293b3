package redis

import "strings"

func splitNodes(nodes string) []string {
	parts := strings.Split(nodes, ";")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			hosts = append(hosts, trimmed)
		}
	}
	return hosts
}
