package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo tags the connection with process identity so server-side
// query logs can attribute load per role ("api", "detect", "eval")
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()

	add := func(ci *clickhouse.ClientInfo, name, version string) {
		ci.Products = append(ci.Products, struct{ Name, Version string }{
			Name:    name,
			Version: strings.TrimSpace(version),
		})
	}

	var ci clickhouse.ClientInfo
	add(&ci, "deyimci", tag)
	add(&ci, "role", role)
	add(&ci, "go", runtime.Version())
	add(&ci, "commit", vcsShortSHA())
	add(&ci, "host", host)
	return ci
}

func vcsShortSHA() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}
