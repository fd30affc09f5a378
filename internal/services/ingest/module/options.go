package module

import (
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/config"
)

// Options controls the ingest worker
type Options struct {
	Rollup bool
	Source string
}

// FromConfig reads with CORE_INGEST_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_INGEST_")
	return Options{
		Rollup: c.MayBool("ROLLUP", false),
		Source: c.MayString("SOURCE", "csv"),
	}
}
