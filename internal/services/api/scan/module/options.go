package module

import (
	"acdat/internal/platform/config"
	"acdat/internal/services/api/scan/service"
)

// FromConfig extracts the scan service config from ACDAT_* env
func FromConfig(cfg config.Conf) service.Config {
	ac := cfg.Prefix("ACDAT_")
	return service.Config{
		PatternsFile: ac.MayString("PATTERNS_FILE", ""),
		Alphabet:     ac.MayEnum("ALPHABET", "latin", "latin", "ascii"),
		Fallback:     ac.MayEnum("FALLBACK", "chain", "chain", "single-hop"),
		MaxHits:      ac.MayInt("MAX_HITS", 0),
		Overlapping:  ac.MayBool("OVERLAPPING", true),
		KeepSpaces:   ac.MayBool("KEEP_SPACES", false),
	}
}
