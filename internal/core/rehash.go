package core

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// NeedsRehash reports whether rec was produced with parameters other than cfg.
// Callers should re-hash the secret after the next successful Matches.
func NeedsRehash(rec *Record, cfg Config) bool {
	return rec.Config() != cfg
}

// DiffParams renders a line diff between the stored parameters of rec
// ("-" lines) and cfg ("+" lines). Unchanged lines are indented by two
// spaces. The result is empty when nothing differs.
func DiffParams(rec *Record, cfg Config) string {
	stored := paramLines(rec.Config())
	wanted := paramLines(cfg)
	if stored == wanted {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(stored, wanted)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String()
}

func paramLines(c Config) string {
	return fmt.Sprintf("strategy: %s\nalgorithm: %s\niterations: %d\nkeyLength: %d\n",
		c.Strategy, c.Algorithm, c.Iterations, c.KeyLength)
}
