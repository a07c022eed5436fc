package fun

import (
	_ "embed"
	"strings"
)

var (
	//go:embed data/ds1templates.txt
	ds1TemplatesRaw string
	//go:embed data/ds1fillers.txt
	ds1FillersRaw string
	//go:embed data/ds3templates.txt
	ds3TemplatesRaw string
	//go:embed data/ds3fillers.txt
	ds3FillersRaw string
	//go:embed data/ds3conjunctions.txt
	ds3ConjunctionsRaw string
)

var (
	DS1Templates    = splitLines(ds1TemplatesRaw)
	DS1Fillers      = splitLines(ds1FillersRaw)
	DS3Templates    = splitLines(ds3TemplatesRaw)
	DS3Fillers      = splitLines(ds3FillersRaw)
	DS3Conjunctions = splitLines(ds3ConjunctionsRaw)
)

// Source picks random indexes. *rand.Rand satisfies it, as does a wrapper
// around the global math/rand functions.
type Source interface {
	Intn(n int) int
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func pick(r Source, list []string) string {
	return list[r.Intn(len(list))]
}

func fill(template, filler string) string {
	return strings.ReplaceAll(template, "{}", filler)
}

// DarkSouls generates a Dark Souls style message.
func DarkSouls(r Source) string {
	return fill(pick(r, DS1Templates), pick(r, DS1Fillers))
}

// DarkSouls3 generates a Dark Souls 3 style message. Half of the time two
// phrases are joined with a conjunction.
func DarkSouls3(r Source) string {
	first := fill(pick(r, DS3Templates), pick(r, DS3Fillers))
	if r.Intn(2) == 0 {
		return first
	}

	second := fill(pick(r, DS3Templates), pick(r, DS3Fillers))
	conjunction := pick(r, DS3Conjunctions)
	if conjunction == "," {
		return first + ", " + second
	}
	return first + " " + conjunction + " " + second
}
