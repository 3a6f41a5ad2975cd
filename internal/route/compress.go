package route

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxSteps caps the count of a single compressed segment.
const MaxSteps = 20

// Separator joins route segments.
const Separator = ";"

// ErrMalformedRoute is returned by Expand for strings outside the route grammar.
var ErrMalformedRoute = errors.New("malformed route")

// run is a token repeated count times. A literal run is an opaque command
// (e.g. a transport command) that is never merged or counted.
type run struct {
	token   string
	count   int
	literal bool
}

// Compress run-length encodes a token sequence.
//
//	[e e e]   -> "3 e"
//	[n]       -> "n"
//	[w x 21]  -> "20 w;w"
func Compress(tokens []string) string {
	runs := make([]run, 0, len(tokens))
	for _, t := range tokens {
		runs = appendRun(runs, run{token: t, count: 1})
	}
	return render(runs)
}

// CompressRoute re-compresses an already rendered route string. Adjacent
// segments of the same direction are merged, so a route that is already
// compressed comes back unchanged. Segments that are not "[count ]token" are
// kept verbatim and break runs.
func CompressRoute(route string) string {
	var runs []run
	for _, seg := range strings.Split(route, Separator) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if r, ok := parseSegment(seg); ok {
			runs = appendRun(runs, r)
			continue
		}
		runs = append(runs, run{token: seg, literal: true})
	}
	return render(runs)
}

// Expand turns a compressed direction string back into one token per step.
// Counts must lie in [2, MaxSteps]; transport commands are not accepted.
func Expand(route string) ([]string, error) {
	if strings.TrimSpace(route) == "" {
		return nil, nil
	}
	var tokens []string
	for i, seg := range strings.Split(route, Separator) {
		seg = strings.TrimSpace(seg)
		r, ok := parseSegment(seg)
		if !ok {
			return nil, fmt.Errorf("%w: segment %d %q", ErrMalformedRoute, i, seg)
		}
		if r.count > MaxSteps || (r.count == 1 && seg != r.token) {
			return nil, fmt.Errorf("%w: segment %d %q count out of range", ErrMalformedRoute, i, seg)
		}
		for n := 0; n < r.count; n++ {
			tokens = append(tokens, r.token)
		}
	}
	return tokens, nil
}

// JoinSegments joins non-empty route parts with the separator.
func JoinSegments(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, Separator)
}

// parseSegment reads "<count> <token>" or "<token>".
func parseSegment(seg string) (run, bool) {
	fields := strings.Fields(seg)
	switch len(fields) {
	case 1:
		if IsToken(fields[0]) {
			return run{token: fields[0], count: 1}, true
		}
	case 2:
		n, err := strconv.Atoi(fields[0])
		if err == nil && n > 0 && IsToken(fields[1]) {
			return run{token: fields[1], count: n}, true
		}
	}
	return run{}, false
}

func appendRun(runs []run, r run) []run {
	if n := len(runs); n > 0 && !r.literal && !runs[n-1].literal && runs[n-1].token == r.token {
		runs[n-1].count += r.count
		return runs
	}
	return append(runs, r)
}

func render(runs []run) string {
	segments := make([]string, 0, len(runs))
	for _, r := range runs {
		if r.literal {
			segments = append(segments, r.token)
			continue
		}
		count := r.count
		for count > MaxSteps {
			segments = append(segments, strconv.Itoa(MaxSteps)+" "+r.token)
			count -= MaxSteps
		}
		if count > 1 {
			segments = append(segments, strconv.Itoa(count)+" "+r.token)
		} else if count == 1 {
			segments = append(segments, r.token)
		}
	}
	return strings.Join(segments, Separator)
}
