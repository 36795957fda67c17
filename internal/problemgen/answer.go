package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseChoice interprets typed input against a puzzle's options. Input may
// be an option number (1-4), an option letter (a-d) or the value itself.
// It returns the chosen value.
func ParseChoice(input string, p *Puzzle) (int, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, fmt.Errorf("empty answer")
	}

	if len(s) == 1 && s[0] >= 'a' && s[0] < 'a'+OptionCount {
		return p.Options[s[0]-'a'], nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a number or option: %q", input)
	}

	// An option value wins over an index when both could apply, so typing
	// "3" on a puzzle offering 3 picks the value 3.
	if p.IndexOf(n) >= 0 {
		return n, nil
	}
	if n >= 1 && n <= OptionCount {
		return p.Options[n-1], nil
	}
	return 0, fmt.Errorf("%d is not one of the options", n)
}
