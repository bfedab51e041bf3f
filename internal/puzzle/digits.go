package puzzle

import "github.com/gokatarajesh/make-ten/internal/expr"

// digitRuns returns every maximal run of ASCII digits in expression after
// whitespace is stripped the way the lexer strips it, so "1 0" is one run.
// A decimal literal such as "1.5" yields two runs.
func digitRuns(expression string) []string {
	expression = expr.StripSpace(expression)
	var runs []string
	start := -1
	for i := 0; i < len(expression); i++ {
		c := expression[i]
		if c >= '0' && c <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, expression[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, expression[start:])
	}
	return runs
}

// ValidateDigitUsage reports whether the numbers written in expression form a
// sub-multiset of allowed. Each allowed digit can be consumed once. A run of more
// than one digit (for example "12" or "07") never matches a single puzzle digit and
// fails the check.
func ValidateDigitUsage(expression string, allowed []int) bool {
	_, ok := consumeDigits(expression, allowed)
	return ok
}

// UsesAllDigits reports whether expression uses exactly the multiset allowed.
func UsesAllDigits(expression string, allowed []int) bool {
	used, ok := consumeDigits(expression, allowed)
	return ok && used == len(allowed)
}

func consumeDigits(expression string, allowed []int) (int, bool) {
	remaining := make(map[int]int, len(allowed))
	for _, d := range allowed {
		remaining[d]++
	}

	runs := digitRuns(expression)
	for _, run := range runs {
		if len(run) != 1 {
			return 0, false
		}
		d := int(run[0] - '0')
		if remaining[d] == 0 {
			return 0, false
		}
		remaining[d]--
	}
	return len(runs), true
}
