// Package classifier maps free-text arithmetic problems to an operation and
// its operands.
//
// Direct symbolic or imperative forms ("25 + 17", "divide 20 by 4") are tried
// first, in a fixed order. Word problems fall back to keyword inference over
// the numbers found in the text.
package classifier

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// directPattern captures exactly two operands for one operation
type directPattern struct {
	op models.Operation
	re *regexp.Regexp
}

// directPatterns are tried in order; the first match wins
var directPatterns = []directPattern{
	{models.OpAddition, regexp.MustCompile(`(\d+)\s*\+\s*(\d+)`)},
	{models.OpAddition, regexp.MustCompile(`(\d+)\s*plus\s*(\d+)`)},
	{models.OpAddition, regexp.MustCompile(`add\s*(\d+)\s*and\s*(\d+)`)},
	{models.OpAddition, regexp.MustCompile(`sum\s*of\s*(\d+)\s*and\s*(\d+)`)},

	{models.OpSubtraction, regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)},
	{models.OpSubtraction, regexp.MustCompile(`(\d+)\s*minus\s*(\d+)`)},
	{models.OpSubtraction, regexp.MustCompile(`subtract\s*(\d+)\s*from\s*(\d+)`)},
	{models.OpSubtraction, regexp.MustCompile(`(\d+)\s*take\s*away\s*(\d+)`)},

	{models.OpMultiplication, regexp.MustCompile(`(\d+)\s*[×*x]\s*(\d+)`)},
	{models.OpMultiplication, regexp.MustCompile(`(\d+)\s*times\s*(\d+)`)},
	{models.OpMultiplication, regexp.MustCompile(`multiply\s*(\d+)\s*by\s*(\d+)`)},

	{models.OpDivision, regexp.MustCompile(`(\d+)\s*[÷/]\s*(\d+)`)},
	{models.OpDivision, regexp.MustCompile(`(\d+)\s*divided\s*by\s*(\d+)`)},
	{models.OpDivision, regexp.MustCompile(`divide\s*(\d+)\s*by\s*(\d+)`)},
}

// wordKeywords drive word-problem inference, in table order
var wordKeywords = []struct {
	op       models.Operation
	keywords []string
}{
	{models.OpAddition, []string{"total", "sum", "altogether", "combined", "both", "plus"}},
	{models.OpSubtraction, []string{"left", "remaining", "difference", "less", "fewer", "take away", "gave away"}},
	{models.OpMultiplication, []string{"groups of", "rows of", "times", "each"}},
	{models.OpDivision, []string{"share", "split", "divide", "groups", "each group"}},
}

var numberPattern = regexp.MustCompile(`\b\d+\b`)

// Classify returns the operation a problem asks for and the operands it
// applies to. It never fails: when nothing matches the operation is
// OpUnknown and the numbers are whatever survived extraction.
func Classify(text string, role models.Role) (models.Operation, []int) {
	text = strings.ToLower(strings.TrimSpace(text))

	// Teachers may write explicit expressions with any operand size; the
	// bound only filters numbers pulled out of word problems.
	limit := role.MaxOperand()
	if role == models.RoleTeacher {
		limit = math.MaxInt
	}

	for _, p := range directPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		a, okA := parseBounded(m[1], limit)
		b, okB := parseBounded(m[2], limit)
		if !okA || !okB {
			continue
		}

		// "subtract 5 from 12" means 12 - 5. The trigger is the word
		// "from" anywhere in the text, not only inside the match.
		if p.op == models.OpSubtraction && strings.Contains(text, "from") {
			return p.op, []int{b, a}
		}
		return p.op, []int{a, b}
	}

	numbers := ExtractNumbers(text, role)
	if len(numbers) < 2 {
		return models.OpUnknown, numbers
	}

	return inferFromKeywords(text, numbers)
}

// ExtractNumbers returns every integer in text, in text order, dropping
// those above the role's bound.
func ExtractNumbers(text string, role models.Role) []int {
	limit := role.MaxOperand()
	matches := numberPattern.FindAllString(text, -1)

	numbers := make([]int, 0, len(matches))
	for _, s := range matches {
		if n, ok := parseBounded(s, limit); ok {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// inferFromKeywords picks the first operation whose keyword appears in text
func inferFromKeywords(text string, numbers []int) (models.Operation, []int) {
	for _, entry := range wordKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.op, []int{numbers[0], numbers[1]}
			}
		}
	}
	return models.OpUnknown, numbers
}

// parseBounded parses a digit run, rejecting values above limit.
// Runs too long for an int are rejected as well.
func parseBounded(s string, limit int) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n > limit {
		return 0, false
	}
	return n, true
}
