package assembler

import (
	"regexp"
	"strings"

	"github.com/Urethramancer/kue2/isa"
)

var (
	reLabel   = regexp.MustCompile(`^([A-Z]+):$`)
	reMAL     = regexp.MustCompile(`^([A-Z]{2,3}) (ACC|IX) (\S+)$`)
	reBranch  = regexp.MustCompile(`^B([A-Z]{1,2}) (\S+)$`)
	reShift   = regexp.MustCompile(`^[SR](RA|LA|RL|LL) (\S+)$`)
	reControl = regexp.MustCompile(`^([A-Z]{2,3})$`)
)

// statement is one recognised source line.
type statement struct {
	kind     Kind
	label    string
	mnemonic string
	operands []string
}

type lineMatcher struct {
	kind Kind
	re   *regexp.Regexp
	// accept checks the captured mnemonic or condition against the tables.
	accept func(m []string) bool
}

// lineMatchers are tried in this order. A shape match whose mnemonic is not
// in the table falls through to the next matcher.
var lineMatchers = []lineMatcher{
	{KindMAL, reMAL, func(m []string) bool { return isa.IsMAL(m[1]) }},
	{KindBranch, reBranch, func(m []string) bool {
		_, ok := isa.BranchCondition(m[1])
		return ok
	}},
	{KindShift, reShift, func([]string) bool { return true }},
	{KindControl, reControl, func(m []string) bool { return isa.IsControl(m[1]) }},
}

// cleanLine strips a trailing comment and collapses whitespace.
func cleanLine(line string) string {
	if i := strings.IndexByte(line, ';'); i != -1 {
		line = line[:i]
	}
	return strings.Join(strings.Fields(line), " ")
}

// recognize classifies a cleaned line as a label declaration or an instruction.
func recognize(line string) (statement, error) {
	if m := reLabel.FindStringSubmatch(line); m != nil {
		return statement{label: m[1]}, nil
	}

	for _, lm := range lineMatchers {
		m := lm.re.FindStringSubmatch(line)
		if m == nil || !lm.accept(m) {
			continue
		}
		fields := strings.Split(line, " ")
		return statement{
			kind:     lm.kind,
			mnemonic: fields[0],
			operands: fields[1:],
		}, nil
	}
	return statement{}, ErrUnknownInstruction
}
