package strategy

import (
	"regexp"
	"strings"

	"github.com/lithium-reducer/lithium/internal/atom"
	"github.com/lithium-reducer/lithium/internal/engine"
	"github.com/lithium-reducer/lithium/internal/logging"
)

func init() {
	Register(&Info{Name: "replace-arguments-by-globals", Run: runReplaceArguments})
}

var (
	namedFuncDefRe = regexp.MustCompile(`(?:function\s+(\w+)|(\w+)\s*=\s*function)\s*\(\s*(\w+(?:\s*,\s*\w+)*)\s*\)`)
	callRe         = regexp.MustCompile(`(\w+)\(((?:[^()]|\([^()]*\))*)\)`)
	iifeDefRe      = regexp.MustCompile(`\(function\s*\w*\s*\(([^()]*)\)\s*\{`)
	iifeCallRe     = regexp.MustCompile(`\}\s*\)\s*\(((?:[^()]|\([^()]*\))*)\)`)
)

type funcDef struct {
	params   []string
	rawParam string
	chunk    int
}

type funcCall struct {
	chunk int
	args  []string
	match string
}

type iife struct {
	params   []string
	defChunk int
	args     []string
	useChunk int
}

// runReplaceArguments implements §4.5.5: function-argument-to-global
// rewriting in three phases, repeating the whole pass while it makes
// progress and the driver's repeat mode allows it.
func runReplaceArguments(e *engine.Engine, cfg engine.Config) error {
	for {
		progressed, err := replaceArgumentsRound(e)
		if err != nil {
			return err
		}
		if !progressed || cfg.Repeat == engine.RepeatNever {
			return nil
		}
	}
}

func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func scanArguments(parts []atom.Atom) (map[string]*funcDef, map[string][]*funcCall, []*iife) {
	defs := map[string]*funcDef{}
	calls := map[string][]*funcCall{}
	var stack []*iife
	var queue []*iife

	for i, a := range parts {
		line := string(a)

		for _, m := range namedFuncDefRe.FindAllStringSubmatch(line, -1) {
			name := m[1]
			if name == "" {
				name = m[2]
			}
			defs[name] = &funcDef{params: splitArgs(m[3]), rawParam: m[3], chunk: i}
		}

		for _, m := range iifeDefRe.FindAllStringSubmatch(line, -1) {
			stack = append(stack, &iife{params: splitArgs(m[1]), defChunk: i})
		}

		for _, m := range iifeCallRe.FindAllStringSubmatch(line, -1) {
			if len(stack) == 0 {
				continue
			}
			anon := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			args := splitArgs(m[1])
			if len(args) == 0 && len(anon.params) == 0 {
				continue
			}
			anon.args = args
			anon.useChunk = i
			queue = append(queue, anon)
		}

		for _, m := range callRe.FindAllStringSubmatch(line, -1) {
			name := m[1]
			calls[name] = append(calls[name], &funcCall{chunk: i, args: splitArgs(m[2]), match: m[0]})
		}
	}
	return defs, calls, queue
}

func sameArgs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func rewriteDefParams(parts []atom.Atom, def *funcDef) {
	old := string(parts[def.chunk])
	parts[def.chunk] = atom.Atom(strings.Replace(old, def.rawParam, "", 1))
}

func prependAssignments(parts []atom.Atom, chunk int, params, values []string) {
	for len(values) < len(params) {
		values = append(values, "undefined")
	}
	var b strings.Builder
	for i, p := range params {
		b.WriteString(p)
		b.WriteString(" = ")
		b.WriteString(values[i])
		b.WriteString(";\n")
	}
	b.WriteString(string(parts[chunk]))
	parts[chunk] = atom.Atom(b.String())
}

// rewriteIIFE applies phase 3's three textual substitutions in place
// and reports how many of them were no-ops, so the caller can skip
// probing a candidate that changed nothing.
func rewriteIIFE(parts []atom.Atom, anon *iife) int {
	noops := 0

	defLine := string(parts[anon.defChunk])
	joinedParams := strings.Join(anon.params, ",")
	newDef := strings.Replace(defLine, joinedParams, "", 1)
	if newDef == defLine {
		noops++
	}
	parts[anon.defChunk] = atom.Atom(newDef)

	values := append([]string{}, anon.args...)
	for len(values) < len(anon.params) {
		values = append(values, "undefined")
	}
	var setters strings.Builder
	for i, p := range anon.params {
		setters.WriteString("var ")
		setters.WriteString(p)
		setters.WriteString(" = ")
		setters.WriteString(values[i])
		setters.WriteString(";\n")
	}
	if setters.Len() == 0 {
		noops++
	} else {
		parts[anon.defChunk] = atom.Atom(string(parts[anon.defChunk]) + "\n" + setters.String())
	}

	callLine := string(parts[anon.useChunk])
	joinedArgs := strings.Join(anon.args, ",")
	newCall := strings.Replace(callLine, joinedArgs, "", 1)
	if newCall == callLine {
		noops++
	}
	parts[anon.useChunk] = atom.Atom(newCall)

	return noops
}

func replaceArgumentsRound(e *engine.Engine) (bool, error) {
	defs, calls, iifes := scanArguments(e.Parts())
	progressed := false

	for name, def := range defs {
		uses := calls[name]
		if len(uses) == 0 {
			continue
		}
		candidate := append([]atom.Atom{}, e.Parts()...)
		rewriteDefParams(candidate, def)
		for _, use := range uses {
			if use.chunk == def.chunk && sameArgs(use.args, def.params) {
				continue
			}
			prependAssignments(candidate, use.chunk, def.params, use.args)
		}
		ok, err := e.Probe(candidate)
		if err != nil {
			return progressed, err
		}
		if ok {
			progressed = true
		}
	}

	for name, uses := range calls {
		if _, isDef := defs[name]; !isDef {
			continue
		}
		for _, use := range uses {
			candidate := append([]atom.Atom{}, e.Parts()...)
			old := string(candidate[use.chunk])
			rewritten := strings.Replace(old, use.match, name+"()", 1)
			if rewritten == old {
				continue
			}
			candidate[use.chunk] = atom.Atom(rewritten)
			ok, err := e.Probe(candidate)
			if err != nil {
				return progressed, err
			}
			if ok {
				progressed = true
			}
		}
	}

	for _, anon := range iifes {
		candidate := append([]atom.Atom{}, e.Parts()...)
		if rewriteIIFE(candidate, anon) == 3 {
			continue
		}
		ok, err := e.Probe(candidate)
		if err != nil {
			return progressed, err
		}
		if ok {
			progressed = true
		}
	}

	logging.Debugf("replace-arguments-by-globals: %d defs, %d iifes scanned", len(defs), len(iifes))
	return progressed, nil
}
