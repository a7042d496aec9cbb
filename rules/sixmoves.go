package rules

import (
	"regexp"
	"sort"
	"strings"

	"github.com/termfx/sixer/grammar"
)

// sixModuleMoves maps renamed Python 2 module names to their six.moves
// spelling.
var sixModuleMoves = map[string]string{
	"BaseHTTPServer":     "BaseHTTPServer",
	"ConfigParser":       "configparser",
	"Cookie":             "http_cookies",
	"HTMLParser":         "html_parser",
	"Queue":              "queue",
	"SimpleHTTPServer":   "SimpleHTTPServer",
	"SimpleXMLRPCServer": "xmlrpc_server",
	"__builtin__":        "builtins",
	"cPickle":            "cPickle",
	"cookielib":          "http_cookiejar",
	"htmlentitydefs":     "html_entities",
	"httplib":            "http_client",
	"repr":               "reprlib",
	"xmlrpclib":          "xmlrpc_client",
}

// sixBuiltinMoves maps removed builtins to their six.moves replacement.
var sixBuiltinMoves = map[string]string{
	"reduce": "reduce",
	"reload": "reload_module",
}

// sixMovesRule migrates renamed module imports, the reduce and reload
// builtins, unichr and mock.patch targets to their six.moves spellings.
// Renamed modules are also rewritten at every use site by a whole-word
// replacement, so attribute references follow the import automatically.
type sixMovesRule struct {
	importRe  *regexp.Regexp
	fromRe    *regexp.Regexp
	mockRe    *regexp.Regexp
	builtinRe *regexp.Regexp
	unichrRe  *regexp.Regexp
}

func movesAlternation(moves map[string]string) string {
	names := make([]string, 0, len(moves))
	for name := range moves {
		names = append(names, regexp.QuoteMeta(name))
	}
	sort.Strings(names)
	return "(?:" + strings.Join(names, "|") + ")"
}

func newSixMovesRule() Rule {
	alt := movesAlternation(sixModuleMoves)
	return &sixMovesRule{
		importRe: regexp.MustCompile(`(?m)^import (` + alt + `)( as ` + grammar.Identifier + `)?\n\n?`),
		fromRe:   regexp.MustCompile(`(?m)^from (` + alt + `) import (` + grammar.ImportSymbols + `)\n\n?`),
		mockRe:   regexp.MustCompile(`(patch\(['"])(` + alt + `)\.`),
		// A leading dot means a qualified reference such as moves.reduce,
		// which is already patched.
		builtinRe: regexp.MustCompile(`(?m)(^|[^.\w])(reduce|reload)( *\()`),
		unichrRe:  regexp.MustCompile(`(?m)(^|[^.\w])unichr( *\()`),
	}
}

func (r *sixMovesRule) Name() string { return "six_moves" }

func (r *sixMovesRule) Doc() string {
	return "replace Python 2 imports with six.moves imports"
}

func (r *sixMovesRule) Patch(content string, ctx *Context) (string, error) {
	addImports := make(map[string]struct{})
	type rename struct{ old, new string }
	var renames []rename

	content = grammar.ReplaceAllSubmatchFunc(r.importRe, content, func(g []string) string {
		name, asName := g[1], g[2]
		newName := sixModuleMoves[name]
		addImports["from six.moves import "+newName+asName] = struct{}{}
		renames = append(renames, rename{old: name, new: newName})
		return ""
	})
	content = grammar.ReplaceAllSubmatchFunc(r.fromRe, content, func(g []string) string {
		newName := sixModuleMoves[g[1]]
		addImports["from six.moves."+newName+" import "+g[2]] = struct{}{}
		return ""
	})
	content = r.replaceBuiltins(content, addImports)

	needSix := false
	content = grammar.ReplaceAllSubmatchFunc(r.unichrRe, content, func(g []string) string {
		needSix = true
		return g[1] + "six.unichr" + g[2]
	})

	for _, rn := range renames {
		wordRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(rn.old) + `\b`)
		content = wordRe.ReplaceAllString(content, rn.new)
	}

	lines := make([]string, 0, len(addImports))
	for line := range addImports {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	var err error
	for _, line := range lines {
		content, err = ctx.Planner.Add(content, line)
		if err != nil {
			return "", err
		}
	}
	if needSix {
		content, err = ctx.Planner.AddSix(content)
		if err != nil {
			return "", err
		}
	}

	content = grammar.ReplaceAllSubmatchFunc(r.mockRe, content, func(g []string) string {
		return g[1] + "six.moves." + sixModuleMoves[g[2]] + "."
	})
	return content, nil
}

// replaceBuiltins rewrites bare reduce( and reload( calls. A builtin whose
// six.moves import is already present is assumed to resolve there and is
// skipped rather than re-imported.
func (r *sixMovesRule) replaceBuiltins(content string, addImports map[string]struct{}) string {
	active := make(map[string]string, len(sixBuiltinMoves))
	for name, newName := range sixBuiltinMoves {
		active[name] = newName
	}
	for _, m := range r.builtinRe.FindAllStringSubmatch(content, -1) {
		name := m[2]
		newName, ok := active[name]
		if !ok {
			continue
		}
		if strings.Contains(content, "from six.moves import "+newName+"\n") {
			delete(active, name)
		}
	}
	if len(active) == 0 {
		return content
	}
	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	sort.Strings(names)
	activeRe := regexp.MustCompile(`(?m)(^|[^.\w])(` + strings.Join(names, "|") + `)( *\()`)
	return grammar.ReplaceAllSubmatchFunc(activeRe, content, func(g []string) string {
		newName := active[g[2]]
		addImports["from six.moves import "+newName] = struct{}{}
		return g[1] + newName + g[3]
	})
}

func (r *sixMovesRule) Check(string, func(line string)) {}
