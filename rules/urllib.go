package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/termfx/sixer/grammar"
)

// sixMovesURLLib maps each six.moves.urllib submodule to the symbols the
// old urllib, urllib2 and urlparse modules exposed for it.
var sixMovesURLLib = map[string][]string{
	"error": {
		"HTTPError",
		"URLError",
	},
	"request": {
		"HTTPBasicAuthHandler",
		"HTTPCookieProcessor",
		"HTTPPasswordMgrWithDefaultRealm",
		"HTTPSHandler",
		"ProxyHandler",
		"Request",
		"build_opener",
		"install_opener",
		"pathname2url",
		"urlopen",
	},
	"parse": {
		"parse_qs",
		"parse_qsl",
		"quote",
		"quote_plus",
		"unquote",
		"urlencode",
		"urljoin",
		"urlparse",
		"urlsplit",
		"urlunparse",
		"urlunsplit",
	},
}

// UnknownSymbolError is returned when a urllib-family attribute or from
// import names a symbol with no known six.moves.urllib home. Guessing a
// submodule would produce code that imports the wrong thing, so the file
// is rejected instead.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown urllib symbol: %s", e.Symbol)
}

// urllibRule migrates urllib, urllib2 and urlparse usage to
// six.moves.urllib. Attribute references are re-homed per symbol through
// the submodule table; from imports are regrouped into one import line per
// submodule. parse_http_list has no six home and passes through untouched,
// surfacing as a warning.
type urllibRule struct {
	symbolHomes map[string]string
	unchanged   map[string]struct{}

	importRe       *regexp.Regexp
	modAttrRe      *regexp.Regexp
	attrRe         *regexp.Regexp
	urllib2Re      *regexp.Regexp
	fromImportRe   *regexp.Regexp
	fromImportWarn *regexp.Regexp
}

func newURLLibRule() Rule {
	homes := make(map[string]string)
	unchanged := make(map[string]struct{}, len(sixMovesURLLib))
	for submodule, symbols := range sixMovesURLLib {
		unchanged["urllib."+submodule] = struct{}{}
		for _, symbol := range symbols {
			homes[symbol] = submodule
		}
	}
	ident := grammar.Identifier
	return &urllibRule{
		symbolHomes: homes,
		unchanged:   unchanged,

		importRe:  regexp.MustCompile(`(?m)^import (?:urllib2?|urlparse)\n\n?`),
		modAttrRe: regexp.MustCompile(`\burllib2\.(?:urllib|urlparse)\.(` + ident + `)`),
		attrRe:    regexp.MustCompile(`\b(?:urllib2?|urlparse)\.(` + ident + `)`),
		// The one symbol six cannot host keeps its urllib2 qualifier.
		urllib2Re: regexp.MustCompile(`\burllib2\b(\.parse_http_list)?`),
		fromImportRe: regexp.MustCompile(
			`(?m)^from (urllib2?|urlparse) import (` + grammar.ImportSymbols + `)\n\n?`),
		fromImportWarn: regexp.MustCompile(`^from (?:urllib2?|urlparse) import`),
	}
}

func (r *urllibRule) Name() string { return "urllib" }

func (r *urllibRule) Doc() string {
	return "replace urllib, urllib2 and urlparse with six.moves.urllib"
}

func (r *urllibRule) Patch(content string, ctx *Context) (string, error) {
	content, err := r.patchImport(content, ctx)
	if err != nil {
		return "", err
	}
	addImports := make(map[string]struct{})
	content, err = r.patchFromImport(content, addImports)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(addImports))
	for line := range addImports {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	for _, line := range lines {
		content, err = ctx.Planner.Add(content, line)
		if err != nil {
			return "", err
		}
	}
	return content, nil
}

// rehome maps one attribute reference to its six.moves.urllib form. A
// reference already spelled urllib.<submodule> is final; parse_http_list
// stays put.
func (r *urllibRule) rehome(whole, symbol string) (string, error) {
	if _, ok := r.unchanged[whole]; ok {
		return whole, nil
	}
	if symbol == "parse_http_list" {
		return whole, nil
	}
	submodule, ok := r.symbolHomes[symbol]
	if !ok {
		return "", &UnknownSymbolError{Symbol: whole}
	}
	return "urllib." + submodule + "." + symbol, nil
}

func (r *urllibRule) patchImport(content string, ctx *Context) (string, error) {
	patched := removeImportMatches(r.importRe, content)
	if patched == content {
		return content, nil
	}

	var firstErr error
	rehomeAll := func(re *regexp.Regexp, src string) string {
		return grammar.ReplaceAllSubmatchFunc(re, src, func(g []string) string {
			out, err := r.rehome(g[0], g[1])
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return g[0]
			}
			return out
		})
	}
	// Attribute references inside comment text are not code and must not
	// reject the file, so the rehome passes see only the code portion of
	// each line. Doubly qualified urllib2.urllib.x and urllib2.urlparse.x
	// go first, so the plain attribute pass sees only single qualifiers.
	patched = mapLines(patched, func(line string) string {
		code, comment := line, ""
		if pos := strings.Index(line, "#"); pos >= 0 {
			code, comment = line[:pos], line[pos:]
		}
		code = rehomeAll(r.modAttrRe, code)
		code = rehomeAll(r.attrRe, code)
		return code + comment
	})
	if firstErr != nil {
		return "", firstErr
	}
	patched = grammar.ReplaceAllSubmatchFunc(r.urllib2Re, patched, func(g []string) string {
		if g[1] != "" {
			return g[0]
		}
		return "urllib"
	})
	return ctx.Planner.Add(patched, "from six.moves import urllib")
}

func (r *urllibRule) patchFromImport(content string, addImports map[string]struct{}) (string, error) {
	matches := r.fromImportRe.FindAllStringSubmatchIndex(content, -1)
	var spans [][2]int
	for _, m := range matches {
		module := content[m[2]:m[3]]
		symbols := content[m[4]:m[5]]
		if strings.Contains(symbols, "parse_http_list") {
			continue
		}
		grouped := make(map[string][]string)
		var submodules []string
		for _, symbol := range strings.Split(symbols, ",") {
			name := strings.TrimSpace(symbol)
			submodule, ok := r.symbolHomes[name]
			if !ok {
				return "", &UnknownSymbolError{Symbol: module + "." + name}
			}
			if _, seen := grouped[submodule]; !seen {
				submodules = append(submodules, submodule)
			}
			grouped[submodule] = append(grouped[submodule], name)
		}
		for _, submodule := range submodules {
			line := fmt.Sprintf("from six.moves.urllib.%s import %s",
				submodule, strings.Join(grouped[submodule], ", "))
			addImports[line] = struct{}{}
		}
		spans = append(spans, [2]int{m[0], m[1]})
	}
	if len(spans) == 0 {
		return content, nil
	}
	return removeImportSpans(content, spans), nil
}

func (r *urllibRule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if strings.Contains(line, "urllib2.parse_http_list") {
			warn(line)
		} else if r.fromImportWarn.MatchString(line) {
			warn(line)
		}
	})
}
