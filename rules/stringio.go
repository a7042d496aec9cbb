package rules

import (
	"regexp"
	"strings"
)

// stringIORule migrates the five spellings of the old StringIO imports to
// their six equivalents. Each spelling is handled as its own sub-patch
// because the replacement import and the attribute rewrite differ per
// form; the sub-patches run in a fixed sequence over the same content.
type stringIORule struct {
	importStringIO     *regexp.Regexp
	fromImportStringIO *regexp.Regexp
	fromImportCString  *regexp.Regexp
	importCString      *regexp.Regexp
	importCStringAs    *regexp.Regexp
	checkAttrRe        *regexp.Regexp
}

func newStringIORule() Rule {
	return &stringIORule{
		importStringIO:     importLineRe("StringIO"),
		fromImportStringIO: fromImportLineRe("StringIO", "StringIO"),
		fromImportCString:  fromImportLineRe("cStringIO", "StringIO"),
		importCString:      importLineRe("cStringIO"),
		importCStringAs:    importLineRe("cStringIO as StringIO"),
		checkAttrRe:        regexp.MustCompile(`(six\.)?\bc?StringIO\.`),
	}
}

func (r *stringIORule) Name() string { return "stringio" }

func (r *stringIORule) Doc() string {
	return "replace StringIO.StringIO with six.StringIO and cStringIO.StringIO with six.moves.cStringIO"
}

func (r *stringIORule) Patch(content string, ctx *Context) (string, error) {
	type subPatch func(string, *Context) (string, error)
	for _, patch := range []subPatch{
		r.patchFromImport,
		r.patchImport,
		r.patchCFromImport,
		r.patchCImport,
		r.patchCImportAs,
	} {
		var err error
		content, err = patch(content, ctx)
		if err != nil {
			return "", err
		}
	}
	return content, nil
}

// 'from StringIO import StringIO' becomes 'from six import StringIO'; call
// sites already use the bare name and need no rewrite.
func (r *stringIORule) patchFromImport(content string, ctx *Context) (string, error) {
	patched := removeImportMatches(r.fromImportStringIO, content)
	if patched == content {
		return content, nil
	}
	return ctx.Planner.Add(patched, "from six import StringIO")
}

// 'import StringIO' plus StringIO.StringIO call sites become 'import six'
// plus six.StringIO.
func (r *stringIORule) patchImport(content string, ctx *Context) (string, error) {
	patched := removeImportMatches(r.importStringIO, content)
	if patched == content {
		return content, nil
	}
	patched, err := ctx.Planner.AddSix(patched)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(patched, "StringIO.StringIO", "six.StringIO"), nil
}

// 'from cStringIO import StringIO' becomes the aliased six.moves import;
// call sites keep the StringIO name.
func (r *stringIORule) patchCFromImport(content string, ctx *Context) (string, error) {
	patched := removeImportMatches(r.fromImportCString, content)
	if patched == content {
		return content, nil
	}
	return ctx.Planner.Add(patched, "from six.moves import cStringIO as StringIO")
}

// 'import cStringIO' plus cStringIO.StringIO call sites become 'from six
// import moves' plus moves.cStringIO.
func (r *stringIORule) patchCImport(content string, ctx *Context) (string, error) {
	patched := removeImportMatches(r.importCString, content)
	if patched == content {
		return content, nil
	}
	patched, err := ctx.Planner.Add(patched, "from six import moves")
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(patched, "cStringIO.StringIO", "moves.cStringIO"), nil
}

// 'import cStringIO as StringIO' plus StringIO.StringIO call sites become
// 'from six import moves' plus moves.cStringIO.
func (r *stringIORule) patchCImportAs(content string, ctx *Context) (string, error) {
	patched := removeImportMatches(r.importCStringAs, content)
	if patched == content {
		return content, nil
	}
	patched, err := ctx.Planner.Add(patched, "from six import moves")
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(patched, "StringIO.StringIO", "moves.cStringIO"), nil
}

func (r *stringIORule) Check(content string, warn func(line string)) {
	eachLine(content, func(line string) {
		if strings.Contains(line, "StringIO.StringIO") {
			warn(line)
			return
		}
		for _, m := range r.checkAttrRe.FindAllStringSubmatch(line, -1) {
			if m[1] == "" {
				warn(line)
				return
			}
		}
	})
}
