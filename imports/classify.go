package imports

// Classification is the semantic bucket an import group belongs to.
type Classification int

const (
	Unknown Classification = iota
	Future
	Stdlib
	ThirdParty
	Application
)

// String returns the lower-case bucket name.
func (c Classification) String() string {
	switch c {
	case Future:
		return "future"
	case Stdlib:
		return "stdlib"
	case ThirdParty:
		return "third-party"
	case Application:
		return "application"
	default:
		return "unknown"
	}
}

// defaultStdlibModules is the baseline set of standard-library module names
// matched exactly. Deliberately short: it only needs to cover the modules
// commonly found at the top of the files this tool targets.
var defaultStdlibModules = []string{
	"StringIO",
	"copy",
	"csv",
	"datetime",
	"glob",
	"heapq",
	"importlib",
	"itertools",
	"json",
	"logging",
	"os",
	"re",
	"socket",
	"string",
	"sys",
	"textwrap",
	"traceback",
	"types",
	"unittest",
	"urlparse",
}

// defaultThirdPartyModules is matched exactly. numpy lives here rather
// than in the prefix table so that lookalike names (numpypy) still need
// an explicit hint.
var defaultThirdPartyModules = []string{
	"numpy",
}

// defaultThirdPartyPrefixes is matched by prefix, so one entry covers a
// whole family ("oslo" matches "oslo_config" and "oslo.db").
var defaultThirdPartyPrefixes = []string{
	"django",
	"eventlet",
	"keystoneclient",
	"mock",
	"mox3",
	"oslo",
	"selenium",
	"six",
	"subunit",
	"testtools",
	"webob",
	"wsme",
}

// defaultApplicationModules is the baseline set of application module
// names; callers extend it per run because the tool is reused across
// codebases.
var defaultApplicationModules = []string{
	"ceilometer",
	"cinder",
	"congress",
	"glance",
	"glance_store",
	"horizon",
	"neutron",
	"nova",
	"openstack_dashboard",
	"swift",
}

// Classifier maps import groups to Classifications using static membership
// tables. The zero value is unusable; build one with NewClassifier so the
// defaults are loaded.
type Classifier struct {
	stdlib             map[string]struct{}
	thirdParty         map[string]struct{}
	thirdPartyPrefixes []string
	application        map[string]struct{}
}

// NewClassifier returns a Classifier holding the built-in tables extended
// with the supplied application module names and third-party prefixes.
func NewClassifier(appModules, thirdPartyPrefixes []string) *Classifier {
	c := &Classifier{
		stdlib:      make(map[string]struct{}, len(defaultStdlibModules)),
		thirdParty:  make(map[string]struct{}, len(defaultThirdPartyModules)),
		application: make(map[string]struct{}, len(defaultApplicationModules)+len(appModules)),
	}
	for _, name := range defaultStdlibModules {
		c.stdlib[name] = struct{}{}
	}
	for _, name := range defaultThirdPartyModules {
		c.thirdParty[name] = struct{}{}
	}
	for _, name := range defaultApplicationModules {
		c.application[name] = struct{}{}
	}
	for _, name := range appModules {
		if name != "" {
			c.application[name] = struct{}{}
		}
	}
	c.thirdPartyPrefixes = append(c.thirdPartyPrefixes, defaultThirdPartyPrefixes...)
	for _, prefix := range thirdPartyPrefixes {
		if prefix != "" {
			c.thirdPartyPrefixes = append(c.thirdPartyPrefixes, prefix)
		}
	}
	return c
}

// Classify buckets a group by its member modules. Any-match wins, with
// third-party prefix matches taking priority over application exact
// matches, which take priority over stdlib exact matches. A group whose
// only member is __future__ is Future.
func (c *Classifier) Classify(g Group) Classification {
	if g.only("__future__") {
		return Future
	}
	seenStdlib := false
	seenApp := false
	for name := range g.Modules {
		if c.matchesThirdParty(name) {
			return ThirdParty
		}
		if _, ok := c.application[name]; ok {
			seenApp = true
		}
		if _, ok := c.stdlib[name]; ok {
			seenStdlib = true
		}
	}
	switch {
	case seenApp:
		return Application
	case seenStdlib:
		return Stdlib
	default:
		return Unknown
	}
}

func (c *Classifier) matchesThirdParty(name string) bool {
	if _, ok := c.thirdParty[name]; ok {
		return true
	}
	for _, prefix := range c.thirdPartyPrefixes {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
