package categorizer

import (
	"regexp"
	"strings"
	"sync"
)

// Matcher decides whether a rule keyword matches memo text. Matching is
// always case-insensitive.
type Matcher interface {
	Match(memo, keyword string) bool

	// Name returns the name of this matcher for logging.
	Name() string
}

// SubstringMatcher matches when the keyword occurs anywhere in the memo.
type SubstringMatcher struct{}

func (SubstringMatcher) Name() string { return "Substring" }

func (SubstringMatcher) Match(memo, keyword string) bool {
	return strings.Contains(strings.ToUpper(memo), strings.ToUpper(keyword))
}

// RegexMatcher treats keywords as regular expressions. A keyword that does
// not compile is matched as a plain substring instead.
type RegexMatcher struct {
	mu       sync.Mutex
	compiled map[string]*regexp.Regexp
	invalid  map[string]bool
}

// NewRegexMatcher returns a RegexMatcher with an empty pattern cache.
func NewRegexMatcher() *RegexMatcher {
	return &RegexMatcher{
		compiled: make(map[string]*regexp.Regexp),
		invalid:  make(map[string]bool),
	}
}

func (m *RegexMatcher) Name() string { return "Regex" }

func (m *RegexMatcher) Match(memo, keyword string) bool {
	re := m.pattern(keyword)
	if re == nil {
		return SubstringMatcher{}.Match(memo, keyword)
	}
	return re.MatchString(memo)
}

func (m *RegexMatcher) pattern(keyword string) *regexp.Regexp {
	m.mu.Lock()
	defer m.mu.Unlock()

	if re, ok := m.compiled[keyword]; ok {
		return re
	}
	if m.invalid[keyword] {
		return nil
	}
	re, err := regexp.Compile("(?i)" + keyword)
	if err != nil {
		m.invalid[keyword] = true
		return nil
	}
	m.compiled[keyword] = re
	return re
}

// NewMatcher returns a RegexMatcher when regex is true, otherwise a
// SubstringMatcher.
func NewMatcher(regex bool) Matcher {
	if regex {
		return NewRegexMatcher()
	}
	return SubstringMatcher{}
}
