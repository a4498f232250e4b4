// Package mutate describes the DOM preparation applied to a page before
// it is rendered.
//
// Rules are pure data (selector + action pairs) so the GitBook-specific
// knowledge lives in one reviewable list, can be replaced from the
// configuration file, and is testable without a browser. The browser
// layer only ever sees the compiled script.
package mutate

import (
	"fmt"
	"strconv"
	"strings"

	"gitbookpdf/internal/config"
)

// Action is the kind of DOM mutation a rule performs.
type Action string

// Supported actions.
const (
	// ActionClick clicks every matching element. Used to expand
	// collapsed navigation and content sections so their contents are
	// present in the render.
	ActionClick Action = "click"

	// ActionRemove removes every matching element from the document.
	// Used to strip non-content chrome from the PDF.
	ActionRemove Action = "remove"

	// ActionRewriteFromAttr replaces each matching element's text with
	// the value of one of its attributes. Used to turn relative
	// "2 days ago" timestamps into the absolute value GitBook keeps in
	// the accessibility attribute.
	ActionRewriteFromAttr Action = "rewrite-from-attr"
)

// IsValid returns true if this is a known action.
func (a Action) IsValid() bool {
	switch a {
	case ActionClick, ActionRemove, ActionRewriteFromAttr:
		return true
	default:
		return false
	}
}

// Rule is one selector + action pair.
type Rule struct {
	// Selector is a CSS selector matching the elements to act on.
	Selector string

	// Action is what to do with each matched element.
	Action Action

	// Attr names the attribute to read for ActionRewriteFromAttr.
	// Ignored for other actions.
	Attr string
}

// DefaultRules returns the GitBook preparation set, in execution order:
// expand everything first, then strip chrome, then fix timestamps.
//
// Selectors target GitBook's data-testid hooks, which are stable across
// themes because GitBook's own frontend tests depend on them.
func DefaultRules() []Rule {
	return []Rule{
		// Expand collapsed sidebar sections so nested page links exist
		// in the DOM, and open collapsed content blocks so the render
		// includes them.
		{Selector: `[data-testid="space.sidebar"] button[aria-expanded="false"]`, Action: ActionClick},
		{Selector: `details:not([open]) > summary`, Action: ActionClick},

		// Non-content chrome that would otherwise repeat on every page
		// of the archive.
		{Selector: `[data-testid="space.header"]`, Action: ActionRemove},
		{Selector: `[data-testid="search-button"]`, Action: ActionRemove},
		{Selector: `[data-testid="page.actions"]`, Action: ActionRemove},

		// GitBook renders "Last updated 3 days ago" but keeps the exact
		// timestamp in the aria-label.
		{Selector: `[data-testid="page.lastModified"] time`, Action: ActionRewriteFromAttr, Attr: "aria-label"},
	}
}

// FromConfig converts YAML rule definitions into executable rules.
// Unknown actions are rejected so a typo in the config file fails the
// run instead of silently skipping a mutation.
func FromConfig(configs []config.RuleConfig) ([]Rule, error) {
	rules := make([]Rule, 0, len(configs))
	for i, rc := range configs {
		action := Action(rc.Action)
		if !action.IsValid() {
			return nil, fmt.Errorf("rule %d: unknown action %q", i, rc.Action)
		}
		if rc.Selector == "" {
			return nil, fmt.Errorf("rule %d: empty selector", i)
		}
		if action == ActionRewriteFromAttr && rc.Attr == "" {
			return nil, fmt.Errorf("rule %d: rewrite-from-attr requires attr", i)
		}
		rules = append(rules, Rule{Selector: rc.Selector, Action: action, Attr: rc.Attr})
	}
	return rules, nil
}

// ClickRules returns only the click rules from the given set.
// The discoverer runs these alone: it needs the navigation expanded but
// must not strip chrome, since the sidebar it is about to read is chrome.
func ClickRules(rules []Rule) []Rule {
	clicks := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Action == ActionClick {
			clicks = append(clicks, r)
		}
	}
	return clicks
}

// Script compiles rules into a single JavaScript snippet to evaluate in
// the page. Selector and attribute strings are embedded with strconv.Quote
// so no selector content can escape its string literal.
func Script(rules []Rule) string {
	var b strings.Builder
	b.WriteString("(() => {\n")
	for _, r := range rules {
		selector := strconv.Quote(r.Selector)
		switch r.Action {
		case ActionClick:
			fmt.Fprintf(&b, "document.querySelectorAll(%s).forEach((el) => el.click());\n", selector)
		case ActionRemove:
			fmt.Fprintf(&b, "document.querySelectorAll(%s).forEach((el) => el.remove());\n", selector)
		case ActionRewriteFromAttr:
			fmt.Fprintf(&b,
				"document.querySelectorAll(%s).forEach((el) => { const v = el.getAttribute(%s); if (v) { el.textContent = v; } });\n",
				selector, strconv.Quote(r.Attr))
		}
	}
	b.WriteString("})();")
	return b.String()
}
