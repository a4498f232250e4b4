package mutate

import (
	"strings"
	"testing"

	"gitbookpdf/internal/config"
)

func TestActionIsValid(t *testing.T) {
	t.Parallel()

	if !ActionClick.IsValid() {
		t.Error("expected click to be valid")
	}
	if !ActionRewriteFromAttr.IsValid() {
		t.Error("expected rewrite-from-attr to be valid")
	}
	if Action("explode").IsValid() {
		t.Error("expected unknown action to be invalid")
	}
}

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	if len(rules) == 0 {
		t.Fatal("expected default rules")
	}

	// Expansion must come before removal: removing the sidebar before
	// clicking its toggles would lose nested links.
	firstRemove := -1
	lastClick := -1
	for i, r := range rules {
		if r.Action == ActionClick {
			lastClick = i
		}
		if r.Action == ActionRemove && firstRemove == -1 {
			firstRemove = i
		}
	}
	if firstRemove != -1 && lastClick > firstRemove {
		t.Error("expected all click rules to precede remove rules")
	}

	for _, r := range rules {
		if !r.Action.IsValid() {
			t.Errorf("rule %q has invalid action %q", r.Selector, r.Action)
		}
		if r.Action == ActionRewriteFromAttr && r.Attr == "" {
			t.Errorf("rewrite rule %q missing attr", r.Selector)
		}
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("valid rules convert", func(t *testing.T) {
		t.Parallel()
		rules, err := FromConfig([]config.RuleConfig{
			{Selector: "header", Action: "remove"},
			{Selector: "time", Action: "rewrite-from-attr", Attr: "title"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rules) != 2 {
			t.Fatalf("expected 2 rules, got %d", len(rules))
		}
		if rules[1].Attr != "title" {
			t.Errorf("expected attr title, got %q", rules[1].Attr)
		}
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := FromConfig([]config.RuleConfig{{Selector: "a", Action: "detonate"}})
		if err == nil {
			t.Error("expected error for unknown action")
		}
	})

	t.Run("empty selector is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := FromConfig([]config.RuleConfig{{Selector: "", Action: "remove"}})
		if err == nil {
			t.Error("expected error for empty selector")
		}
	})

	t.Run("rewrite without attr is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := FromConfig([]config.RuleConfig{{Selector: "time", Action: "rewrite-from-attr"}})
		if err == nil {
			t.Error("expected error for missing attr")
		}
	})
}

func TestClickRules(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{Selector: "summary", Action: ActionClick},
		{Selector: "header", Action: ActionRemove},
		{Selector: "time", Action: ActionRewriteFromAttr, Attr: "aria-label"},
	}

	clicks := ClickRules(rules)
	if len(clicks) != 1 {
		t.Fatalf("expected 1 click rule, got %d", len(clicks))
	}
	if clicks[0].Selector != "summary" {
		t.Errorf("expected summary, got %q", clicks[0].Selector)
	}
}

func TestScript(t *testing.T) {
	t.Parallel()

	t.Run("emits one statement per rule", func(t *testing.T) {
		t.Parallel()
		script := Script([]Rule{
			{Selector: "summary", Action: ActionClick},
			{Selector: "header", Action: ActionRemove},
			{Selector: "time", Action: ActionRewriteFromAttr, Attr: "aria-label"},
		})

		if !strings.HasPrefix(script, "(() => {") || !strings.HasSuffix(script, "})();") {
			t.Errorf("expected IIFE wrapper, got %q", script)
		}
		for _, want := range []string{
			`document.querySelectorAll("summary").forEach((el) => el.click());`,
			`document.querySelectorAll("header").forEach((el) => el.remove());`,
			`el.getAttribute("aria-label")`,
		} {
			if !strings.Contains(script, want) {
				t.Errorf("script missing %q:\n%s", want, script)
			}
		}
	})

	t.Run("quotes cannot escape the selector literal", func(t *testing.T) {
		t.Parallel()
		script := Script([]Rule{{Selector: `a[href="x"]`, Action: ActionRemove}})
		if !strings.Contains(script, `"a[href=\"x\"]"`) {
			t.Errorf("expected escaped selector, got %q", script)
		}
	})

	t.Run("empty rule set yields empty body", func(t *testing.T) {
		t.Parallel()
		script := Script(nil)
		if script != "(() => {\n})();" {
			t.Errorf("unexpected script for empty rules: %q", script)
		}
	})
}
