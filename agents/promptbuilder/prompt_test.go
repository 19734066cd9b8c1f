/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder_test

import (
	"strings"
	"testing"

	"chainguard.dev/noveltybench/agents/promptbuilder"
	"github.com/google/go-cmp/cmp"
)

func TestNewPrompt_Bindings(t *testing.T) {
	p, err := promptbuilder.NewPrompt("Q: {{question}}\nA: {{answer}}\nAgain: {{question}}")
	if err != nil {
		t.Fatalf("NewPrompt() error = %v", err)
	}
	want := map[string]struct{}{"question": {}, "answer": {}}
	if diff := cmp.Diff(want, p.GetBindings()); diff != "" {
		t.Errorf("GetBindings() (-want +got):\n%s", diff)
	}
}

func TestBuild_Unbound(t *testing.T) {
	p := promptbuilder.MustNewPrompt("Hello {{name}}")
	if _, err := p.Build(); err == nil || !strings.Contains(err.Error(), "unbound placeholder: name") {
		t.Errorf("Build() error: got = %v, wanted = unbound placeholder: name", err)
	}
}

func TestBind_Errors(t *testing.T) {
	p := promptbuilder.MustNewPrompt("{{a}}")

	if _, err := p.BindElement("missing", "x", "x"); err == nil {
		t.Error("BindElement(missing): got = nil, wanted = error")
	}

	bound := p.MustBindElement("a", "x", "x")
	if _, err := bound.BindElement("a", "x", "y"); err == nil {
		t.Error("rebinding: got = nil, wanted = error")
	}

	if _, err := p.BindElement("a", "bad tag", "x"); err == nil {
		t.Error("BindElement(bad tag): got = nil, wanted = error")
	}
	if _, err := p.BindList("a", "list", "", nil); err == nil {
		t.Error("BindList(empty item tag): got = nil, wanted = error")
	}
}

func TestBind_Immutable(t *testing.T) {
	base := promptbuilder.MustNewPrompt("{{a}}")
	_ = base.MustBindElement("a", "x", "x")
	if _, err := base.Build(); err == nil {
		t.Error("base.Build() after binding a copy: got = nil, wanted = unbound error")
	}
}

func TestBindElement(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{{
		name: "plain text",
		text: "Why did Rome fall?",
		want: "<question><![CDATA[Why did Rome fall?]]></question>",
	}, {
		name: "markup and quotes are kept verbatim",
		text: `What's <b>bold</b> & "quoted"?`,
		want: `<question><![CDATA[What's <b>bold</b> & "quoted"?]]></question>`,
	}, {
		name: "multi-line code",
		text: "def f():\n    return 1",
		want: "<question><![CDATA[def f():\n    return 1]]></question>",
	}, {
		name: "placeholders in text are not expanded",
		text: "{{question}}",
		want: "<question><![CDATA[{{question}}]]></question>",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := promptbuilder.MustNewPrompt("{{question}}").MustBindElement("question", "question", tt.text)
			got, err := p.Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Build():\ngot  = %q\nwant = %q", got, tt.want)
			}
		})
	}
}

func TestBindElement_CDATATerminatorIsSplit(t *testing.T) {
	p := promptbuilder.MustNewPrompt("{{s}}").MustBindElement("s", "solution", "a]]>b")
	got, err := p.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	// The raw terminator must never appear unsplit inside one CDATA section.
	inner := strings.TrimSuffix(strings.TrimPrefix(got, "<solution><![CDATA["), "]]></solution>")
	if strings.Contains(inner, "]]>") && !strings.Contains(inner, "]]><![CDATA[") {
		t.Errorf("Build() = %q: CDATA terminator was not escaped", got)
	}
}

func TestBindList(t *testing.T) {
	p, err := promptbuilder.MustNewPrompt("Before\n{{history}}\nAfter").
		BindList("history", "previous_answers", "answer", []string{"Because of X.", "Because of Y."})
	if err != nil {
		t.Fatalf("BindList() error = %v", err)
	}
	got, err := p.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := `Before
<previous_answers>
  <answer index="1"><![CDATA[Because of X.]]></answer>
  <answer index="2"><![CDATA[Because of Y.]]></answer>
</previous_answers>
After`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() (-want +got):\n%s", diff)
	}
}

func TestBindList_CopiesInput(t *testing.T) {
	items := []string{"first"}
	p, err := promptbuilder.MustNewPrompt("{{h}}").BindList("h", "previous_solutions", "solution", items)
	if err != nil {
		t.Fatalf("BindList() error = %v", err)
	}
	items[0] = "mutated"
	got, err := p.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(got, "first") || strings.Contains(got, "mutated") {
		t.Errorf("Build() = %q, wanted the list captured at bind time", got)
	}
}

type greeting struct {
	Name string
}

func (g greeting) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	return p.BindElement("name", "name", g.Name)
}

func TestRender(t *testing.T) {
	got, err := promptbuilder.Render(promptbuilder.MustNewPrompt("Hi {{name}}"), greeting{Name: "Ada"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "Hi <name><![CDATA[Ada]]></name>"; got != want {
		t.Errorf("Render(): got = %q, wanted = %q", got, want)
	}
}

func TestMust_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must(nil, err): got = no panic, wanted = panic")
		}
	}()
	promptbuilder.MustNewPrompt("{{unclosed")
}
