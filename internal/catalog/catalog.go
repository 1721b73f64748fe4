// Package catalog holds the declarative registry of platform tools. The
// same metadata drives both call validation and the capability text shown
// to the language model, so the two cannot drift apart.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// ParamSpec describes a single tool parameter.
type ParamSpec struct {
	Name        string
	Type        string // string or int
	Required    bool
	Default     interface{}
	Description string
}

// ToolSpec describes one callable tool on one platform.
type ToolSpec struct {
	Platform    string
	Name        string
	Description string
	Params      []ParamSpec
	Returns     string
}

// Signature renders the tool's call signature, e.g. get_user_info(screenname: string).
func (t ToolSpec) Signature() string {
	parts := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		switch {
		case p.Required:
			parts = append(parts, fmt.Sprintf("%s: %s", p.Name, p.Type))
		case p.Default == nil:
			parts = append(parts, fmt.Sprintf("%s: %s = null", p.Name, p.Type))
		case p.Type == "string":
			parts = append(parts, fmt.Sprintf("%s: %s = %q", p.Name, p.Type, p.Default))
		default:
			parts = append(parts, fmt.Sprintf("%s: %s = %v", p.Name, p.Type, p.Default))
		}
	}
	return fmt.Sprintf("%s(%s)", t.Name, strings.Join(parts, ", "))
}

// Catalog is the closed set of platforms and tools the planner may call.
type Catalog struct {
	order []string
	tools map[string][]ToolSpec
	index map[string]map[string]ToolSpec
}

// New builds a catalog from a list of tool specs, preserving platform and
// tool declaration order for prompt rendering.
func New(specs []ToolSpec) *Catalog {
	c := &Catalog{
		tools: make(map[string][]ToolSpec),
		index: make(map[string]map[string]ToolSpec),
	}
	for _, s := range specs {
		p := strings.ToLower(s.Platform)
		if _, ok := c.index[p]; !ok {
			c.order = append(c.order, p)
			c.index[p] = make(map[string]ToolSpec)
		}
		if _, dup := c.index[p][s.Name]; !dup {
			c.tools[p] = append(c.tools[p], s)
		}
		c.index[p][s.Name] = s
	}
	return c
}

// Default returns the catalog of all built-in platform tools.
func Default() *Catalog { return New(defaultTools) }

// Lookup resolves a (platform, tool) pair. Platform is matched
// case-insensitively, as planner output casing is not trustworthy.
func (c *Catalog) Lookup(platform, tool string) (ToolSpec, bool) {
	byName, ok := c.index[strings.ToLower(platform)]
	if !ok {
		return ToolSpec{}, false
	}
	s, ok := byName[tool]
	return s, ok
}

// HasPlatform reports whether the platform exists in the catalog.
func (c *Catalog) HasPlatform(platform string) bool {
	_, ok := c.index[strings.ToLower(platform)]
	return ok
}

// Platforms returns the platform identifiers in declaration order.
func (c *Catalog) Platforms() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Tools returns the tool specs for a platform in declaration order.
func (c *Catalog) Tools(platform string) []ToolSpec {
	src := c.tools[strings.ToLower(platform)]
	out := make([]ToolSpec, len(src))
	copy(out, src)
	return out
}

// Len returns the total number of tools across every platform.
func (c *Catalog) Len() int {
	n := 0
	for _, ts := range c.tools {
		n += len(ts)
	}
	return n
}

var platformTitles = map[string]string{
	"twitter":  "Twitter",
	"tiktok":   "TikTok",
	"linkedin": "LinkedIn",
	"videodl":  "Video Download",
	"content":  "Content Understanding",
}

func platformTitle(p string) string {
	if t, ok := platformTitles[p]; ok {
		return t
	}
	if p == "" {
		return p
	}
	return strings.ToUpper(p[:1]) + p[1:]
}

// PromptText renders the full natural-language capability description used
// in planner system prompts. The text is generated from the tool metadata.
func (c *Catalog) PromptText() string {
	var b strings.Builder
	for i, p := range c.order {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "**%s (`%s`) - Available Tools & Usage:**\n", platformTitle(p), p)
		for _, t := range c.tools[p] {
			fmt.Fprintf(&b, "\n*   `%s`: %s\n", t.Signature(), t.Description)
			fmt.Fprintf(&b, "    *   Args: %s\n", t.exampleArgs())
			if t.Returns != "" {
				fmt.Fprintf(&b, "    *   Returns: %s\n", t.Returns)
			}
		}
	}
	return b.String()
}

// exampleArgs renders a JSON-ish args example for the prompt.
func (t ToolSpec) exampleArgs() string {
	if len(t.Params) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		switch {
		case p.Required && p.Type == "string":
			parts = append(parts, fmt.Sprintf("%q: \"%s\"", p.Name, strings.ToUpper(p.Name)))
		case p.Required:
			parts = append(parts, fmt.Sprintf("%q: <%s>", p.Name, p.Type))
		case p.Default == nil:
			parts = append(parts, fmt.Sprintf("%q: null", p.Name))
		default:
			if s, ok := p.Default.(string); ok {
				parts = append(parts, fmt.Sprintf("%q: %q", p.Name, s))
			} else {
				parts = append(parts, fmt.Sprintf("%q: %v", p.Name, p.Default))
			}
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Validate checks that every configured platform is known to the catalog.
// Used at startup so dispatch never meets an unknown platform key at runtime.
func (c *Catalog) Validate(configured []string) error {
	var unknown []string
	for _, p := range configured {
		if !c.HasPlatform(p) {
			unknown = append(unknown, p)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("platforms not present in tool catalog: %s", strings.Join(unknown, ", "))
	}
	return nil
}
