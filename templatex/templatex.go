package templatex

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Category is the provider-side template category
type Category string

const (
	CategoryMarketing      Category = "MARKETING"
	CategoryUtility        Category = "UTILITY"
	CategoryAuthentication Category = "AUTHENTICATION"
)

// DefaultLanguage is used by every bundled template
const DefaultLanguage = "id"

// Template mirrors the provider's message_templates resource, so it can be
// sent as-is when creating a template.
type Template struct {
	Name       string      `json:"name"`
	Language   string      `json:"language"`
	Category   Category    `json:"category"`
	Components []Component `json:"components"`

	// Params names the body placeholders {{1}}..{{n}} in order
	Params []string `json:"-"`
}

// Component is a HEADER, BODY, FOOTER or BUTTONS block
type Component struct {
	Type    string   `json:"type"`
	Format  string   `json:"format,omitempty"`
	Text    string   `json:"text,omitempty"`
	Example *Example `json:"example,omitempty"`
	Buttons []Button `json:"buttons,omitempty"`
}

type Example struct {
	HeaderText []string   `json:"header_text,omitempty"`
	BodyText   [][]string `json:"body_text,omitempty"`
}

type Button struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	URL     string `json:"url,omitempty"`
	OTPType string `json:"otp_type,omitempty"`
}

// Body returns the BODY component text
func (t Template) Body() string {
	for _, c := range t.Components {
		if c.Type == "BODY" {
			return c.Text
		}
	}
	return ""
}

// Get looks a template up by name. The returned value is a copy.
func Get(name string) (Template, bool) {
	t, ok := registry[name]
	if !ok {
		return Template{}, false
	}
	return clone(t), true
}

// List returns every bundled template sorted by name
func List() []Template {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]Template, 0, len(names))
	for _, n := range names {
		out = append(out, clone(registry[n]))
	}
	return out
}

// FormatParameters orders named values into the template's positional
// parameter list. Missing names become "" so no slot is ever dropped.
// Unknown templates yield nil.
func FormatParameters(name string, values map[string]string) []string {
	t, ok := registry[name]
	if !ok {
		return nil
	}
	out := make([]string, len(t.Params))
	for i, p := range t.Params {
		out[i] = values[p]
	}
	return out
}

// Render substitutes positional parameters into the template body. It is the
// plain-text rendition used when a template send is not possible.
func Render(name string, params []string) (string, bool) {
	t, ok := registry[name]
	if !ok {
		return "", false
	}
	pairs := make([]string, 0, 2*len(params))
	for i, p := range params {
		pairs = append(pairs, fmt.Sprintf("{{%d}}", i+1), p)
	}
	// single pass: values that look like placeholders are left alone
	return strings.NewReplacer(pairs...).Replace(t.Body()), true
}

func clone(t Template) Template {
	t.Params = slices.Clone(t.Params)
	t.Components = slices.Clone(t.Components)
	for i, c := range t.Components {
		c.Buttons = slices.Clone(c.Buttons)
		if c.Example != nil {
			ex := *c.Example
			ex.HeaderText = slices.Clone(ex.HeaderText)
			ex.BodyText = slices.Clone(ex.BodyText)
			c.Example = &ex
		}
		t.Components[i] = c
	}
	return t
}
