// Package prompts implements the parameterized Markdown playbook catalog
// (spec §4.9). Eight templates, loaded once at startup and immutable
// thereafter; the server never executes their steps, only renders them.
package prompts

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"
)

//go:embed templates/*.md.tmpl
var templateFS embed.FS

// Param describes one (name, required, default) entry of a prompt's
// parameter schema.
type Param struct {
	Name        string
	Required    bool
	Default     string
	Description string
}

// Template is one entry of the catalog.
type Template struct {
	Name        string
	Description string
	Params      []Param

	tmpl *template.Template
}

// Catalog is the immutable, built-once set of prompt templates.
type Catalog struct {
	mu   sync.RWMutex
	byName map[string]*Template
	order  []string
}

// New builds the catalog by parsing every embedded template and pairing it
// with its declared parameter schema (spec §4.9's eight named templates).
func New() (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*Template)}
	for _, def := range definitions {
		t, err := loadTemplate(def)
		if err != nil {
			return nil, fmt.Errorf("prompts: loading %q: %w", def.Name, err)
		}
		c.byName[def.Name] = t
		c.order = append(c.order, def.Name)
	}
	return c, nil
}

func loadTemplate(def Template) (*Template, error) {
	raw, err := templateFS.ReadFile("templates/" + def.Name + ".md.tmpl")
	if err != nil {
		return nil, err
	}
	parsed, err := template.New(def.Name).Parse(string(raw))
	if err != nil {
		return nil, err
	}
	out := def
	out.tmpl = parsed
	return &out, nil
}

// List returns every prompt's name, description, and parameter schema,
// ordered alphabetically for stable discovery responses.
func (c *Catalog) List() []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Template, 0, len(c.byName))
	for _, name := range c.order {
		out = append(out, *c.byName[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Render looks up name and renders it against params, applying defaults and
// rejecting missing required parameters.
func (c *Catalog) Render(name string, params map[string]interface{}) (string, error) {
	c.mu.RLock()
	t, ok := c.byName[name]
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("prompts: unknown prompt %q", name)
	}

	data := make(map[string]string, len(t.Params))
	for _, p := range t.Params {
		v, present := params[p.Name]
		switch {
		case present:
			data[p.Name] = fmt.Sprintf("%v", v)
		case p.Required:
			return "", fmt.Errorf("prompts: %q requires parameter %q", name, p.Name)
		default:
			data[p.Name] = p.Default
		}
	}

	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("prompts: rendering %q: %w", name, err)
	}
	return sb.String(), nil
}
