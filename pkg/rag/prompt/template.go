// Package prompt resolves and renders the instruction templates used by the
// rephrase and answer stages.
package prompt

import (
	"context"
	"fmt"
	"strings"
	"text/template"
)

const (
	NameRephrase = "rephrase"
	NameAnswer   = "answer"
)

// Placeholder names available to template bodies, e.g. {{.input}}.
const (
	VarInput    = "input"
	VarQuestion = "question"
	VarContext  = "context"
)

// Template is a system/human pair with text/template placeholders.
type Template struct {
	Name   string
	System string
	Human  string
}

// Provider resolves templates by name. Unknown names yield *rag.TemplateNotFoundError.
type Provider interface {
	Resolve(ctx context.Context, name string) (*Template, error)
}

// Render fills both bodies from vars. A placeholder without a value is an error.
func (t *Template) Render(vars map[string]string) (system string, human string, err error) {
	system, err = render(t.Name+".system", t.System, vars)
	if err != nil {
		return "", "", err
	}
	human, err = render(t.Name+".human", t.Human, vars)
	if err != nil {
		return "", "", err
	}
	return system, human, nil
}

// Validate checks that both bodies parse.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("prompt template: empty name")
	}
	if _, err := parse(t.Name+".system", t.System); err != nil {
		return err
	}
	if _, err := parse(t.Name+".human", t.Human); err != nil {
		return err
	}
	return nil
}

func parse(name, body string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return tmpl, nil
}

func render(name, body string, vars map[string]string) (string, error) {
	tmpl, err := parse(name, body)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, vars); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return out.String(), nil
}
