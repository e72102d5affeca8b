package crmdeploy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// RenderData is the variable set available to unit and vhost templates.
type RenderData struct {
	Project    string
	Domain     string
	ProjectDir string
	VenvDir    string
	SocketPath string
	User       string
	Group      string
	Workers    int
	StaticRoot string
	MediaRoot  string
	ASGI       bool
	ASGIHost   string
	ASGIPort   int
	WSGIModule string
	ASGIModule string
}

// renderTemplate renders the named template. A file in the templates dir
// takes precedence; otherwise the compiled-in default is used so the binary
// works without an installed template tree.
func renderTemplate(name string, data RenderData) (string, error) {
	path := filepath.Join(findTemplatesDir(), filepath.FromSlash(name))
	if content, err := os.ReadFile(path); err == nil {
		return renderString(string(content), data)
	}
	text, ok := builtinTemplates[name]
	if !ok {
		return "", &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return renderString(text, data)
}

func renderString(content string, data RenderData) (string, error) {
	tmpl, err := template.New("").Option("missingkey=error").Parse(content)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func findTemplatesDir() string {
	if custom := strings.TrimSpace(os.Getenv("CRMDEPLOY_TEMPLATES")); custom != "" {
		return custom
	}

	exe, err := os.Executable()
	if err == nil {
		binDir := filepath.Dir(exe)
		candidates := []string{
			filepath.Join(binDir, "..", "templates"),
			filepath.Join(binDir, "templates"),
		}
		for _, c := range candidates {
			if DirExists(c) {
				return c
			}
		}
	}

	cwd, err := os.Getwd()
	if err == nil {
		c := filepath.Join(cwd, "templates")
		if DirExists(c) {
			return c
		}
	}

	home, _ := os.UserHomeDir()
	fallbacks := []string{
		"/usr/local/share/crmdeploy/templates",
		filepath.Join(home, ".crmdeploy", "templates"),
	}
	for _, c := range fallbacks {
		if DirExists(c) {
			return c
		}
	}
	return "templates"
}
