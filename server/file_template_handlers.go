package server

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"

	"github.com/shuzaifak/Property-Sync-Owner/properties"
)

//go:embed templates/*
var templateFiles embed.FS

const contentTypeHTML = "text/html; charset=utf-8"

// pageTemplates are parsed once when the server is built
var pageTemplates = []string{
	"layout.html",
	"login.html",
	"register.html",
	"dashboard.html",
	"properties.html",
	"property_form.html",
	"profile.html",
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string, funcs template.FuncMap) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(funcs).Parse(string(content))
}

func (s *Server) parseTemplates() (map[string]*template.Template, error) {
	funcs := s.templateFuncs()
	parsed := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		tmpl, err := ParseTemplate(name, funcs)
		if err != nil {
			return nil, err
		}
		parsed[name] = tmpl
	}
	return parsed, nil
}

func (s *Server) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"imageURL":   s.imageURL,
		"fieldError": func(errs properties.ValidationErrors, field string) string {
			return errs.Message(field)
		},
		"previewURL": draftImageURL,
		"add":        func(a, b int) int { return a + b },
	}
}

// imageURL resolves a stored image path against the uploads location
func (s *Server) imageURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.config.GetUploadsURL() + path
}
