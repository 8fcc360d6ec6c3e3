// Package templateset renders text templates out of an http.FileSystem, so
// generator templates can live in an embedded filesystem in release builds
// and on disk during development.
package templateset

import (
	"io"
	"io/ioutil"
	"net/http"
	"path"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// Set encapsulates a set of templates under one directory.
type Set struct {
	fs          http.FileSystem
	templateDir string
	funcMap     template.FuncMap
}

// NewSet builds a new Set given an http.FileSystem and a directory.
func NewSet(fs http.FileSystem, dir string, funcMap template.FuncMap) *Set {
	return &Set{
		fs:          fs,
		templateDir: dir,
		funcMap:     funcMap,
	}
}

// Render parses the named template, executes it with the provided payload,
// and writes the result to w.
func (s *Set) Render(w io.Writer, templateName string, payload interface{}) error {
	data, err := s.read(templateName)
	if err != nil {
		return err
	}
	tmpl, err := template.New(templateName).Funcs(s.funcMap).Parse(string(data))
	if err != nil {
		return errors.Wrapf(err, "error parsing template %s", templateName)
	}
	if err := tmpl.Execute(w, payload); err != nil {
		return errors.Wrapf(err, "error executing template %s", templateName)
	}
	return nil
}

// Validate checks whether any .tmpl file in the set has parse errors.
func (s *Set) Validate() error {
	dir, err := s.fs.Open(s.templateDir)
	if err != nil {
		return errors.Wrapf(err, "error opening template dir %s", s.templateDir)
	}
	defer dir.Close()
	entries, err := dir.Readdir(-1)
	if err != nil {
		return errors.Wrapf(err, "error listing template dir %s", s.templateDir)
	}
	for _, fileinfo := range entries {
		if !strings.HasSuffix(fileinfo.Name(), ".tmpl") {
			continue
		}
		data, err := s.read(fileinfo.Name())
		if err != nil {
			return err
		}
		if _, err := template.New(fileinfo.Name()).Funcs(s.funcMap).Parse(string(data)); err != nil {
			return errors.Wrapf(err, "error parsing template %s", fileinfo.Name())
		}
	}
	return nil
}

func (s *Set) read(templateName string) ([]byte, error) {
	templatePath := path.Join(s.templateDir, templateName)
	file, err := s.fs.Open(templatePath)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening template %s", templatePath)
	}
	defer file.Close()
	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading template %s", templatePath)
	}
	return data, nil
}
