package main

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/midbel/query/xpath"
)

// Bindings is the on disk configuration for a query: namespace
// prefixes and variables, both optional.
type Bindings struct {
	Namespaces []struct {
		Prefix string `yaml:"prefix"`
		Uri    string `yaml:"uri"`
	} `yaml:"namespaces"`
	Variables []struct {
		Name  string `yaml:"name"`
		Value any    `yaml:"value"`
	} `yaml:"variables"`
}

func loadBindings(file string) ([]xpath.Option, error) {
	buf, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var b Bindings
	if err := yaml.Unmarshal(buf, &b); err != nil {
		return nil, err
	}
	var options []xpath.Option
	for _, ns := range b.Namespaces {
		options = append(options, xpath.WithNamespace(ns.Prefix, ns.Uri))
	}
	for _, v := range b.Variables {
		options = append(options, xpath.WithVariable(v.Name, v.Value))
	}
	return options, nil
}
