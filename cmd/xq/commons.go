package main

import (
	"os"

	"github.com/midbel/cli"
	"github.com/midbel/query/xml"
	"github.com/midbel/query/xpath"
)

var queryCmd = cli.Command{
	Name:    "query",
	Alias:   []string{"exec"},
	Summary: "run a query and print the matching nodes",
	Handler: &QueryCmd{},
}

var evalCmd = cli.Command{
	Name:    "eval",
	Summary: "run a query and print its value",
	Handler: &EvalCmd{},
}

var debugCmd = cli.Command{
	Name:    "debug",
	Summary: "print the structure of a compiled query",
	Handler: &DebugCmd{},
}

var scanCmd = cli.Command{
	Name:    "scan",
	Summary: "print the token stream of a query",
	Handler: &ScanCmd{},
}

// parseDocument loads an xml document from file, reading stdin when
// file is empty or "-".
func parseDocument(file string) (*xml.Document, error) {
	if file == "" || file == "-" {
		return xml.ParseReader(os.Stdin)
	}
	return xml.ParseFile(file)
}

func buildQuery(query, bindings string, trace bool) (*xpath.Query, error) {
	var options []xpath.Option
	if bindings != "" {
		all, err := loadBindings(bindings)
		if err != nil {
			return nil, err
		}
		options = all
	}
	if trace {
		options = append(options, xpath.WithTracer(xpath.TraceStderr()))
	}
	return xpath.Build(query, options...)
}
