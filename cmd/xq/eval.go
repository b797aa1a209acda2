package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/query/xpath"
)

type EvalCmd struct {
	Bindings string
	Trace    bool
}

func (e EvalCmd) Run(args []string) error {
	set := flag.NewFlagSet("eval", flag.ContinueOnError)
	set.BoolVar(&e.Trace, "trace", false, "trace query compilation")
	set.StringVar(&e.Bindings, "bindings", "", "file with namespace and variable bindings")
	if err := set.Parse(args); err != nil {
		return err
	}
	query, err := buildQuery(set.Arg(0), e.Bindings, e.Trace)
	if err != nil {
		return err
	}
	doc, err := parseDocument(set.Arg(1))
	if err != nil {
		return err
	}
	res, err := query.Eval(doc)
	if err != nil {
		return err
	}
	switch res := res.(type) {
	case nil:
		return errFail
	case xpath.Sequence:
		printValues(res)
	default:
		fmt.Fprintln(os.Stdout, res)
	}
	return nil
}
