package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/midbel/query/xpath"
)

type DebugCmd struct{}

func (d DebugCmd) Run(args []string) error {
	set := flag.NewFlagSet("debug", flag.ContinueOnError)
	if err := set.Parse(args); err != nil {
		return err
	}
	expr, err := xpath.CompileString(set.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, xpath.Debug(expr))
	return nil
}

type ScanCmd struct{}

func (s ScanCmd) Run(args []string) error {
	set := flag.NewFlagSet("scan", flag.ContinueOnError)
	if err := set.Parse(args); err != nil {
		return err
	}
	scan := xpath.Scan(strings.NewReader(set.Arg(0)))
	for {
		tok := scan.Scan()
		if tok.Type == xpath.EOF {
			break
		}
		fmt.Fprintf(os.Stdout, "%s %s", tok.Position, tok)
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
