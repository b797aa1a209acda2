package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/midbel/query/xml"
	"github.com/midbel/query/xpath"
)

type QueryCmd struct {
	Bindings string
	Noout    bool
	Limit    int
	Text     bool
	Trace    bool
}

const queryInfo = "query took %s - %d nodes matching %q"

func (q QueryCmd) Run(args []string) error {
	set := flag.NewFlagSet("query", flag.ContinueOnError)
	set.IntVar(&q.Limit, "limit", 0, "limit number of results returned by query")
	set.BoolVar(&q.Noout, "quiet", false, "suppress output - default is to print the result nodes")
	set.BoolVar(&q.Text, "text", false, "print only value of node")
	set.BoolVar(&q.Trace, "trace", false, "trace query compilation")
	set.StringVar(&q.Bindings, "bindings", "", "file with namespace and variable bindings")
	if err := set.Parse(args); err != nil {
		return err
	}
	query, err := buildQuery(set.Arg(0), q.Bindings, q.Trace)
	if err != nil {
		return err
	}
	doc, err := parseDocument(set.Arg(1))
	if err != nil {
		return err
	}
	now := time.Now()
	results, err := query.Find(doc)
	if err != nil {
		return err
	}
	elapsed := time.Since(now)
	if q.Limit > 0 && results.Len() > q.Limit {
		results = results[:q.Limit]
	}
	if !q.Noout {
		if q.Text {
			printValues(results)
		} else {
			printNodes(results)
		}
	}
	fmt.Fprintf(os.Stdout, queryInfo, elapsed, results.Len(), set.Arg(0))
	fmt.Fprintln(os.Stdout)
	if results.Len() == 0 {
		return errFail
	}
	return nil
}

func printValues(results xpath.Sequence) {
	for i := range results {
		fmt.Fprintln(os.Stdout, toText(results[i]))
	}
}

func printNodes(results xpath.Sequence) {
	for i := range results {
		if n := results[i].Node(); n != nil {
			fmt.Fprintln(os.Stdout, xml.WriteNode(n))
			continue
		}
		fmt.Fprintln(os.Stdout, toText(results[i]))
	}
}

func toText(item xpath.Item) string {
	if n := item.Node(); n != nil {
		return n.Value()
	}
	return fmt.Sprintf("%v", item.Value())
}
