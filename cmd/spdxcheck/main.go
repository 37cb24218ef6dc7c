/*
spdxcheck is a small command exercising the spdx library end to end: it
parses an expression and a set of accepted licensees, then reports whether
the licensees satisfy the expression, printing the minimized requirements on
success or the unmet requirements on failure.

	spdxcheck -licensee MIT -licensee BSD-3-Clause "(MIT OR Apache-2.0) AND BSD-3-Clause"

With -i it drops into an interactive readline loop, reading successive
expressions from stdin and checking each against the licensees given on the
command line.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/EmbarkStudios/spdx"
)

// tracer traces with key 'spdxcheck'.
func tracer() tracing.Trace {
	return tracing.Select("spdxcheck")
}

type licenseeFlags []string

func (l *licenseeFlags) String() string     { return strings.Join(*l, ",") }
func (l *licenseeFlags) Set(v string) error { *l = append(*l, v); return nil }

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()

	var licensees licenseeFlags
	flag.Var(&licensees, "licensee", "an accepted licensee (repeatable)")
	lax := flag.Bool("lax", false, "parse under LAX mode instead of STRICT")
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	interactive := flag.Bool("i", false, "drop into an interactive readline loop")
	flag.Parse()

	tracer().SetTraceLevel(traceLevel(*tlevel))

	mode := spdx.Strict()
	if *lax {
		mode = spdx.Lax()
	}

	accepted, err := parseLicensees(licensees, mode)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}

	if *interactive {
		runRepl(accepted, mode)
		return
	}

	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input == "" {
		pterm.Error.Println("no expression given; pass one as the trailing argument or use -i")
		os.Exit(2)
	}
	check(input, accepted, mode)
}

func parseLicensees(raw []string, mode spdx.ParseMode) ([]*spdx.Licensee, error) {
	licensees := make([]*spdx.Licensee, 0, len(raw))
	for _, s := range raw {
		l, err := spdx.ParseLicensee(s, mode)
		if err != nil {
			return nil, fmt.Errorf("licensee %q: %w", s, err)
		}
		licensees = append(licensees, l)
	}
	return licensees, nil
}

func check(input string, accepted []*spdx.Licensee, mode spdx.ParseMode) {
	expr, err := spdx.Parse(input, mode)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}

	pred := func(r spdx.LicenseReq) bool {
		for _, l := range accepted {
			if l.Satisfies(r) {
				return true
			}
		}
		return false
	}

	ok, failures := expr.EvaluateWithFailures(pred)
	if !ok {
		pterm.Error.Println("not satisfied; unmet requirements:")
		for _, f := range failures {
			pterm.Error.Println("  " + f.String())
		}
		return
	}

	minimized, err := expr.MinimizedRequirements(accepted)
	if err != nil {
		pterm.Success.Println("satisfied")
		return
	}
	pterm.Success.Println("satisfied; minimized: " + minimized.String())
}

func runRepl(accepted []*spdx.Licensee, mode spdx.ParseMode) {
	repl, err := readline.New("spdxcheck> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		check(line, accepted, mode)
	}
}

func initDisplay() {
	pterm.Success.Prefix = pterm.Prefix{
		Text:  "  OK",
		Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(s string) tracing.TraceLevel {
	switch strings.ToLower(s) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	default:
		return tracing.LevelInfo
	}
}
