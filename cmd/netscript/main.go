package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"

	"netscript/pkg/config"
)

const usage = `Usage: netscript [options] <command> [arguments]

Commands:
  mem [script]            Show the RAM cost of a script, or of every script
  run <script> [args...]  Run a script
  emit <script>           Print the compiled bundle of a script
  check <script>          Type-check a script
  decls                   Print the API declarations
  import <file>...        Copy local files onto the server
  ls                      List the scripts on the server

Options:
`

func main() {
	configFlag := flag.String("config", "", "Config file (default: netscript.yaml found from the working directory)")
	serverFlag := flag.String("server", "", "Server scripts are read from")
	storeFlag := flag.String("store", "", "Script database")
	timeoutFlag := flag.Duration("timeout", -1, "Execution time limit (0 for none)")
	bitnodeFlag := flag.Int("bitnode", 0, "Current BitNode")
	sf4Flag := flag.Int("sf4", -1, "Source-File 4 level")
	yamlFlag := flag.Bool("yaml", false, "Print mem results as YAML")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(64) // Exit code 64: command line usage error
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(64)
	}
	if *serverFlag != "" {
		cfg.Server = *serverFlag
	}
	if *storeFlag != "" {
		cfg.StorePath = *storeFlag
	}
	if *timeoutFlag >= 0 {
		cfg.Timeout = *timeoutFlag
	}
	if *bitnodeFlag > 0 {
		cfg.Player.BitNodeN = *bitnodeFlag
	}
	if *sf4Flag >= 0 {
		cfg.Player.SourceFiles[4] = *sf4Flag
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	a, stop, err := start(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(70) // Exit code 70: internal software error
	}
	defer stop()

	cmd := &command{
		app:   a,
		out:   os.Stdout,
		color: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		yaml:  *yamlFlag,
	}
	code := cmd.dispatch(ctx, flag.Arg(0), flag.Args()[1:])
	if code != 0 {
		stop()
		os.Exit(code)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil || found == "" {
			return config.Default(), err
		}
		path = found
	}
	return config.LoadConfig(path)
}

// deadline applies the configured execution limit to ctx.
func deadline(ctx context.Context, limit time.Duration) (context.Context, context.CancelFunc) {
	if limit <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, limit)
}
