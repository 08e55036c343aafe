package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/eigerco/ldb/internal/config"
	"github.com/eigerco/ldb/internal/engine"
	"github.com/eigerco/ldb/pkg/log"
)

const usage = `usage: ldb [flags] <command> [arguments]

commands:
  get <key>              print the value stored at key
  put <key> <value>      store value at key
  delete <key>           remove key
  scan [range flags]     print the pairs of a range
  hash [range flags]     print the BLAKE2b-256 digest of a range
  size [range flags]     print the approximate disk size of a range
  destroy                remove the database
  repair                 salvage a corrupted database
  config                 print the effective configuration

flags:
`

var errUsage = errors.New("invalid usage")

// main runs a single command against a database.
// go run ./cmd/ldb -path ./data scan -prefix user/
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "ldb:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ldb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "ldb.yaml", "path to the YAML configuration")
	engineName := fs.String("engine", "", "engine: pebble, goleveldb or cleveldb (overrides config)")
	path := fs.String("path", "", "database directory (overrides config)")
	logLevel := fs.String("log-level", "", "log level (overrides config)")
	hexMode := fs.Bool("hex", false, "read and print keys and values as hex")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *engineName != "" {
		cfg.Engine = *engineName
	}
	if *path != "" {
		cfg.Path = *path
		cfg.InMemory = false
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := initLogger(cfg, stderr); err != nil {
		return err
	}

	kind, err := cfg.EngineKind()
	if err != nil {
		return err
	}
	opts, err := cfg.DBOptions()
	if err != nil {
		return err
	}

	c := &command{
		kind:   kind,
		path:   cfg.StorePath(),
		opts:   opts,
		text:   textFormat{hex: *hexMode},
		stdout: stdout,
		stderr: stderr,
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	log.CLI.Debug().Str("command", name).Str("engine", string(kind)).Str("path", c.path).Msg("running command")

	switch name {
	case "get":
		return c.get(rest)
	case "put":
		return c.put(rest)
	case "delete":
		return c.delete(rest)
	case "scan":
		return c.scan(rest)
	case "hash":
		return c.hash(rest)
	case "size":
		return c.size(rest)
	case "destroy":
		return engine.Destroy(kind, c.path)
	case "repair":
		return engine.Repair(kind, c.path, opts)
	case "config":
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		fs.Usage()
		return errUsage
	}
}

// initLogger logs to out, as console text on a terminal and JSON otherwise
// unless the configuration names a format.
func initLogger(cfg config.Config, out io.Writer) error {
	opts, err := cfg.LogOptions()
	if err != nil {
		return err
	}
	if cfg.Logger.Format == "" {
		opts.Type = log.JSONLogger
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			opts.Type = log.ConsoleLogger
		}
	}
	opts.Output = out
	log.Init(opts)
	return nil
}
