// banglactl is the command line companion of the banglawriter input
// method: batch transliteration, rule tracing, suggestions and word list
// maintenance.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/transform"

	"banglawriter/internal/config"
	"banglawriter/internal/dictionary"
	"banglawriter/internal/logging"
	"banglawriter/internal/phonetic"
	"banglawriter/internal/suggest"
)

var (
	configPath = flag.String("config", "", "path to config file")
	verbose    = flag.Bool("v", false, "verbose logging to stderr")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	if *verbose {
		logging.SetDefault(logging.NewWithWriter(os.Stderr, &logging.Config{
			Level:     logging.LevelDebug,
			Format:    logging.FormatText,
			Component: "banglactl",
		}))
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]

	var err error
	switch cmd {
	case "translit":
		err = cmdTranslit(args)
	case "render":
		err = cmdRender(args)
	case "suggest":
		err = cmdSuggest(args)
	case "dict":
		err = cmdDict(args)
	case "config":
		err = cmdConfig(args)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `banglactl - Romanized Bangla tools

Usage: banglactl [options] <command> [args]

Commands:
  translit [file...]              Transliterate files or stdin to stdout
  render [-explain] <word>...     Render words and optionally trace the rules
  suggest [-dict path] [-phonetic] <prefix>
                                  List completion candidates
  dict validate <file>            Check a JSON word list or SQLite store
  dict import <json> <db>         Load a JSON word list into a SQLite store
  dict export <db> <json>         Write a SQLite store as a JSON word list
  dict history <db>               Show the import history of a store
  config init [-force] [path]     Write the default configuration
  config show                     Print the effective configuration
  help                            Show this help message

Options:
  -config <path>  Path to config file (default: ~/.config/banglawriter/config.toml)
  -v              Verbose logging`)
}

func loadConfig() (*config.Config, error) {
	return config.Load(*configPath)
}

func cmdTranslit(args []string) error {
	tr, err := phonetic.NewDefault()
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if len(args) == 0 {
		return translit(out, os.Stdin, tr)
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		err = translit(out, f, tr)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func translit(w io.Writer, r io.Reader, tr *phonetic.Transducer) error {
	_, err := io.Copy(w, transform.NewReader(r, tr.NewTransformer()))
	return err
}

func cmdRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	explain := fs.Bool("explain", false, "show which rule consumed each part")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: banglactl render [-explain] <word>...")
	}

	tr, err := phonetic.NewDefault()
	if err != nil {
		return err
	}

	for _, word := range fs.Args() {
		if !*explain {
			fmt.Printf("%s\t%s\n", word, tr.Render(word))
			continue
		}
		out, matches := tr.Explain(word)
		fmt.Printf("%s → %s\n", word, out)
		for _, m := range matches {
			fmt.Printf("  %-12s %q\n", m.Rule, m.Input)
		}
	}
	return nil
}

func cmdSuggest(args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	dictPath := fs.String("dict", "", "word list (default: from config)")
	phoneticFlag := fs.Bool("phonetic", false, "also match words against the rendering")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: banglactl suggest [-dict path] [-phonetic] <prefix>")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := *dictPath
	if path == "" {
		path = cfg.DictionaryPath()
	}

	res := dictionary.LoadOrBuiltin(path)
	if res.Fallback() {
		fmt.Fprintf(os.Stderr, "Warning: %v; using built-in list\n", res.Err)
	}

	tr, err := phonetic.NewDefault()
	if err != nil {
		return err
	}
	phoneticMatch := cfg.Engine.PhoneticSuggestions || *phoneticFlag
	ranker := suggest.NewRanker(tr, res.Index, suggest.Options{Phonetic: phoneticMatch})

	prefix := fs.Arg(0)
	list := ranker.Suggest(prefix)
	if len(list) == 0 {
		fmt.Fprintf(os.Stderr, "No suggestions for %q (%s)\n", prefix, tr.Render(prefix))
		return nil
	}
	for i, s := range list {
		fmt.Printf("%d. %s\n", (i+1)%10, s)
	}
	return nil
}

func cmdConfig(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: banglactl config <init|show>")
	}

	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("config init", flag.ExitOnError)
		force := fs.Bool("force", false, "overwrite an existing file")
		fs.Parse(args[1:])

		path := fs.Arg(0)
		if path == "" {
			path = *configPath
		}
		if path == "" {
			path = config.ConfigPath()
		}
		if _, err := os.Stat(path); err == nil && !*force {
			return fmt.Errorf("%s already exists (use -force to overwrite)", path)
		}
		if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil

	case "show":
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg, "toml")
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		return nil

	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}
