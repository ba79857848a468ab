package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kittclouds/negra/pkg/negra"
)

// CorpusOptions are shared by every subcommand that reads export files.
type CorpusOptions struct {
	Columns string
	Latin1  bool
	BOS     string
	EOS     string
}

// schema resolves the -columns flag, defaulting to the full export
// column order.
func (o CorpusOptions) schema() (*negra.Schema, error) {
	if strings.TrimSpace(o.Columns) == "" {
		return negra.DefaultSchema(), nil
	}

	parts := strings.Split(o.Columns, ",")
	kinds := make([]negra.ColumnKind, 0, len(parts))
	for _, p := range parts {
		k, err := negra.ParseColumnKind(p)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return negra.NewSchema(kinds...)
}

func (o CorpusOptions) scanOptions() negra.ScanOptions {
	enc := negra.UTF8
	if o.Latin1 {
		enc = negra.Latin1
	}
	return negra.ScanOptions{
		BeginMarker: o.BOS,
		EndMarker:   o.EOS,
		Encoding:    enc,
	}
}

func addCorpusFlags(fs *flag.FlagSet, opts *CorpusOptions) {
	fs.StringVar(&opts.Columns, "columns", "", "Comma-separated column kinds, e.g. word,lemma,pos,parent (default: full export order)")
	fs.BoolVar(&opts.Latin1, "latin1", false, "Decode corpus files as Latin-1 instead of UTF-8")
	fs.StringVar(&opts.BOS, "bos", negra.DefaultBeginMarker, "Sentence begin marker")
	fs.StringVar(&opts.EOS, "eos", negra.DefaultEndMarker, "Sentence end marker")
}

type StatsOptions struct {
	CorpusOptions
	Top int
}

type ParseOptions struct {
	CorpusOptions
	N      int
	Pretty bool
}

type RulesOptions struct {
	CorpusOptions
	Top int
}

type ConcordOptions struct {
	CorpusOptions
	Words []string
	Width int
}

type IndexOptions struct {
	CorpusOptions
	DB string
}

type SearchOptions struct {
	DB    string
	Word  string
	Limit int
}

type SimilarOptions struct {
	CorpusOptions
	DB   string
	Sent int
	K    int
}

func parseMainArgs(args []string, ui UI) (string, []string, error) {
	fs := flag.NewFlagSet("negra", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	setupUsage(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return "", nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return "", nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return "", nil, errors.New("no command provided")
	}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]
	return cmd, cmdArgs, nil
}

// parseCorpusCommand is the common shape of the corpus-reading
// subcommands: shared corpus flags, any extra flags, then one or more
// export files as positional arguments.
func parseCorpusCommand(name, usage string, args []string, ui UI, opts *CorpusOptions, extra func(fs *flag.FlagSet)) ([]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addCorpusFlags(fs, opts)
	if extra != nil {
		extra(fs)
	}

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s %s [options] FILE...\n", os.Args[0], name)
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  %s\n", usage)
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return nil, fmt.Errorf("%s command needs at least one corpus file", name)
	}

	return fs.Args(), nil
}

func parseStatsArgs(args []string, ui UI) (StatsOptions, []string, error) {
	var opts StatsOptions
	files, err := parseCorpusCommand("stats", "Print corpus statistics.", args, ui, &opts.CorpusOptions, func(fs *flag.FlagSet) {
		fs.IntVar(&opts.Top, "top", 10, "Number of top words to show")
	})
	return opts, files, err
}

func parseParseArgs(args []string, ui UI) (ParseOptions, []string, error) {
	var opts ParseOptions
	files, err := parseCorpusCommand("parse", "Decode and print constituent trees.", args, ui, &opts.CorpusOptions, func(fs *flag.FlagSet) {
		fs.IntVar(&opts.N, "n", 0, "Number of trees to print (0 for all)")
		fs.BoolVar(&opts.Pretty, "pretty", false, "Indented multi-line trees instead of bracketed lines")
	})
	return opts, files, err
}

func parseRulesArgs(args []string, ui UI) (RulesOptions, []string, error) {
	var opts RulesOptions
	files, err := parseCorpusCommand("rules", "Extract phrase-structure rules from all trees.", args, ui, &opts.CorpusOptions, func(fs *flag.FlagSet) {
		fs.IntVar(&opts.Top, "top", 20, "Number of top rules to show")
	})
	return opts, files, err
}

func parseConcordArgs(args []string, ui UI) (ConcordOptions, []string, error) {
	var opts ConcordOptions
	var words string
	files, err := parseCorpusCommand("concord", "Keyword-in-context search over sentence text.", args, ui, &opts.CorpusOptions, func(fs *flag.FlagSet) {
		fs.StringVar(&words, "words", "", "Comma-separated word forms to search (required)")
		fs.IntVar(&opts.Width, "width", 0, "Context width in bytes on each side")
	})
	if err != nil {
		return opts, nil, err
	}

	for _, w := range strings.Split(words, ",") {
		if w = strings.TrimSpace(w); w != "" {
			opts.Words = append(opts.Words, w)
		}
	}
	if len(opts.Words) == 0 {
		return opts, nil, errors.New("concord command needs -words")
	}

	return opts, files, nil
}

func parseIndexArgs(args []string, ui UI) (IndexOptions, []string, error) {
	var opts IndexOptions
	files, err := parseCorpusCommand("index", "Decode a corpus into a SQLite index.", args, ui, &opts.CorpusOptions, func(fs *flag.FlagSet) {
		fs.StringVar(&opts.DB, "db", "", "SQLite database path (required)")
	})
	if err != nil {
		return opts, nil, err
	}

	if opts.DB == "" {
		return opts, nil, errors.New("index command needs -db")
	}

	return opts, files, nil
}

func parseSearchArgs(args []string, ui UI) (SearchOptions, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts SearchOptions
	fs.StringVar(&opts.DB, "db", "", "SQLite database path (required)")
	fs.StringVar(&opts.Word, "word", "", "Exact word form to look up (required)")
	fs.IntVar(&opts.Limit, "limit", 25, "Maximum number of occurrences to show")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s search -db PATH -word W [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Find occurrences of a word form in an indexed corpus.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, err
	}

	if opts.DB == "" {
		return opts, errors.New("search command needs -db")
	}
	if opts.Word == "" {
		return opts, errors.New("search command needs -word")
	}

	return opts, nil
}

func parseSimilarArgs(args []string, ui UI) (SimilarOptions, []string, error) {
	fs := flag.NewFlagSet("similar", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts SimilarOptions
	addCorpusFlags(fs, &opts.CorpusOptions)
	fs.StringVar(&opts.DB, "db", "", "SQLite database path (omit to search corpus files directly)")
	fs.IntVar(&opts.Sent, "sent", 0, "Sentence to find neighbours for: id with -db, 1-based corpus position otherwise")
	fs.IntVar(&opts.K, "k", 5, "Number of neighbours to show")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s similar -sent N [-db PATH | FILE...] [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Find sentences with a similar part-of-speech shape.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, nil, err
	}

	if opts.Sent <= 0 {
		return opts, nil, errors.New("similar command needs -sent")
	}

	files := fs.Args()
	if opts.DB == "" && len(files) == 0 {
		return opts, nil, errors.New("similar command needs -db or corpus files")
	}
	if opts.DB != "" && len(files) > 0 {
		return opts, nil, errors.New("similar command takes -db or corpus files, not both")
	}

	return opts, files, nil
}

func setupUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: %s command [command options] [arguments...]\n", os.Args[0])
		_, _ = fmt.Fprintf(output, "\nDescription:\n")
		_, _ = fmt.Fprintf(output, "  Read, query and index treebank export files\n")
		_, _ = fmt.Fprintf(output, "\nCommands:\n")
		_, _ = fmt.Fprintf(output, "  stats    Print corpus statistics.\n")
		_, _ = fmt.Fprintf(output, "  parse    Decode and print constituent trees.\n")
		_, _ = fmt.Fprintf(output, "  rules    Extract phrase-structure rules from all trees.\n")
		_, _ = fmt.Fprintf(output, "  concord  Keyword-in-context search over sentence text.\n")
		_, _ = fmt.Fprintf(output, "  index    Decode a corpus into a SQLite index.\n")
		_, _ = fmt.Fprintf(output, "  search   Find occurrences of a word form in an indexed corpus.\n")
		_, _ = fmt.Fprintf(output, "  similar  Find sentences with a similar part-of-speech shape.\n")
		_, _ = fmt.Fprintf(output, "  help     Show help for a command.\n")
	}
}
