package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/kittclouds/negra/internal/store"
	"github.com/kittclouds/negra/pkg/concord"
	"github.com/kittclouds/negra/pkg/grammar"
	"github.com/kittclouds/negra/pkg/negra"
	"github.com/kittclouds/negra/pkg/similar"
	"github.com/kittclouds/negra/pkg/stats"

	"github.com/gosuri/uiprogress"
	"github.com/hack-pad/hackpadfs/mem"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	cmd, args, err := parseMainArgs(os.Args[1:], ui)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := runCommand(cmd, args, ui); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "negra: %v\n", err)
}

func runCommand(cmd string, args []string, ui UI) error {
	switch cmd {
	case "help":
		if len(args) > 0 {
			return runCommand(args[0], []string{"--help"}, ui)
		}
		fs := flag.NewFlagSet("negra", flag.ContinueOnError)
		fs.SetOutput(ui.Out)
		setupUsage(fs)
		fs.Usage()
		return nil

	case "stats":
		opts, files, err := parseStatsArgs(args, ui)
		if err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return err
		}
		return statsCommand(opts, files, ui)

	case "parse":
		opts, files, err := parseParseArgs(args, ui)
		if err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return err
		}
		return parseCommand(opts, files, ui)

	case "rules":
		opts, files, err := parseRulesArgs(args, ui)
		if err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return err
		}
		return rulesCommand(opts, files, ui)

	case "concord":
		opts, files, err := parseConcordArgs(args, ui)
		if err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return err
		}
		return concordCommand(opts, files, ui)

	case "index":
		opts, files, err := parseIndexArgs(args, ui)
		if err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return err
		}
		return indexCommand(opts, files, ui)

	case "search":
		opts, err := parseSearchArgs(args, ui)
		if err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return err
		}
		return searchCommand(opts, ui)

	case "similar":
		opts, files, err := parseSimilarArgs(args, ui)
		if err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return err
		}
		return similarCommand(opts, files, ui)
	}

	return fmt.Errorf("unknown command: %s", cmd)
}

// reportCorpusErr prints sentence-local and stream problems on ui.Err
// and lets iteration continue. Anything else, open failures and
// misconfigured schemas, comes back as a fatal error.
func reportCorpusErr(err error, ui UI) error {
	var malformed *negra.MalformedSentenceError
	var mismatch *negra.LengthMismatchError
	var stream *negra.MalformedStreamError
	if errors.As(err, &malformed) || errors.As(err, &mismatch) || errors.As(err, &stream) {
		fprintErr(ui.Err, err)
		return nil
	}
	return err
}

// walkFile hands every sentence grid of one export file to fn.
func walkFile(path string, opts negra.ScanOptions, ui UI, fn func(sentNo int, g negra.Grid) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := negra.NewBlockScanner(f, opts)
	sentNo := 0
	for sc.Scan() {
		sentNo++
		if err := fn(sentNo, sc.Grid()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		var stream *negra.MalformedStreamError
		if errors.As(err, &stream) {
			stream.FileID = path
		}
		fprintErr(ui.Err, err)
	}
	return nil
}

func walkCorpus(files []string, opts negra.ScanOptions, ui UI, fn func(fileID string, sentNo int, g negra.Grid) error) error {
	for _, path := range files {
		err := walkFile(path, opts, ui, func(sentNo int, g negra.Grid) error {
			return fn(path, sentNo, g)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// optColumn pulls a leaf column the schema may not declare. Rows too
// short for the column are skipped, so the result can be shorter than
// the word column.
func optColumn(schema *negra.Schema, g negra.Grid, kind negra.ColumnKind) []string {
	vals, err := schema.Extract(g, kind, true)
	if err != nil {
		return nil
	}
	return vals
}

func fieldAt(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func statsCommand(opts StatsOptions, files []string, ui UI) error {
	schema, err := opts.schema()
	if err != nil {
		return err
	}

	_, tagErr := schema.Resolve(negra.ColumnPOS)
	hasTags := tagErr == nil

	analyzer := stats.NewAnalyzer()
	reader := negra.NewFileReader(files, schema, opts.scanOptions())
	for g, err := range reader.Grids() {
		if err != nil {
			if err := reportCorpusErr(err, ui); err != nil {
				return err
			}
			continue
		}
		words, err := schema.Extract(g, negra.ColumnWord, true)
		if err != nil {
			return err
		}
		var tags []string
		if hasTags {
			tags = optColumn(schema, g, negra.ColumnPOS)
		}
		analyzer.Add(words, tags)
	}

	report := analyzer.Report(opts.Top)
	fmt.Fprintf(ui.Out, "Sentences    %d\n", report.SentenceCount)
	fmt.Fprintf(ui.Out, "Tokens       %d\n", report.TokenCount)
	fmt.Fprintf(ui.Out, "Vocabulary   %d\n", report.VocabSize)
	fmt.Fprintf(ui.Out, "Avg length   %.2f\n", report.AvgSentenceLen)
	if hasTags {
		fmt.Fprintf(ui.Out, "Tag entropy  %.4f\n", report.TagEntropy)
	}

	fmt.Fprintf(ui.Out, "\nTop words:\n")
	for _, wc := range report.TopWords {
		fmt.Fprintf(ui.Out, "%6d  %s\n", wc.Count, wc.Word)
	}

	return nil
}

func parseCommand(opts ParseOptions, files []string, ui UI) error {
	schema, err := opts.schema()
	if err != nil {
		return err
	}

	printed := 0
	reader := negra.NewFileReader(files, schema, opts.scanOptions())
	for root, err := range reader.ParsedSents() {
		if err != nil {
			if err := reportCorpusErr(err, ui); err != nil {
				return err
			}
			continue
		}
		if opts.Pretty {
			fmt.Fprint(ui.Out, root.Pretty())
		} else {
			fmt.Fprintln(ui.Out, root.String())
		}
		printed++
		if opts.N > 0 && printed >= opts.N {
			break
		}
	}

	return nil
}

func rulesCommand(opts RulesOptions, files []string, ui UI) error {
	schema, err := opts.schema()
	if err != nil {
		return err
	}

	table := grammar.NewRuleTable()
	graph := grammar.NewCategoryGraph()
	trees := 0

	reader := negra.NewFileReader(files, schema, opts.scanOptions())
	for root, err := range reader.ParsedSents() {
		if err != nil {
			if err := reportCorpusErr(err, ui); err != nil {
				return err
			}
			continue
		}
		table.Add(root)
		graph.Observe(root)
		trees++
	}

	fmt.Fprintf(ui.Out, "Trees %d, distinct rules %d, categories %d\n\n", trees, table.Len(), graph.NodeCount())
	for _, rc := range table.Top(opts.Top) {
		fmt.Fprintf(ui.Out, "%6d  %s\n", rc.Count, rc.Rule)
	}

	if roots := graph.Roots(); len(roots) > 0 {
		fmt.Fprintf(ui.Out, "\nRoot categories: %s\n", strings.Join(roots, " "))
	}
	if hubs := topCentral(graph, 5); len(hubs) > 0 {
		fmt.Fprintf(ui.Out, "Most connected:  %s\n", strings.Join(hubs, " "))
	}

	return nil
}

// topCentral ranks categories by degree centrality, ties broken by
// label.
func topCentral(graph *grammar.CategoryGraph, n int) []string {
	cent := graph.DegreeCentrality()
	labels := make([]string, 0, len(cent))
	for label := range cent {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if cent[labels[i]] != cent[labels[j]] {
			return cent[labels[i]] > cent[labels[j]]
		}
		return labels[i] < labels[j]
	})
	if len(labels) > n {
		labels = labels[:n]
	}
	return labels
}

func concordCommand(opts ConcordOptions, files []string, ui UI) error {
	schema, err := opts.schema()
	if err != nil {
		return err
	}

	searcher, err := concord.New(opts.Words)
	if err != nil {
		return err
	}

	width := opts.Width
	if width <= 0 {
		width = concord.DefaultWidth
	}

	return walkCorpus(files, opts.scanOptions(), ui, func(fileID string, sentNo int, g negra.Grid) error {
		words, err := schema.Extract(g, negra.ColumnWord, true)
		if err != nil {
			return err
		}
		text := strings.Join(words, " ")
		for _, line := range searcher.Concordance(fileID, sentNo, text, width) {
			fmt.Fprintf(ui.Out, "%s %4d  %*s[%s]%s\n", line.FileID, line.SentNo, width, line.Left, line.Hit, line.Right)
		}
		return nil
	})
}

func indexCommand(opts IndexOptions, files []string, ui UI) error {
	schema, err := opts.schema()
	if err != nil {
		return err
	}

	idx, err := store.NewSQLiteStoreWithDSN(opts.DB)
	if err != nil {
		return err
	}
	defer idx.Close()

	// Trees are indexed only when the schema declares the columns tree
	// building needs.
	var tb *negra.TreeBuilder
	if b, err := negra.NewTreeBuilder(schema); err == nil {
		tb = b
	}

	// Start progress indicator
	uiprogress.Start()                   // start rendering
	bar := uiprogress.AddBar(len(files)) // Add a new bar
	bar.AppendCompleted()
	bar.PrependElapsed()
	bar.Set(1)
	// Append file name to the progress bar
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return files[b.Current()-1]
	})

	scanOpts := opts.scanOptions()
	sentences, tokens := 0, 0

	for _, path := range files {
		err := walkFile(path, scanOpts, ui, func(sentNo int, g negra.Grid) error {
			words, err := schema.Extract(g, negra.ColumnWord, true)
			if err != nil {
				return err
			}
			if len(words) == 0 {
				return nil
			}

			lemmas := optColumn(schema, g, negra.ColumnLemma)
			tags := optColumn(schema, g, negra.ColumnPOS)
			morphs := optColumn(schema, g, negra.ColumnMorph)

			tree := ""
			if tb != nil {
				root, err := tb.Build(g)
				if err != nil {
					var malformed *negra.MalformedSentenceError
					if errors.As(err, &malformed) {
						malformed.FileID = path
						malformed.Sent = sentNo
					}
					fprintErr(ui.Err, err)
				} else {
					tree = root.String()
				}
			}

			var profile []float32
			if len(tags) == len(words) && len(tags) > 0 {
				profile = similar.Profile(tags)
			}

			sent := &store.Sentence{
				FileID:     path,
				SentNo:     sentNo,
				Text:       strings.Join(words, " "),
				TokenCount: len(words),
				Tree:       tree,
			}
			toks := make([]store.Token, len(words))
			for i, w := range words {
				toks[i] = store.Token{
					Pos:   i,
					Word:  w,
					Lemma: fieldAt(lemmas, i),
					Tag:   fieldAt(tags, i),
					Morph: fieldAt(morphs, i),
				}
			}

			if _, err := idx.InsertSentence(sent, toks, profile); err != nil {
				return err
			}
			sentences++
			tokens += len(words)
			return nil
		})
		if err != nil {
			uiprogress.Stop()
			return err
		}

		bar.Incr()
	}

	// stop rendering
	uiprogress.Stop()

	fmt.Fprintf(ui.Out, "Indexed %d sentences, %d tokens into %s\n", sentences, tokens, opts.DB)
	return nil
}

func searchCommand(opts SearchOptions, ui UI) error {
	idx, err := store.NewSQLiteStoreWithDSN(opts.DB)
	if err != nil {
		return err
	}
	defer idx.Close()

	occs, err := idx.FindWord(opts.Word, opts.Limit)
	if err != nil {
		return err
	}

	if len(occs) == 0 {
		fmt.Fprintf(ui.Out, "no occurrences of %q\n", opts.Word)
		return nil
	}

	for _, occ := range occs {
		fmt.Fprintf(ui.Out, "%s %d:%d  %s/%s  %s\n", occ.FileID, occ.SentNo, occ.Pos, occ.Word, occ.Tag, occ.Text)
	}
	return nil
}

func similarCommand(opts SimilarOptions, files []string, ui UI) error {
	if opts.DB != "" {
		return similarFromIndex(opts, ui)
	}
	return similarFromCorpus(opts, files, ui)
}

// similarFromIndex queries an existing SQLite index. The query profile
// is recomputed from the stored tags, which reproduces the vector the
// index command inserted.
func similarFromIndex(opts SimilarOptions, ui UI) error {
	idx, err := store.NewSQLiteStoreWithDSN(opts.DB)
	if err != nil {
		return err
	}
	defer idx.Close()

	sent, err := idx.GetSentence(int64(opts.Sent))
	if err != nil {
		return err
	}
	if sent == nil {
		return fmt.Errorf("no sentence with id %d", opts.Sent)
	}

	toks, err := idx.TokensForSentence(sent.ID)
	if err != nil {
		return err
	}
	tags := make([]string, len(toks))
	for i, t := range toks {
		tags[i] = t.Tag
	}

	hits, err := idx.SimilarSentences(similar.Profile(tags), opts.K+1)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "query %d: %s\n", sent.ID, sent.Text)
	shown := 0
	for _, h := range hits {
		if h.SentenceID == sent.ID || shown >= opts.K {
			continue
		}
		other, err := idx.GetSentence(h.SentenceID)
		if err != nil {
			return err
		}
		if other == nil {
			continue
		}
		fmt.Fprintf(ui.Out, "%8.4f  %d  %s\n", h.Distance, other.ID, other.Text)
		shown++
	}
	return nil
}

// similarFromCorpus reads the corpus files directly and builds an
// in-process nearest-neighbour index over their tag profiles. -sent
// counts sentences across all files, 1-based.
func similarFromCorpus(opts SimilarOptions, files []string, ui UI) error {
	schema, err := opts.schema()
	if err != nil {
		return err
	}

	fs, err := mem.NewFS()
	if err != nil {
		return err
	}
	st, err := similar.NewStore(fs, "profiles.idx")
	if err != nil {
		return err
	}

	type corpusSent struct {
		label   string
		text    string
		profile []float32
	}
	var sents []corpusSent

	err = walkCorpus(files, opts.scanOptions(), ui, func(fileID string, sentNo int, g negra.Grid) error {
		words, err := schema.Extract(g, negra.ColumnWord, true)
		if err != nil {
			return err
		}
		tags := optColumn(schema, g, negra.ColumnPOS)

		cs := corpusSent{
			label: fmt.Sprintf("%s %d", fileID, sentNo),
			text:  strings.Join(words, " "),
		}
		if len(words) > 0 && len(tags) == len(words) {
			cs.profile = similar.Profile(tags)
		}

		id := uint32(len(sents))
		sents = append(sents, cs)
		if cs.profile == nil {
			return nil
		}
		return st.Add(id, cs.profile)
	})
	if err != nil {
		return err
	}

	if opts.Sent > len(sents) {
		return fmt.Errorf("corpus has only %d sentences", len(sents))
	}
	query := sents[opts.Sent-1]
	if query.profile == nil {
		return fmt.Errorf("sentence %d has no tag profile", opts.Sent)
	}

	ids, err := st.Search(query.profile, opts.K+1)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "query %s: %s\n", query.label, query.text)
	shown := 0
	for _, id := range ids {
		if int(id) == opts.Sent-1 || shown >= opts.K {
			continue
		}
		fmt.Fprintf(ui.Out, "%s  %s\n", sents[id].label, sents[id].text)
		shown++
	}
	return nil
}
