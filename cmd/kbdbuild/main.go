/*
Command kbdbuild is the offline dictionary builder: it turns a plain
word-frequency list into the three binary resources the decoding engine
loads at startup — a minimal word graph, a template store of resampled
key-centre paths, and a unigram language-model table.

	kbdbuild -words wordfreq.txt -out data/

wordfreq.txt is one "word<TAB>frequency" pair per line; blank lines and
lines starting with # are skipped. Words shorter than the configured
minimum length are dropped, and the list is truncated to the configured
maximum vocabulary size (by descending frequency) before the graph is
built, since a longer tail only grows decode-time memory without moving
the geometric or language scores that matter.

By default the surviving word list is sorted before the graph is built.
-strict skips that sort and fails the build if the list is not in
lexicographic order. At that point the list is in descending-frequency
order (ties by word), not in the input file's line order, so -strict
succeeds only when that frequency order is itself lexicographic; sorting
the input file does not help.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/glidetype/inputengine/pkg/config"
	"github.com/glidetype/inputengine/pkg/graphbuilder"
	"github.com/glidetype/inputengine/pkg/langmodel"
	"github.com/glidetype/inputengine/pkg/layout"
	"github.com/glidetype/inputengine/pkg/template"
	"github.com/glidetype/inputengine/pkg/wordgraph"
)

const (
	Version = "0.1.0"
	AppName = "kbdbuild"
)

func main() {
	defaultCfg := config.DefaultConfig()

	wordsPath := flag.String("words", "", "Path to a word-frequency list (word<TAB>frequency per line)")
	outDir := flag.String("out", "data/", "Directory to write the built binary resources into")
	configPath := flag.String("config", "", "Path to a config.toml (default search order if omitted)")
	minWordLength := flag.Int("min-word-length", defaultCfg.Dict.MinWordLength, "Minimum word length to include")
	maxVocabulary := flag.Int("max-vocabulary", defaultCfg.Dict.MaxVocabulary, "Maximum number of words to include, by descending frequency")
	resampleN := flag.Int("resample-n", defaultCfg.Decoder.ResampleN, "Template point count")
	strict := flag.Bool("strict", false, "Reject a word list that isn't already sorted instead of sorting it")
	debugMode := flag.Bool("d", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show current version")

	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", AppName, Version)
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	if *wordsPath == "" {
		log.Fatal("missing required -words flag")
	}

	cfg, usedPath, err := config.LoadWithPriority(*configPath)
	if err != nil {
		log.Warnf("failed to load config: %v, using defaults", err)
		cfg = defaultCfg
	}
	if usedPath != "" {
		log.Debugf("loaded config from %s", usedPath)
	}
	if *minWordLength != defaultCfg.Dict.MinWordLength {
		cfg.Dict.MinWordLength = *minWordLength
	}
	if *maxVocabulary != defaultCfg.Dict.MaxVocabulary {
		cfg.Dict.MaxVocabulary = *maxVocabulary
	}

	freq, err := readWordFrequencies(*wordsPath, cfg.Dict.MinWordLength)
	if err != nil {
		log.Fatalf("reading word list: %v", err)
	}
	log.Infof("read %d candidate words from %s", len(freq), *wordsPath)

	words := truncateToVocabulary(freq, cfg.Dict.MaxVocabulary)
	log.Infof("kept %d words after vocabulary cap", len(words))

	var g *wordgraph.Graph
	if *strict {
		g, err = graphbuilder.Build(words)
		if err != nil {
			log.Fatalf("building word graph (strict, list must already be sorted): %v", err)
		}
	} else {
		var sorted []string
		g, sorted = graphbuilder.BuildSorted(words)
		words = sorted
	}
	stats := g.Stats()
	log.Infof("built word graph: %d nodes, %d words, max out-degree %d", stats.NodeCount, stats.WordCount, stats.MaxOutDegree)

	l := layout.QWERTY()
	store, buildStats := template.Build(g, l, *resampleN)
	log.Infof("built %d templates, skipped %d of %d words", len(store.Templates), buildStats.Skipped, buildStats.Considered)
	if len(buildStats.SkippedWords) > 0 {
		log.Debugf("sample of skipped words: %v", buildStats.SkippedWords[:min(10, len(buildStats.SkippedWords))])
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating output dir: %v", err)
	}

	if err := writeFile(filepath.Join(*outDir, "graph.bin"), g.Save); err != nil {
		log.Fatalf("writing graph: %v", err)
	}
	if err := writeFile(filepath.Join(*outDir, "templates.bin"), store.Save); err != nil {
		log.Fatalf("writing templates: %v", err)
	}
	if err := writeFile(filepath.Join(*outDir, "unigram.bin"), func(w io.Writer) error {
		return langmodel.SaveUnigramTable(w, freq)
	}); err != nil {
		log.Fatalf("writing unigram table: %v", err)
	}

	log.Info("build complete")
	log.Infof("output dir: %s", *outDir)
}

// readWordFrequencies parses a "word<TAB>frequency" list, skipping blank
// lines, comment lines starting with #, and words shorter than minLen.
func readWordFrequencies(path string, minLen int) (map[string]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	freq := make(map[string]uint32)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			log.Warnf("%s:%d: expected \"word<TAB>frequency\", skipping: %q", path, lineNo, line)
			continue
		}

		word := strings.ToLower(fields[0])
		if len(word) < minLen {
			continue
		}

		count, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			log.Warnf("%s:%d: invalid frequency %q, skipping", path, lineNo, fields[1])
			continue
		}

		freq[word] += uint32(count)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return freq, nil
}

// truncateToVocabulary sorts freq's keys by descending frequency and
// returns at most max of them. max <= 0 means unlimited.
func truncateToVocabulary(freq map[string]uint32, max int) []string {
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if max > 0 && len(words) > max {
		dropped := words[max:]
		for _, w := range dropped {
			delete(freq, w)
		}
		words = words[:max]
	}
	return words
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
