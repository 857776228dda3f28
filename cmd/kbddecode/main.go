/*
Command kbddecode is an interactive REPL for exercising the swipe decoder
without a real touch host: it loads the binary resources kbdbuild
produces and decodes gestures typed at a terminal.

	kbddecode -data data/

Each line of input is either:

  - a bare word, e.g. "query" — traced across its own ideal key centres,
    the same path template.Build would have generated for it, useful for
    sanity-checking the pipeline end to end without a touchscreen; or
  - an explicit path, "x1,y1 x2,y2 x3,y3 ..." in normalised [0,1]^2
    coordinates, for probing specific geometries by hand.

Ctrl+C or an empty line followed by EOF exits.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/glidetype/inputengine/internal/geo"
	"github.com/glidetype/inputengine/pkg/config"
	"github.com/glidetype/inputengine/pkg/decoder"
	"github.com/glidetype/inputengine/pkg/langmodel"
	"github.com/glidetype/inputengine/pkg/layout"
	"github.com/glidetype/inputengine/pkg/template"
	"github.com/glidetype/inputengine/pkg/wordgraph"
)

const (
	Version = "0.1.0"
	AppName = "kbddecode"
)

func main() {
	dataDir := flag.String("data", "data/", "Directory containing graph.bin, templates.bin and unigram.bin")
	configPath := flag.String("config", "", "Path to a config.toml (default search order if omitted)")
	scorerDB := flag.String("scorer-db", "", "Path to a SQLite word-frequency database, in place of unigram.bin")
	debugMode := flag.Bool("d", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show current version")

	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", AppName, Version)
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, _, err := config.LoadWithPriority(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	g, err := loadGraph(filepath.Join(*dataDir, "graph.bin"))
	if err != nil {
		log.Fatalf("loading graph: %v", err)
	}
	store, err := loadTemplates(filepath.Join(*dataDir, "templates.bin"))
	if err != nil {
		log.Fatalf("loading templates: %v", err)
	}
	idx := template.BuildEndpointIndex(store)

	dbPath := *scorerDB
	if dbPath == "" {
		dbPath = cfg.Scorer.DBPath
	}
	scorer, closeScorer := loadScorer(dbPath, filepath.Join(*dataDir, "unigram.bin"))
	if closeScorer != nil {
		defer closeScorer()
	}

	l := layout.QWERTY()
	opts := decoder.Options{
		ResampleN:      cfg.Decoder.ResampleN,
		EndpointRadius: cfg.Decoder.EndpointRadius,
		BandWidth:      cfg.Decoder.BandWidth,
		GeometricTopN:  cfg.Decoder.GeometricTopN,
		FinalTopN:      cfg.Decoder.FinalTopN,
	}
	d := decoder.New(g, store, idx, l, scorer, opts)

	showBanner(len(g.Words), len(store.Templates))
	runREPL(d, l)
}

func runREPL(d *decoder.Decoder, l layout.Layout) {
	reader := bufio.NewReader(os.Stdin)
	prompt := lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)

	for {
		fmt.Print(prompt.Render("swipe> "))
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		path, err := parseLine(line, l)
		if err != nil {
			log.Errorf("%v", err)
			continue
		}

		start := time.Now()
		results := d.Decode(path, "")
		elapsed := time.Since(start)

		printResults(results, elapsed)
	}
}

// parseLine interprets a bare word as its own ideal key-centre path, or an
// explicit "x,y x,y ..." coordinate list otherwise.
func parseLine(line string, l layout.Layout) ([]geo.Point, error) {
	if isBareWord(line) {
		return wordPath(line, l)
	}
	return parseCoordPath(line)
}

func isBareWord(s string) bool {
	for _, c := range s {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return len(s) > 0
}

func wordPath(word string, l layout.Layout) ([]geo.Point, error) {
	pts := make([]geo.Point, 0, len(word))
	for _, c := range word {
		p, ok := l.Center(unicode.ToLower(c))
		if !ok {
			return nil, fmt.Errorf("no key centre for %q", c)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func parseCoordPath(line string) ([]geo.Point, error) {
	fields := strings.Fields(line)
	pts := make([]geo.Point, 0, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad coordinate %q, expected x,y", f)
		}
		x, err := strconv.ParseFloat(parts[0], 32)
		if err != nil {
			return nil, fmt.Errorf("bad x in %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(parts[1], 32)
		if err != nil {
			return nil, fmt.Errorf("bad y in %q: %w", f, err)
		}
		pts = append(pts, geo.Clamp01(geo.Point{X: float32(x), Y: float32(y)}))
	}
	return pts, nil
}

func printResults(results []decoder.Candidate, elapsed time.Duration) {
	if len(results) == 0 {
		log.Warn("no candidates")
		return
	}

	word := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

	fmt.Println(dim.Render(fmt.Sprintf("  %d candidates in %v", len(results), elapsed)))
	for i, r := range results {
		fmt.Printf("  %2d. %-20s %s\n", i+1, word.Render(r.Word),
			dim.Render(fmt.Sprintf("combined=%.3f geo=%.3f lang=%.3f", r.Combined, r.Geometric, r.Language)))
	}
}

func showBanner(wordCount, templateCount int) {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	fmt.Println(title.Render("=== kbddecode ==="))
	log.Infof("dictionary: %d words, %d templates", wordCount, templateCount)
	log.Info("type a word or an explicit coordinate path, Ctrl+C to exit")
}

func loadGraph(path string) (*wordgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return wordgraph.Load(f)
}

func loadTemplates(path string) (*template.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return template.Load(f)
}

// loadScorer prefers a SQLite word-frequency database at dbPath when one is
// given, then falls back to the persisted unigram table at unigramPath, then
// to a NeutralScorer so a bare graph/store pair still runs with no language
// model at all. Either backend is wrapped with recency-aware context
// boosting. The returned closer is non-nil only for the SQLite backend, and
// must be called once the scorer is no longer needed to release the
// underlying connection.
func loadScorer(dbPath, unigramPath string) (scorer langmodel.Scorer, closer func() error) {
	if dbPath != "" {
		s, err := langmodel.OpenSQLiteScorer(dbPath)
		if err != nil {
			log.Warnf("failed to open scorer database %s: %v, falling back to unigram table", dbPath, err)
		} else {
			return langmodel.NewContextAwareScorer(s), s.Close
		}
	}

	f, err := os.Open(unigramPath)
	if err != nil {
		log.Warnf("no unigram table at %s, scoring geometry only: %v", unigramPath, err)
		return langmodel.NewNeutralScorer(), nil
	}
	defer f.Close()

	base, err := langmodel.LoadUnigramTable(f)
	if err != nil {
		log.Warnf("failed to load unigram table: %v, scoring geometry only", err)
		return langmodel.NewNeutralScorer(), nil
	}
	return langmodel.NewContextAwareScorer(base), nil
}
