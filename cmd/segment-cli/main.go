package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/concierge/internal/logger"
	"github.com/cognicore/concierge/pkg/concierge/config"
	"github.com/cognicore/concierge/pkg/concierge/segment"
)

const (
	modeTiered   = "tiered"
	modeMaxMatch = "maxmatch"
	modeCoarse   = "coarse"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		dictPath   = flag.String("dict", "", "Dictionary asset, overrides config")
		mode       = flag.String("mode", modeTiered, "Segmenter: tiered | maxmatch | coarse")
		text       = flag.String("text", "", "Text to segment (reads stdin lines otherwise)")
		stream     = flag.Bool("stream", false, "Treat stdin lines as chunks of one growing text")
		words      = flag.Bool("words", false, "Print only term tokens, one line per input")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if *dictPath != "" {
		cfg.Dictionary = *dictPath
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	loader := config.Loader{DictPath: cfg.Dictionary}
	comp, err := loader.Load()
	if err != nil {
		log.Fatal("load dictionary", zap.Error(err))
	}
	log.Debug("dictionary loaded",
		zap.String("path", cfg.Dictionary),
		zap.String("version", comp.DictVersion),
		zap.Int("entries", comp.Index.Len()),
		zap.Int("maxLen", comp.Index.MaxLen()))

	seg, err := pickSegmenter(*mode, comp)
	if err != nil {
		log.Fatal("segmenter", zap.Error(err))
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *text != "" {
		printTokens(out, seg.Segment(*text), *words)
		return
	}
	if *stream {
		streamChunks(os.Stdin, out, segment.NewMaxMatch(comp.Index))
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		printTokens(out, seg.Segment(scanner.Text()), *words)
	}
	if err := scanner.Err(); err != nil {
		log.Error("read stdin", zap.Error(err))
	}
}

func pickSegmenter(mode string, comp *config.Components) (segment.Segmenter, error) {
	switch strings.ToLower(mode) {
	case modeTiered, "":
		return comp.Segmenter, nil
	case modeMaxMatch:
		return segment.NewMaxMatch(comp.Index), nil
	case modeCoarse:
		return segment.Coarse{}, nil
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

func printTokens(w io.Writer, tokens []segment.Token, wordsOnly bool) {
	if wordsOnly {
		fmt.Fprintln(w, strings.Join(segment.Words(tokens), " | "))
		return
	}
	for _, tok := range tokens {
		if tok.Kind == segment.KindSpace {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", tok.Offset, tok.Kind, tok.Text, tok.Norm)
	}
}

// streamChunks emits each chunk's settled tokens and carries the pending
// suffix into the next chunk, flushing it at end of input.
func streamChunks(r io.Reader, w io.Writer, mm *segment.MaxMatch) {
	scanner := bufio.NewScanner(r)
	pending := ""
	for scanner.Scan() {
		buf := pending + scanner.Text()
		var tokens []segment.Token
		tokens, pending = mm.SegmentPartial(buf)
		fmt.Fprintln(w, segment.Join(tokens))
	}
	if pending != "" {
		fmt.Fprintln(w, segment.Join(mm.Segment(pending)))
	}
}
