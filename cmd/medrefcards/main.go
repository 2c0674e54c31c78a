package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alping/medrefcards/internal/cardgen"
	"github.com/alping/medrefcards/internal/deck"
	"github.com/alping/medrefcards/internal/layout"
	"github.com/alping/medrefcards/pkg/logger"
	"github.com/alping/medrefcards/pkg/version"
)

func main() {
	colourScheme := flag.String("colour-scheme", "default", "colour scheme preset")
	frameLayout := flag.String("layout", "default", "frame layout preset")
	locale := flag.String("locale", "en", "content locale")
	filter := flag.String("filter", "all", "card filter, e.g. \"domain=cardiology,trauma category!=pediatric\"")
	contentDir := flag.String("content", "content", "content root directory")
	outputDir := flag.String("output", "pdf", "output directory")
	name := flag.String("name", "", "output file name without extension (default medical-reference-cards-<arrangement>)")
	title := flag.String("title", "", "document title")
	arrangements := flag.String("arrangement", "", "comma separated arrangements to render: spread, single, four-up (overrides the layout)")
	sortKey := flag.String("sort", "domain", "sort cards by domain or category")
	reverse := flag.Bool("reverse", false, "reverse the sort order")
	themeDir := flag.String("theme-dir", "", "directory with frame-layouts/ and colour-schemes/ overriding the built-in presets")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	licence := flag.Bool("licence", false, "print licence and exit")
	flag.Parse()

	if *licence {
		fmt.Print(version.Licence)
		return
	}
	if *showVersion {
		fmt.Print(version.GetDetailedVersionInfo())
		return
	}

	log := logger.New(logger.WithPrefix("[medrefcards] "))
	log.SetVerbose(*verbose)
	if *debug {
		log.SetLevel(logger.LevelTrace)
	}
	log.Debug("Verbose logging enabled")

	key, err := deck.ParseSortKey(*sortKey)
	if err != nil {
		log.Fatal("Invalid -sort: %v", err)
	}

	var requested []layout.Arrangement
	for _, a := range strings.Split(*arrangements, ",") {
		if a = strings.TrimSpace(a); a == "" {
			continue
		}
		parsed, err := layout.ParseArrangement(a)
		if err != nil {
			log.Fatal("Invalid -arrangement: %v", err)
		}
		requested = append(requested, parsed)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	results, err := cardgen.New(log).GenerateAll(ctx, cardgen.Options{
		ContentRoot:  *contentDir,
		OutputDir:    *outputDir,
		ThemeDir:     *themeDir,
		Locale:       *locale,
		Layout:       *frameLayout,
		ColourScheme: *colourScheme,
		Filter:       *filter,
		Sort:         key,
		Reverse:      *reverse,
		Title:        *title,
		Name:         *name,
		Arrangements: requested,
	})
	if err != nil {
		log.Fatal("Error generating cards: %v", err)
	}

	for _, r := range results {
		r.Report.Print(log)
		log.Info("- Saved to: %s", r.Path)
	}
}
