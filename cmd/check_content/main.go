package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alping/medrefcards/internal/config"
	"github.com/alping/medrefcards/internal/pdf"
	"github.com/alping/medrefcards/internal/scanner"
	"github.com/alping/medrefcards/pkg/logger"
	"github.com/alping/medrefcards/pkg/models"
)

func main() {
	contentDir := flag.String("content", "content", "content root directory")
	locale := flag.String("locale", "en", "content locale")
	frameLayout := flag.String("layout", "default", "frame layout preset the content must fit")
	themeDir := flag.String("theme-dir", "", "directory overriding the built-in presets")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	log := logger.New(logger.WithPrefix("[check_content] "), logger.WithFlags(0))
	log.SetVerbose(*verbose)

	spec, err := config.New(*themeDir, log).Layout(*frameLayout)
	if err != nil {
		log.Fatal("Error loading layout: %v", err)
	}
	panel := models.PageDimensions{Width: spec.Content().Width, Height: spec.Content().Height}

	root := filepath.Join(*contentDir, *locale)
	records, err := scanner.New(log).LoadRecords(context.Background(), root)
	if err != nil {
		log.Fatal("Error loading cards: %v", err)
	}

	resolver := pdf.NewContentResolver(log)
	problems := 0
	for _, rec := range records {
		for _, ref := range []*string{rec.FrontContent, rec.BackContent} {
			if ref == nil {
				continue
			}
			content, ok := resolver.Resolve(*ref)
			switch {
			case !ok:
				problems++
				fmt.Printf("MISSING  %s\n", *ref)
			case !pdf.MatchesDimensions(content.Size, panel):
				problems++
				fmt.Printf("SIZE     %s: %.2f x %.2f cm, want %.2f x %.2f cm\n",
					*ref, content.Size.Width, content.Size.Height, panel.Width, panel.Height)
			default:
				log.Debug("OK %s", *ref)
			}
		}
	}

	fmt.Printf("\nChecked %d cards against a %.2f x %.2f cm panel: %d problems\n",
		len(records), panel.Width, panel.Height, problems)
	if problems > 0 {
		os.Exit(1)
	}
}
