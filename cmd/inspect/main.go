package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/alping/medrefcards/internal/pdf"
	"github.com/alping/medrefcards/pkg/utils"
)

func main() {
	renderDir := flag.String("render", "", "write PNG renders of every page to this directory")
	showText := flag.Bool("text", false, "print the text of every page")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: inspect [-render dir] [-text] deck.pdf")
		os.Exit(1)
	}

	doc, err := fitz.New(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error opening PDF: %v\n", err)
		os.Exit(1)
	}
	defer doc.Close()

	fmt.Printf("Pages: %d\n", doc.NumPage())

	toc, err := doc.ToC()
	if err != nil {
		fmt.Printf("Error reading outline: %v\n", err)
	} else {
		fmt.Printf("\nOutline (%d entries):\n", len(toc))
		for _, o := range toc {
			fmt.Printf("%s%s  [page %d]\n", strings.Repeat("  ", max(o.Level-1, 0)), o.Title, o.Page+1)
		}
	}

	if *renderDir != "" {
		if err := os.MkdirAll(*renderDir, 0755); err != nil {
			fmt.Printf("Error creating render directory: %v\n", err)
			os.Exit(1)
		}
	}

	for n := 0; n < doc.NumPage(); n++ {
		fmt.Printf("\nPage %d:\n", n+1)

		bounds, err := doc.Bound(n)
		if err != nil {
			fmt.Printf("Error reading page bounds: %v\n", err)
			continue
		}
		fmt.Printf("Dimensions: %.2f x %.2f cm\n",
			float64(bounds.Dx())/pdf.PointsPerCm, float64(bounds.Dy())/pdf.PointsPerCm)

		if *showText {
			text, _ := doc.Text(n)
			fmt.Printf("Text:\n%s\n", text)
		}

		if *renderDir == "" {
			continue
		}

		img, err := doc.Image(n)
		if err != nil {
			fmt.Printf("Error rendering page: %v\n", err)
			continue
		}

		imgPath := filepath.Join(*renderDir, fmt.Sprintf("page%03d.png", n+1))
		f, err := os.Create(imgPath)
		if err != nil {
			fmt.Printf("Error creating %s: %v\n", imgPath, err)
			continue
		}
		err = png.Encode(f, img)
		f.Close()
		if err != nil {
			fmt.Printf("Error writing %s: %v\n", imgPath, err)
			continue
		}

		fmt.Printf("Render: %s\n", imgPath)
		fmt.Printf("Hash:   %s\n", utils.ImageHash(img))
	}
}
