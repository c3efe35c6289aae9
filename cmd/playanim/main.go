package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ivlev/playanim/internal/config"
	"github.com/ivlev/playanim/internal/engine"
	"github.com/ivlev/playanim/internal/system"
	"github.com/ivlev/playanim/internal/video"
)

func main() {
	inputPtr := flag.String("input", "", "Tracking CSV (.csv or .csv.gz); default: newest file in input/")
	outputPtr := flag.String("output", "output", "Output directory")
	formatPtr := flag.String("format", "gif", "Output format: gif, mp4")
	gamePtr := flag.Int64("game", 0, "Game id to animate (0 = all)")
	playPtr := flag.Int64("play", 0, "Play id to animate (0 = all)")
	stylePtr := flag.String("style", "", "YAML style file")
	dpiPtr := flag.Int("dpi", 0, "Override style DPI")
	tweenPtr := flag.Int("tween", 0, "In-between frames per tracking frame")
	easingPtr := flag.String("easing", "linear", "Tween easing: linear, quad, cubic")
	workersPtr := flag.Int("workers", system.DefaultWorkers(), "Plays animated in parallel")
	fpsPtr := flag.Int("fps", 0, "MP4 output frame rate (0 = animation rate)")
	qualityPtr := flag.Int("quality", 0, "MP4 quality (0 = encoder default)")
	statsPtr := flag.Bool("stats", false, "Print performance report")
	dumpStylePtr := flag.String("dump-style", "", "Write the effective style to this YAML file and exit")

	flag.Parse()

	style := config.DefaultStyle()
	if *stylePtr != "" {
		var err error
		style, err = config.LoadStyle(*stylePtr)
		if err != nil {
			log.Fatalf("[-] Style error: %v", err)
		}
	}
	if *dpiPtr > 0 {
		style.DPI = *dpiPtr
	}
	if err := style.Validate(); err != nil {
		log.Fatalf("[-] Style error: %v", err)
	}

	if *dumpStylePtr != "" {
		if err := config.WriteStyle(style, *dumpStylePtr); err != nil {
			log.Fatalf("[-] Could not write style: %v", err)
		}
		fmt.Printf("[+++] Style written: %s\n", *dumpStylePtr)
		return
	}

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestCSV("input")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a tracking CSV into input/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Selected file: %s\n", inputPath)
	}

	encoderName := ""
	if *formatPtr == "mp4" {
		encoderName = system.GetBestH264Encoder()
		if encoderName != "libx264" {
			fmt.Printf("[*] Hardware acceleration detected: %s\n", encoderName)
		}
	}

	cfg := &config.Config{
		InputPath:    inputPath,
		OutputDir:    *outputPtr,
		Format:       *formatPtr,
		GameID:       *gamePtr,
		PlayID:       *playPtr,
		Tween:        *tweenPtr,
		Easing:       *easingPtr,
		Workers:      *workersPtr,
		FPS:          *fpsPtr,
		VideoEncoder: encoderName,
		Quality:      *qualityPtr,
		ShowStats:    *statsPtr,
		Style:        style,
	}

	enc, err := video.ForFormat(cfg.Format, video.Options{
		Workers: cfg.Workers,
		FPS:     cfg.FPS,
		Codec:   cfg.VideoEncoder,
		Quality: cfg.Quality,
	})
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewProject(cfg, enc)
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}

	fmt.Printf("[+++] Done! Output: %s\n", cfg.OutputDir)
}
