package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pixelsprint/adforge/pkg/clients"
	"github.com/pixelsprint/adforge/pkg/config"
	"github.com/pixelsprint/adforge/pkg/intel"
	"github.com/pixelsprint/adforge/pkg/media"
	"github.com/pixelsprint/adforge/pkg/tasks"
)

var (
	description string
	mediaType   string
	aspect      string
	style       string
	outFile     string

	product     string
	shortDesc   string
	audience    string
	objective   string
	price       string
	competitors []string
)

func main() {
	// Setup structured logging
	handler := slog.NewTextHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(handler))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, as long as env vars are set
	}

	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "adforge",
		Short: "A terminal-based ad content generator",
		Long:  `AdForge generates marketing assets from the command line: competitive research reports and AI-generated ad images or videos.`,
	}

	mediaCmd := &cobra.Command{
		Use:   "media [description]",
		Short: "Generate an ad image or image-to-video clip",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				description = args[0]
			}
			if description == "" && !cmd.Flags().Changed("description") {
				// Interactive Mode
				reader := bufio.NewReader(os.Stdin)

				fmt.Print("Describe the ad visual: ")
				input, _ := reader.ReadString('\n')
				description = strings.TrimSpace(input)
			}
			if description == "" {
				slog.Error("Description cannot be empty")
				os.Exit(1)
			}

			mode := media.ModeImage
			if mediaType == "video" {
				mode = media.ModeImageAndVideo
			}

			freepik, err := clients.NewFreepik()
			if err != nil {
				slog.Error("Failed to init media provider", "error", err)
				os.Exit(1)
			}

			pipeline := media.NewPipeline(freepik)
			pipeline.ImagePolicy = tasks.Policy{Interval: cfg.ImagePollInterval, MaxAttempts: cfg.ImagePollAttempts}
			pipeline.VideoPolicy = tasks.Policy{Interval: cfg.VideoPollInterval, MaxAttempts: cfg.VideoPollAttempts}

			slog.Info("Producing media", "mode", mode, "aspect", aspect)
			result, err := pipeline.Produce(context.Background(), media.Request{
				Description: description,
				Mode:        mode,
				Aspect:      aspect,
				Style:       style,
			})
			if err != nil {
				slog.Error("Media production failed", "error", err)
				os.Exit(1)
			}

			writeResult(result)
		},
	}
	mediaCmd.Flags().StringVarP(&description, "description", "d", "", "What the ad visual should show")
	mediaCmd.Flags().StringVarP(&mediaType, "type", "t", "image", "Media type: image or video")
	mediaCmd.Flags().StringVarP(&aspect, "aspect", "a", "", "Aspect preset: widescreen, square, story or traditional")
	mediaCmd.Flags().StringVarP(&style, "style", "s", "", "Visual style hint passed to the provider")
	mediaCmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the result JSON to this file instead of stdout")

	researchCmd := &cobra.Command{
		Use:   "research",
		Short: "Run competitive research for a product",
		Run: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("product") {
				// Interactive Mode
				reader := bufio.NewReader(os.Stdin)

				fmt.Print("Enter product name: ")
				input, _ := reader.ReadString('\n')
				product = strings.TrimSpace(input)

				fmt.Print("Short description: ")
				input, _ = reader.ReadString('\n')
				shortDesc = strings.TrimSpace(input)
			}
			if product == "" {
				slog.Error("Product cannot be empty")
				os.Exit(1)
			}

			linkup, err := clients.NewLinkup()
			if err != nil {
				slog.Error("Failed to init search client", "error", err)
				os.Exit(1)
			}

			subject := intel.Subject{
				Product:          product,
				ShortDescription: shortDesc,
				TargetAudience:   audience,
				Objective:        objective,
				Price:            price,
				Competitors:      competitors,
			}

			agg := intel.NewAggregator()
			agg.Concurrency = cfg.ResearchWorkers

			slog.Info("Starting research", "product", product, "competitors", len(competitors))
			report := agg.Research(context.Background(), subject, linkup.Answer)
			slog.Info("Research finished", "data_quality", report.DataQuality)

			writeResult(report)
		},
	}
	researchCmd.Flags().StringVarP(&product, "product", "p", "", "The product to research")
	researchCmd.Flags().StringVarP(&shortDesc, "description", "d", "", "Short product description")
	researchCmd.Flags().StringVar(&audience, "audience", "", "Target audience")
	researchCmd.Flags().StringVar(&objective, "objective", "", "Campaign objective")
	researchCmd.Flags().StringVar(&price, "price", "", "Product price point")
	researchCmd.Flags().StringSliceVarP(&competitors, "competitor", "c", nil, "Known competitor (repeatable)")
	researchCmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the report JSON to this file instead of stdout")

	rootCmd.AddCommand(mediaCmd, researchCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

func writeResult(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal result", "error", err)
		os.Exit(1)
	}

	if outFile == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		slog.Error("Failed to write output file", "error", err)
		os.Exit(1)
	}
	slog.Info("Result written", "file", outFile)
}
