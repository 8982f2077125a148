package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tornado-product/fusion-media-provider/internal/app"
	"github.com/tornado-product/fusion-media-provider/internal/domain"
	"github.com/tornado-product/fusion-media-provider/internal/infrastructure"
	"github.com/tornado-product/fusion-media-provider/pkg/logger"
)

var (
	configPath string
	mediaType  string
	rootCmd    = &cobra.Command{
		Use:   "fusion-media",
		Short: "Fusion Media CLI - Search and download stock media",
		Long:  `A command-line interface for searching and downloading stock media from Pixabay and Pexels.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&mediaType, "type", "t", "image", "Media type (image, video)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(providersCmd)
}

// buildApp wires the aggregator and downloader from configuration
func buildApp() (*domain.Config, *app.Aggregator, *app.Downloader, error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(logger.Config{
		Level:      "warn",
		Format:     "console",
		OutputPath: "stderr",
	})
	if err != nil {
		return nil, nil, nil, err
	}

	providers, err := infrastructure.ConfiguredProviders(config.Providers)
	if err != nil {
		return nil, nil, nil, err
	}

	aggregator := app.NewAggregator(log)
	for _, provider := range providers {
		aggregator.Register(provider)
	}

	downloader := app.NewDownloader(aggregator, config.Download, log)
	return config, aggregator, downloader, nil
}

func parseMediaType() domain.MediaType {
	parsed, err := domain.ParseMediaType(mediaType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return parsed
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search all configured providers",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, aggregator, _, err := buildApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		perPage, _ := cmd.Flags().GetInt("per-page")
		page, _ := cmd.Flags().GetInt("page")
		providerName, _ := cmd.Flags().GetString("provider")

		params := domain.NewSearchParams(args[0], parseMediaType()).
			WithLimit(perPage).
			WithPage(page)

		var items []domain.MediaItem
		if providerName != "" {
			result, err := aggregator.SearchFromProvider(context.Background(), providerName, params)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			items = result.Items
			fmt.Printf("%d results from %s (page %d of %d)\n\n",
				result.Total, result.Provider, result.Page, result.TotalPages)
		} else {
			result, err := aggregator.Search(context.Background(), params)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			items = result.Items
			fmt.Printf("%d results across %d providers\n\n",
				result.Total, len(result.ProviderResults))
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPROVIDER\tTITLE\tAUTHOR\tSIZE")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%d\n",
				item.ID,
				item.Provider,
				truncate(item.Title, 40),
				truncate(item.Author, 20),
				item.Metadata.Width,
				item.Metadata.Height)
		}
		w.Flush()
	},
}

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show details for a media item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, aggregator, _, err := buildApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		providerName, _ := cmd.Flags().GetString("provider")

		var item *domain.MediaItem
		if providerName != "" {
			item, err = aggregator.GetMediaFromProvider(context.Background(), providerName, args[0], parseMediaType())
		} else {
			item, err = aggregator.GetMedia(context.Background(), args[0], parseMediaType())
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Media Details:\n")
		fmt.Printf("  ID:       %s\n", item.ID)
		fmt.Printf("  Type:     %s\n", item.MediaType)
		fmt.Printf("  Provider: %s\n", item.Provider)
		fmt.Printf("  Title:    %s\n", item.Title)
		fmt.Printf("  Author:   %s\n", item.Author)
		fmt.Printf("  Source:   %s\n", item.SourceURL)
		fmt.Printf("  Size:     %dx%d\n", item.Metadata.Width, item.Metadata.Height)
		if item.MediaType == domain.MediaTypeVideo {
			fmt.Printf("  Duration: %ds\n", item.Metadata.Duration)
			for _, f := range item.Urls.VideoFiles {
				fmt.Printf("    %s: %dx%d %s\n", f.Quality, f.Width, f.Height, domain.FormatBytes(f.Size))
			}
		}
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download [id...]",
	Short: "Download media items by id",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, aggregator, _, err := buildApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		providerName, _ := cmd.Flags().GetString("provider")
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			config.Download.OutputDir = output
		}
		if q, _ := cmd.Flags().GetString("image-quality"); q != "" {
			parsed, err := domain.ParseImageQuality(q)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			config.Download.ImageQuality = parsed
		}
		if q, _ := cmd.Flags().GetString("video-quality"); q != "" {
			parsed, err := domain.ParseVideoQuality(q)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			config.Download.VideoQuality = parsed
		}
		if n, _ := cmd.Flags().GetInt("concurrent"); n > 0 {
			config.Download.MaxConcurrent = n
		}

		mt := parseMediaType()
		ctx := context.Background()

		items := make([]domain.MediaItem, 0, len(args))
		for _, id := range args {
			var item *domain.MediaItem
			if providerName != "" {
				item, err = aggregator.GetMediaFromProvider(ctx, providerName, id, mt)
			} else {
				item, err = aggregator.GetMedia(ctx, id, mt)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error resolving %s: %v\n", id, err)
				os.Exit(1)
			}
			items = append(items, *item)
		}

		downloader := app.NewDownloader(aggregator, config.Download, zap.NewNop())
		results := downloader.DownloadItemsWithBatchProgress(ctx, items, printBatchProgress)
		fmt.Println()

		failed := 0
		for i, res := range results {
			if res.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "Failed %s: %v\n", items[i].ID, res.Err)
				continue
			}
			fmt.Printf("Saved %s\n", res.Path)
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured providers",
	Run: func(cmd *cobra.Command, args []string) {
		_, aggregator, _, err := buildApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, p := range aggregator.Providers() {
			fmt.Println(p.Name())
		}
	},
}

// printBatchProgress renders one overwriting status line for the batch
func printBatchProgress(batch domain.BatchDownloadProgress) {
	fmt.Printf("\r%d/%d done (%d failed) %.1f%%   ",
		batch.CompletedItems,
		batch.TotalItems,
		batch.FailedItems,
		batch.OverallPercentage)
}

func init() {
	searchCmd.Flags().IntP("per-page", "n", 20, "Results per page")
	searchCmd.Flags().IntP("page", "p", 1, "Page number")
	searchCmd.Flags().String("provider", "", "Search a single provider")
	getCmd.Flags().String("provider", "", "Look up from a single provider")
	downloadCmd.Flags().String("provider", "", "Resolve ids from a single provider")
	downloadCmd.Flags().StringP("output", "o", "", "Output directory")
	downloadCmd.Flags().String("image-quality", "", "Preferred image quality (thumbnail, medium, large, original)")
	downloadCmd.Flags().String("video-quality", "", "Preferred video quality (tiny, small, medium, large)")
	downloadCmd.Flags().IntP("concurrent", "c", 0, "Max concurrent downloads")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
