// Command blogrank analyzes a Naver blog post's search exposure: it
// extracts candidate keywords, probes the blog search API for the
// post's organic rank per keyword, and reports the best-performing
// keyword with its grade.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"blogrank-go/internal/config"
	"blogrank-go/internal/service"
	"blogrank-go/pkg/logger"
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load()

	var (
		postURL      = flag.String("url", "", "Naver blog post URL to analyze")
		blogID       = flag.String("blog", "", "Blog ID: analyze its recent posts instead of a single URL")
		count        = flag.Int("count", getEnvIntOrDefault("BLOGRANK_ANALYZER_RECENT_COUNT", 5), "Recent posts to analyze with -blog")
		clientID     = flag.String("client-id", getEnvOrDefault("BLOGRANK_SEARCH_CLIENT_ID", ""), "Naver OpenAPI client id")
		clientSecret = flag.String("client-secret", getEnvOrDefault("BLOGRANK_SEARCH_CLIENT_SECRET", ""), "Naver OpenAPI client secret")
		adAPIKey     = flag.String("ad-api-key", getEnvOrDefault("BLOGRANK_SEARCHAD_API_KEY", ""), "SearchAd API key (optional)")
		adSecret     = flag.String("ad-secret", getEnvOrDefault("BLOGRANK_SEARCHAD_SECRET_KEY", ""), "SearchAd secret key (optional)")
		adCustomer   = flag.String("ad-customer", getEnvOrDefault("BLOGRANK_SEARCHAD_CUSTOMER_ID", ""), "SearchAd customer id (optional)")
		dataDir      = flag.String("data-dir", getEnvOrDefault("BLOGRANK_STORAGE_DATA_DIR", "./data"), "Directory for persisted results")
		webhookURL   = flag.String("sheet-webhook", getEnvOrDefault("BLOGRANK_SHEET_WEBHOOK_URL", ""), "Spreadsheet webhook URL (optional)")
		intervalMs   = flag.Int("interval-ms", getEnvIntOrDefault("BLOGRANK_ANALYZER_BATCH_INTERVAL_MS", 1500), "Pause between posts in a batch")
		debug        = flag.Bool("debug", os.Getenv("DEBUG") == "true", "Enable debug logging")
		help         = flag.Bool("help", false, "Show usage")
	)
	flag.Parse()

	if *help || (*postURL == "" && *blogID == "") {
		printUsage()
		if *help {
			return
		}
		os.Exit(2)
	}

	level := "info"
	if *debug {
		level = "debug"
	}
	logger.SetLogger(logger.New(logger.Config{Level: level, Format: "console", Output: "stdout"}))

	cfg := &config.Config{}
	cfg.Search.ClientID = *clientID
	cfg.Search.ClientSecret = *clientSecret
	cfg.SearchAd.APIKey = *adAPIKey
	cfg.SearchAd.SecretKey = *adSecret
	cfg.SearchAd.CustomerID = *adCustomer
	cfg.Storage.DataDir = *dataDir
	cfg.Sheet.WebhookURL = *webhookURL
	cfg.Analyzer.RecentCount = *count
	cfg.Analyzer.BatchIntervalMs = *intervalMs

	if cfg.Search.ClientID == "" || cfg.Search.ClientSecret == "" {
		fmt.Fprintln(os.Stderr, "ERROR: Naver OpenAPI credentials are required.")
		fmt.Fprintln(os.Stderr, "Use -client-id/-client-secret or BLOGRANK_SEARCH_CLIENT_ID / BLOGRANK_SEARCH_CLIENT_SECRET.")
		os.Exit(2)
	}

	svc, err := service.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialization failed: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var output interface{}

	if *postURL != "" {
		result, err := svc.AnalyzePost(ctx, *postURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
			os.Exit(1)
		}
		output = result
	} else {
		batch, err := svc.AnalyzeRecent(ctx, *blogID, *count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "batch analysis failed: %v\n", err)
			os.Exit(1)
		}
		output = batch
	}
	svc.Close()

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}

func printUsage() {
	fmt.Println("blogrank - Naver blog keyword rank analyzer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  blogrank -url https://blog.naver.com/{id}/{logNo}")
	fmt.Println("  blogrank -blog {blogId} [-count 5]")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
