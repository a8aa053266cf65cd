package main

import (
	"aati-summary/config"
	"aati-summary/core"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	// Database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		slog.Error("Generation failed", "error", err)
		os.Exit(1)
	}
}

func run(output io.Writer, args []string) error {
	flags := flag.NewFlagSet("aati-summary", flag.ContinueOnError)
	flags.SetOutput(output)

	configFile := flags.String("config", "", "Path to configuration bundle (optional)")
	inputFile := flags.String("input", "", "CSV export to summarize; overrides the configured source")
	encoding := flags.String("encoding", "", "Encoding of the CSV input, e.g. latin1")
	outputDir := flags.String("output", ".", "Directory for output files")
	fetcherType := flags.String("fetcher", "", "Override source driver: csv, dynamodb, mysql, postgres, sqlite3")
	dbDSN := flags.String("db-dsn", "", "Database connection string (DSN) for mysql/postgres/sqlite3")
	s3Bucket := flags.String("s3-bucket", "", "S3 bucket name for uploading output")
	s3Prefix := flags.String("s3-prefix", "aati-summary", "S3 prefix (folder) for uploaded files")

	if err := flags.Parse(args); err != nil {
		return err
	}

	// Initialize structured logger
	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// 1. Load Config Bundle
	var report *config.ReportConfig
	sources := make(map[string]*config.SourceConfig)
	if *configFile != "" {
		slog.Info("Loading configuration bundle", "file", *configFile)
		var err error
		report, sources, err = config.LoadConfigBundle(*configFile)
		if err != nil {
			return err
		}
	}

	if *inputFile != "" {
		src := csvSource(*inputFile, *encoding)
		sources[src.Name] = src
		if report == nil {
			report = config.DefaultReport(src.Name)
		} else {
			report.Source = src.Name
		}
	}
	if report == nil {
		return fmt.Errorf("either -config or -input is required")
	}

	source, ok := sources[report.Source]
	if !ok {
		return fmt.Errorf("source %q is not configured", report.Source)
	}
	if *fetcherType != "" {
		source.Driver = config.Driver(*fetcherType)
	}
	if *dbDSN != "" {
		source.DSN = *dbDSN
	}

	registry := config.NewMemoryConfigRegistry(sources)
	validator := config.NewValidator(registry)
	if err := validator.ValidateSource(source); err != nil {
		return err
	}
	if err := validator.ValidateReport(report); err != nil {
		return err
	}

	// 2. Prepare Data Fetcher
	fetcher, closeFetcher, err := newFetcher(source)
	if err != nil {
		return err
	}
	defer closeFetcher()

	// 3. Generate Report
	slog.Info("Generating report", "name", report.Name, "source", source.Name, "driver", source.Driver)
	ctx := core.NewGenerationContext(report, registry, fetcher, nil)
	generator := core.NewGenerator(ctx)
	summary, err := generator.Generate(*outputDir)
	if err != nil {
		return fmt.Errorf("generate report %s: %w", report.Name, err)
	}

	slog.Info("Successfully generated", "path", summary.OutputPath, "sheets", len(summary.Sheets), "skipped", summary.Skipped)

	// 4. Upload to S3 if configured
	if *s3Bucket != "" {
		slog.Info("Starting S3 upload", "bucket", *s3Bucket, "prefix", *s3Prefix)

		cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			return fmt.Errorf("unable to load AWS SDK config for S3: %w", err)
		}

		uploader := core.NewS3Uploader(cfg, *s3Bucket, *s3Prefix)
		key, err := uploader.UploadReport(context.TODO(), summary.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to upload output to s3: %w", err)
		}
		slog.Info("Successfully uploaded to S3", "key", key)
	}

	return nil
}

// csvSource describes a single CSV file given on the command line.
func csvSource(path, encoding string) *config.SourceConfig {
	base := filepath.Base(path)
	return &config.SourceConfig{
		Name:     strings.TrimSuffix(base, filepath.Ext(base)),
		Driver:   config.DriverCSV,
		Dir:      filepath.Dir(path),
		Table:    base,
		Encoding: encoding,
		Columns:  config.DefaultColumns(),
	}
}

func newFetcher(source *config.SourceConfig) (core.DataFetcher, func(), error) {
	noop := func() {}

	switch source.Driver {
	case config.DriverDynamoDB:
		slog.Info("Initializing DynamoDB Data Fetcher")
		// Load AWS Config (handles env vars, IAM roles, etc.)
		cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			return nil, noop, fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		return core.NewDynamoDBDataFetcher(cfg), noop, nil
	case config.DriverMySQL, config.DriverPostgres, config.DriverSQLite:
		slog.Info("Initializing SQL Data Fetcher", "type", source.Driver)
		db, err := sql.Open(string(source.Driver), source.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open db connection: %w", err)
		}
		// Verify connection
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("failed to ping db: %w", err)
		}
		return core.NewSQLDataFetcher(db, string(source.Driver)), func() { db.Close() }, nil
	default:
		slog.Info("Initializing CSV Data Fetcher", "dir", source.Dir, "encoding", source.Encoding)
		return core.NewCsvDataFetcher(source.Dir, source.Encoding), noop, nil
	}
}
