package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/strataframe/strata/pkg/config"
	"github.com/strataframe/strata/pkg/construct"
	strjson "github.com/strataframe/strata/pkg/json"
	"github.com/strataframe/strata/pkg/logger"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	var configFile string

	root := &cobra.Command{
		Use:   "strata",
		Short: "Strata - columnar table construction",
		Long: `Strata converts heterogeneous external data (row mappings, sequences,
numeric buffers, Arrow and gota tables) into typed columnar tables with
deterministic schema resolution.`,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Strata v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	var input string
	var inferLimit int
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Infer the schema of a JSON rows file",
		Long: `Read a file of JSON row objects (a top-level array or newline-delimited
objects), construct a table from it, and print the resolved schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(configFile, input, inferLimit)
		},
	}
	schemaCmd.Flags().StringVar(&input, "input", "", "path to JSON rows file (required)")
	schemaCmd.Flags().IntVar(&inferLimit, "infer-limit", 0, "rows scanned for inference (0 = config default)")
	_ = schemaCmd.MarkFlagRequired("input")
	root.AddCommand(schemaCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSchema(configFile, input string, inferLimit int) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Encoding:    cfg.Logging.Encoding,
		Development: cfg.Logging.Development,
	}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if inferLimit <= 0 {
		inferLimit = cfg.Construct.InferLimit
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := strjson.DecodeRows(f)
	if err != nil {
		return err
	}
	logger.Info("decoded rows", zap.Int("count", len(rows)), zap.String("file", input))

	table, err := construct.FromRows(rows, construct.WithInferLimit(inferLimit))
	if err != nil {
		return err
	}

	fmt.Printf("%d rows, %d columns\n", table.NumRows(), table.NumColumns())
	for _, field := range table.Fields() {
		fmt.Printf("  %s: %s\n", field.Name, field.Type)
	}
	return nil
}
