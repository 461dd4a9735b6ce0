// Package cli provides the command-line interface for the OpenAPI to Bruno generator.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/spf13/cobra"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/adapters/converters"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/adapters/openapi"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/adapters/storage"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/collection"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/config"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

// CLI holds the command-line interface configuration.
type CLI struct {
	log     logger.ILogger
	rootCmd *cobra.Command
	fetcher *openapi.Fetcher

	source        string
	output        string
	configFile    string
	update        bool
	validate      bool
	catalogFile   string
	catalogFormat string
}

// New creates a new CLI instance.
func New(log logger.ILogger) *CLI {
	cli := &CLI{
		log:     log,
		fetcher: openapi.NewFetcher(),
	}

	cli.rootCmd = &cobra.Command{
		Use:          "openapi-to-bruno",
		Short:        "Generate a Bruno collection from an OpenAPI specification",
		Long:         "A CLI tool that turns an OpenAPI 3.x specification (file or URL) into a folder of Bruno .bru request files.",
		SilenceUsage: true,
		RunE:         cli.run,
	}

	cli.setupFlags()

	return cli
}

func (c *CLI) setupFlags() {
	c.rootCmd.Flags().StringVarP(&c.source, "source", "s", "", "URL or path of the OpenAPI specification (required)")
	c.rootCmd.Flags().StringVarP(&c.output, "output", "o", "", "Output directory for the collection (required)")
	c.rootCmd.Flags().BoolVarP(&c.update, "update", "u", false, "Update an existing collection, keeping ignored operations untouched")
	c.rootCmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Path to the configuration file (JSON or YAML)")
	c.rootCmd.Flags().BoolVar(&c.validate, "validate", false, "Validate the specification before generating")
	c.rootCmd.Flags().StringVar(&c.catalogFile, "catalog", "", "Write a catalog of the generated requests to this file")
	c.rootCmd.Flags().StringVar(&c.catalogFormat, "catalog-format", "pdf", "Catalog format: pdf, docx, confluence")

	_ = c.rootCmd.MarkFlagRequired("source")
	_ = c.rootCmd.MarkFlagRequired("output")
}

// Execute runs the CLI.
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

// SetArgs overrides the command-line arguments, mainly for tests.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}

	// Resolve the catalog converter up front so a bad format fails before writing.
	var converter domain.CatalogConverter
	if c.catalogFile != "" {
		if converter, err = c.getConverter(); err != nil {
			return err
		}
	}

	c.log.Infof("Loading OpenAPI specification from: %s", c.source)

	data, err := c.fetcher.Fetch(ctx, c.source)
	if err != nil {
		return err
	}

	if c.validate {
		if err := openapi.Validate(ctx, data); err != nil {
			return err
		}
	}

	doc, err := openapi.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to load OpenAPI specification: %w", err)
	}

	c.log.Infof("Loaded API: %s (v%s)", doc.Info.Title, doc.Info.Version)

	mode := collection.ModeFresh
	if c.update {
		mode = collection.ModeUpdate
	}

	result, err := collection.NewGenerator(c.log, cfg).Generate(doc, mode)
	if err != nil {
		return err
	}

	if err := c.persist(result, mode); err != nil {
		return err
	}

	if converter != nil {
		return c.writeCatalog(converter, &result.Catalog)
	}

	return nil
}

func (c *CLI) persist(result *collection.Result, mode collection.Mode) error {
	writer := storage.NewWriter(c.output)

	if err := writer.EnsureRoot(); err != nil {
		return err
	}

	if mode == collection.ModeFresh {
		removed, err := writer.Clean(collection.FileExtension)
		if err != nil {
			return err
		}
		if removed > 0 {
			c.log.Infof("Removed %d previous request files", removed)
		}
	}

	created, err := writer.WriteDescriptor(result.Descriptor)
	if err != nil {
		return err
	}
	if created {
		c.log.Infof("Create: %s", storage.DescriptorFile)
	}

	for _, file := range result.Files {
		status, err := writer.Write(file)
		if err != nil {
			return err
		}

		c.log.Infof("%s: %s", status, file.Path)
	}

	c.log.Infof("Generated %d requests (%d skipped) in %s mode", len(result.Files), len(result.Skipped), mode)

	return nil
}

func (c *CLI) writeCatalog(converter domain.CatalogConverter, catalog *domain.Catalog) error {
	c.log.Infof("Writing %s catalog...", converter.Format())

	outputFile, err := os.Create(c.catalogFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outputFile.Close()

	if err := converter.Convert(catalog, outputFile); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	c.log.Infof("Successfully created: %s", c.catalogFile)

	return nil
}

func (c *CLI) getConverter() (domain.CatalogConverter, error) {
	format := strings.ToLower(c.catalogFormat)

	switch format {
	case "pdf":
		return converters.NewPDFConverter(), nil
	case "docx", "word":
		return converters.NewDocxConverter(), nil
	case "confluence", "adf":
		return converters.NewADFConverter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: pdf, docx, confluence)", c.catalogFormat)
	}
}
