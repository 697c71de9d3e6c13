// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citematch/internal/bibstore"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the bibliography record store (import, list, export)",
	Long: `Records manages a local SQLite store of per-document bibliography
records. Use subcommands to import record files, list stored documents, or
export a document's records.`,
}

// --- import subcommand ---

var recordsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import bibliography YAML files into the record store",
	Long: `Import reads bibliography YAML files from <store-dir>/records/ and
stores their records in <store-dir>/index/records.db. Files that have not
changed since the last import are skipped.`,
	RunE: runRecordsImport,
}

func runRecordsImport(cmd *cobra.Command, args []string) error {
	store, err := bibstore.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed importing", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents with their record counts",
	RunE:  runRecordsList,
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	store, err := bibstore.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.Documents(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Println("No documents stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %s\n", "Document", "Records")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 50))
	for _, d := range docs {
		fmt.Fprintf(os.Stdout, "%-40s  %d\n", d.ID, d.Records)
	}
	fmt.Fprintf(os.Stdout, "\n%d documents\n", len(docs))
	return nil
}

// --- export subcommand ---

var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a document's records to YAML or JSON",
	Long: `Export writes the stored records of one document to
<store-dir>/index/<document>.yaml or .json.`,
	RunE: runRecordsExport,
}

func runRecordsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	docID, _ := cmd.Flags().GetString("document")
	if docID == "" {
		return fmt.Errorf("--document is required")
	}

	store, err := bibstore.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), docID)
	case "json":
		path, err = store.ExportJSON(context.Background(), docID)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported to %s\n", path)
	return nil
}

func init() {
	recordsListCmd.Flags().Bool("json", false, "output documents as JSON")

	recordsExportCmd.Flags().String("document", "", "document ID to export")
	recordsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	recordsCmd.AddCommand(recordsImportCmd)
	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsExportCmd)

	rootCmd.AddCommand(recordsCmd)
}
