package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gristlabs/grist-go/pkg/grist"
)

// Static errors of the docs commands.
var (
	ErrUnknownExportFormat = errors.New("unknown export format")
	ErrTableRequired       = errors.New("--table is required for CSV export")
)

// NewDocsCommand creates the documents command group.
func NewDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs",
		Aliases: []string{"doc", "documents"},
		Short:   "Manage documents",
		Long:    "Inspect, rename, move, export, and delete Grist documents",
	}

	cmd.AddCommand(newDocsGetCommand())
	cmd.AddCommand(newDocsRenameCommand())
	cmd.AddCommand(newDocsMoveCommand())
	cmd.AddCommand(newDocsDeleteCommand())
	cmd.AddCommand(newDocsUsersCommand())
	cmd.AddCommand(newDocsDownloadCommand())
	cmd.AddCommand(newDocsColumnsCommand())

	return cmd
}

func newDocsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOC_ID",
		Short: "Get document details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			doc, err := client.Docs().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get document: %w", err)
			}

			return outputDocs([]grist.Doc{*doc})
		},
	}
}

func newDocsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename DOC_ID NEW_NAME",
		Short: "Rename a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			err = client.Docs().Update(ctx, args[0], grist.NewDocUpdate().WithName(args[1]))
			if err != nil {
				return fmt.Errorf("failed to rename document: %w", err)
			}

			fmt.Printf("Document %s renamed to '%s'\n", args[0], args[1])

			return nil
		},
	}
}

func newDocsMoveCommand() *cobra.Command {
	var workspaceID int64

	cmd := &cobra.Command{
		Use:   "move DOC_ID",
		Short: "Move a document to another workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			err = client.Docs().Move(ctx, args[0], workspaceID)
			if err != nil {
				return fmt.Errorf("failed to move document: %w", err)
			}

			fmt.Printf("Document %s moved to workspace %d\n", args[0], workspaceID)

			return nil
		},
	}

	cmd.Flags().Int64Var(&workspaceID, "workspace", 0, "destination workspace ID")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}

func newDocsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DOC_ID",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			err = client.Docs().Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete document: %w", err)
			}

			fmt.Printf("Document %s deleted\n", args[0])

			return nil
		},
	}
}

func newDocsUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "users DOC_ID",
		Short: "List document users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			access, err := client.Docs().ListUsers(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return outputAccessList(access)
		},
	}
}

func newDocsDownloadCommand() *cobra.Command {
	var (
		format  string
		tableID string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "download DOC_ID",
		Short: "Download a document",
		Long:  "Download a document as a SQLite database, an XLSX workbook, or one table as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			var data []byte

			switch format {
			case "sqlite":
				data, err = client.Docs().Download(ctx, args[0])
			case "xlsx":
				data, err = client.Docs().DownloadXLSX(ctx, args[0])
			case "csv":
				if tableID == "" {
					return ErrTableRequired
				}

				data, err = client.Docs().DownloadCSV(ctx, args[0], tableID)
			default:
				return fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
			}

			if err != nil {
				return fmt.Errorf("failed to download document: %w", err)
			}

			if outFile == "" {
				_, err = os.Stdout.Write(data)

				return err
			}

			err = os.WriteFile(outFile, data, 0o600)
			if err != nil {
				return fmt.Errorf("writing %s: %w", outFile, err)
			}

			fmt.Printf("Wrote %d bytes to %s\n", len(data), outFile)

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "sqlite", "export format (sqlite, xlsx, csv)")
	cmd.Flags().StringVar(&tableID, "table", "", "table ID for CSV export")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	return cmd
}

func newDocsColumnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns DOC_ID TABLE_ID",
		Short: "List the columns of a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			columns, err := client.Tables().Columns(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to list columns: %w", err)
			}

			return outputColumns(columns)
		},
	}
}

func outputDocs(docs []grist.Doc) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(docs)
	case OutputFormatYAML:
		return StandardYAMLRenderer(docs)
	default:
		return renderDocTable(docs)
	}
}

func renderDocTable(docs []grist.Doc) error {
	if len(docs) == 0 {
		_, _ = os.Stdout.WriteString("No documents found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Access", "Pinned")

	for _, doc := range docs {
		pinned := ""
		if doc.IsPinned {
			pinned = "yes"
		}

		_ = table.Append(doc.ID, doc.Name, doc.Access, pinned)
	}

	_ = table.Render()

	return nil
}

func outputColumns(columns []grist.Column) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(columns)
	case OutputFormatYAML:
		return StandardYAMLRenderer(columns)
	default:
		return renderColumnTable(columns)
	}
}

func renderColumnTable(columns []grist.Column) error {
	if len(columns) == 0 {
		_, _ = os.Stdout.WriteString("No columns found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Type", "Label")

	for _, column := range columns {
		colType, _ := column.Fields["type"].(string)
		label, _ := column.Fields["label"].(string)

		_ = table.Append(column.ID, colType, label)
	}

	_ = table.Render()

	return nil
}
