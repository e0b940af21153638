package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gristlabs/grist-go/pkg/grist"
)

// Static errors of the records commands.
var (
	ErrInvalidFieldFormat  = errors.New("invalid field format, expected COLUMN=VALUE")
	ErrInvalidFilterFormat = errors.New("invalid filter format, expected COLUMN=VALUE[,VALUE...]")
)

// NewRecordsCommand creates the records command group.
func NewRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"record", "rec"},
		Short:   "Manage table records",
		Long:    "List, add, update, and delete the records of a Grist table",
	}

	cmd.AddCommand(newRecordsListCommand())
	cmd.AddCommand(newRecordsAddCommand())
	cmd.AddCommand(newRecordsUpdateCommand())
	cmd.AddCommand(newRecordsDeleteCommand())

	return cmd
}

func newRecordsListCommand() *cobra.Command {
	var (
		filters []string
		sortBy  string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list DOC_ID TABLE_ID",
		Short: "List records",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := grist.NewListOptions()
			if sortBy != "" {
				opts.WithSort(sortBy)
			}

			if limit > 0 {
				opts.WithLimit(limit)
			}

			for _, filter := range filters {
				column, values, err := parseFilter(filter)
				if err != nil {
					return err
				}

				opts.WithFilter(column, values...)
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			records, err := client.Records().List(ctx, args[0], args[1], opts)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			return outputRecords(records)
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter COLUMN=VALUE[,VALUE...] (repeatable)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort specification, e.g. pet,-age")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of records")

	return cmd
}

func newRecordsAddCommand() *cobra.Command {
	var (
		fields  []string
		noParse bool
	)

	cmd := &cobra.Command{
		Use:   "add DOC_ID TABLE_ID",
		Short: "Add one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := parseFields(fields)
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			created, err := client.Records().Create(ctx, args[0], args[1],
				[]grist.Fields{record}, &grist.RecordWriteOptions{NoParse: noParse})
			if err != nil {
				return fmt.Errorf("failed to add record: %w", err)
			}

			for _, rec := range created {
				fmt.Printf("Record created with ID %d\n", rec.ID)
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&fields, "field", nil, "cell value COLUMN=VALUE (repeatable)")
	cmd.Flags().BoolVar(&noParse, "noparse", false, "disable server-side value parsing")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func newRecordsUpdateCommand() *cobra.Command {
	var (
		fields  []string
		noParse bool
	)

	cmd := &cobra.Command{
		Use:   "update DOC_ID TABLE_ID ROW_ID",
		Short: "Update one record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowID, err := parseID(args[2])
			if err != nil {
				return err
			}

			record, err := parseFields(fields)
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			err = client.Records().Update(ctx, args[0], args[1],
				[]grist.Record{{ID: rowID, Fields: record}},
				&grist.RecordWriteOptions{NoParse: noParse})
			if err != nil {
				return fmt.Errorf("failed to update record: %w", err)
			}

			fmt.Printf("Record %d updated\n", rowID)

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&fields, "field", nil, "cell value COLUMN=VALUE (repeatable)")
	cmd.Flags().BoolVar(&noParse, "noparse", false, "disable server-side value parsing")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func newRecordsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DOC_ID TABLE_ID ROW_ID...",
		Short: "Delete records",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowIDs := make([]int64, 0, len(args)-2)

			for _, arg := range args[2:] {
				rowID, err := parseID(arg)
				if err != nil {
					return err
				}

				rowIDs = append(rowIDs, rowID)
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			err = client.Records().Delete(ctx, args[0], args[1], rowIDs)
			if err != nil {
				return fmt.Errorf("failed to delete records: %w", err)
			}

			fmt.Printf("Deleted %d record(s)\n", len(rowIDs))

			return nil
		},
	}
}

func outputRecords(records []grist.Record) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(records)
	case OutputFormatYAML:
		return StandardYAMLRenderer(records)
	default:
		return renderRecordTable(records)
	}
}

func renderRecordTable(records []grist.Record) error {
	if len(records) == 0 {
		_, _ = os.Stdout.WriteString("No records found\n")

		return nil
	}

	// Stable column order across all records.
	columnSet := make(map[string]bool)
	for _, record := range records {
		for column := range record.Fields {
			columnSet[column] = true
		}
	}

	columns := make([]string, 0, len(columnSet))
	for column := range columnSet {
		columns = append(columns, column)
	}

	sort.Strings(columns)

	header := append([]string{"ID"}, columns...)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(header)

	for _, record := range records {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatInt(record.ID, 10))

		for _, column := range columns {
			row = append(row, fmt.Sprintf("%v", record.Fields[column]))
		}

		_ = table.Append(row)
	}

	_ = table.Render()

	return nil
}

func parseFields(pairs []string) (grist.Fields, error) {
	fields := make(grist.Fields, len(pairs))

	for _, pair := range pairs {
		column, value, found := strings.Cut(pair, "=")
		if !found || column == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldFormat, pair)
		}

		fields[column] = value
	}

	return fields, nil
}

func parseFilter(filter string) (string, []interface{}, error) {
	column, raw, found := strings.Cut(filter, "=")
	if !found || column == "" || raw == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidFilterFormat, filter)
	}

	parts := strings.Split(raw, ",")

	values := make([]interface{}, 0, len(parts))
	for _, part := range parts {
		values = append(values, part)
	}

	return column, values, nil
}
