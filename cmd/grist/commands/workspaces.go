package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gristlabs/grist-go/pkg/grist"
)

// NewWorkspacesCommand creates the workspaces command group.
func NewWorkspacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"workspace", "ws"},
		Short:   "Manage workspaces",
		Long:    "Inspect, create, rename, and delete Grist workspaces",
	}

	cmd.AddCommand(newWorkspacesGetCommand())
	cmd.AddCommand(newWorkspacesCreateCommand())
	cmd.AddCommand(newWorkspacesRenameCommand())
	cmd.AddCommand(newWorkspacesDeleteCommand())
	cmd.AddCommand(newWorkspacesCreateDocCommand())

	return cmd
}

func newWorkspacesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get WORKSPACE_ID",
		Short: "Get workspace details, including its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspaceID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			workspace, err := client.Workspaces().Get(ctx, workspaceID)
			if err != nil {
				return fmt.Errorf("failed to get workspace: %w", err)
			}

			return outputWorkspaces([]grist.Workspace{*workspace})
		},
	}
}

func newWorkspacesCreateCommand() *cobra.Command {
	var orgID int64

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			workspaceID, err := client.Orgs().CreateWorkspace(ctx, orgID, args[0])
			if err != nil {
				return fmt.Errorf("failed to create workspace: %w", err)
			}

			fmt.Printf("Workspace '%s' created with ID %d\n", args[0], workspaceID)

			return nil
		},
	}

	cmd.Flags().Int64Var(&orgID, "org", 0, "organization ID")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func newWorkspacesRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename WORKSPACE_ID NEW_NAME",
		Short: "Rename a workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspaceID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			err = client.Workspaces().Update(ctx, workspaceID, args[1])
			if err != nil {
				return fmt.Errorf("failed to rename workspace: %w", err)
			}

			fmt.Printf("Workspace %d renamed to '%s'\n", workspaceID, args[1])

			return nil
		},
	}
}

func newWorkspacesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete WORKSPACE_ID",
		Short: "Delete a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspaceID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			err = client.Workspaces().Delete(ctx, workspaceID)
			if err != nil {
				return fmt.Errorf("failed to delete workspace: %w", err)
			}

			fmt.Printf("Workspace %d deleted\n", workspaceID)

			return nil
		},
	}
}

func newWorkspacesCreateDocCommand() *cobra.Command {
	var pinned bool

	cmd := &cobra.Command{
		Use:   "create-doc WORKSPACE_ID NAME",
		Short: "Create a document in a workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspaceID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			docID, err := client.Workspaces().CreateDoc(ctx, workspaceID, args[1], pinned)
			if err != nil {
				return fmt.Errorf("failed to create document: %w", err)
			}

			fmt.Printf("Document '%s' created with ID %s\n", args[1], docID)

			return nil
		},
	}

	cmd.Flags().BoolVar(&pinned, "pinned", false, "pin the document")

	return cmd
}

func outputWorkspaces(workspaces []grist.Workspace) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(workspaces)
	case OutputFormatYAML:
		return StandardYAMLRenderer(workspaces)
	default:
		return renderWorkspaceTable(workspaces)
	}
}

func renderWorkspaceTable(workspaces []grist.Workspace) error {
	if len(workspaces) == 0 {
		_, _ = os.Stdout.WriteString("No workspaces found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Access", "Docs")

	for _, workspace := range workspaces {
		_ = table.Append(strconv.FormatInt(workspace.ID, 10), workspace.Name,
			workspace.Access, strconv.Itoa(len(workspace.Docs)))
	}

	_ = table.Render()

	return nil
}
