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

// NewOrgsCommand creates the organizations command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"organizations", "org"},
		Short:   "Manage organizations",
		Long:    "List, inspect, rename, and delete Grist organizations",
	}

	cmd.AddCommand(newOrgsListCommand())
	cmd.AddCommand(newOrgsGetCommand())
	cmd.AddCommand(newOrgsRenameCommand())
	cmd.AddCommand(newOrgsDeleteCommand())
	cmd.AddCommand(newOrgsUsersCommand())
	cmd.AddCommand(newOrgsWorkspacesCommand())
	return cmd
}

func newOrgsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Long:  "List all organizations the API key has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			orgs, err := client.Orgs().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list organizations: %w", err)
			}

			return outputOrganizations(orgs)
		},
	}
}

func outputOrganizations(orgs []grist.Org) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(orgs)
	case OutputFormatYAML:
		return StandardYAMLRenderer(orgs)
	default:
		return renderOrganizationTable(orgs)
	}
}

func renderOrganizationTable(orgs []grist.Org) error {
	if len(orgs) == 0 {
		_, _ = os.Stdout.WriteString("No organizations found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Domain", "Access", "Created")

	for _, org := range orgs {
		_ = table.Append(strconv.FormatInt(org.ID, 10), org.Name, org.Domain,
			org.Access, org.CreatedAt.Format(dateFormat))
	}

	_ = table.Render()

	return nil
}

func newOrgsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ORG_ID",
		Short: "Get organization details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			org, err := client.Orgs().Get(ctx, orgID)
			if err != nil {
				return fmt.Errorf("failed to get organization: %w", err)
			}

			return outputOrganizations([]grist.Org{*org})
		},
	}
}

func newOrgsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ORG_ID NEW_NAME",
		Short: "Rename an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			err = client.Orgs().Update(ctx, orgID, args[1])
			if err != nil {
				return fmt.Errorf("failed to rename organization: %w", err)
			}

			fmt.Printf("Organization %d renamed to '%s'\n", orgID, args[1])

			return nil
		},
	}
}

func newOrgsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ORG_ID",
		Short: "Delete an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			err = client.Orgs().Delete(ctx, orgID)
			if err != nil {
				return fmt.Errorf("failed to delete organization: %w", err)
			}

			fmt.Printf("Organization %d deleted\n", orgID)

			return nil
		},
	}
}

func newOrgsUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "users ORG_ID",
		Short: "List organization users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			access, err := client.Orgs().ListUsers(ctx, orgID)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return outputAccessList(access)
		},
	}
}

func newOrgsWorkspacesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "workspaces ORG_ID",
		Short: "List organization workspaces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			defer client.Close()

			workspaces, err := client.Orgs().ListWorkspaces(ctx, orgID)
			if err != nil {
				return fmt.Errorf("failed to list workspaces: %w", err)
			}

			return outputWorkspaces(workspaces)
		},
	}
}

func outputAccessList(access *grist.AccessList) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(access)
	case OutputFormatYAML:
		return StandardYAMLRenderer(access)
	default:
		return renderAccessTable(access)
	}
}

func renderAccessTable(access *grist.AccessList) error {
	if len(access.Users) == 0 {
		_, _ = os.Stdout.WriteString("No users found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Email", "Access")

	for _, user := range access.Users {
		_ = table.Append(strconv.FormatInt(user.ID, 10), user.Name, user.Email, user.Access)
	}

	_ = table.Render()

	if access.MaxInheritedRole != nil {
		fmt.Printf("\nMax inherited role: %s\n", *access.MaxInheritedRole)
	}

	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing ID %q: %w", arg, err)
	}

	return id, nil
}
