package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webnovel-scraper/internal/project"
)

func (a *app) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage download projects",
	}

	var completed bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List active (or completed) projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := a.archive()
			if err != nil {
				return err
			}
			status := project.StatusActive
			if completed {
				status = project.StatusCompleted
			}
			projects, err := archive.List(status)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintf(out, "No %s projects in %s\n", status, archive.Workdir)
				return nil
			}
			for _, p := range projects {
				fmt.Fprintf(out, "📁 %s  (updated %s)\n", p.Name, p.UpdatedAt.Local().Format("2006-01-02 15:04"))
				if p.SourceURL != "" {
					fmt.Fprintf(out, "   %s\n", p.SourceURL)
				}
			}
			return nil
		},
	}
	list.Flags().BoolVar(&completed, "completed", false, "list completed projects instead")

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := a.archive()
			if err != nil {
				return err
			}
			p, err := archive.Create(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created project %s at %s\n", p.Name, p.Path)
			return nil
		},
	}

	complete := &cobra.Command{
		Use:   "complete <name>",
		Short: "Mark a project as completed",
		Args:  cobra.ExactArgs(1),
		RunE: a.withProject(func(cmd *cobra.Command, archive *project.Archive, p *project.Project) error {
			if err := archive.MarkCompleted(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Project %s marked completed\n", p.Name)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a project and everything downloaded into it",
		Args:  cobra.ExactArgs(1),
		RunE: a.withProject(func(cmd *cobra.Command, archive *project.Archive, p *project.Project) error {
			if err := archive.Delete(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted project %s\n", p.Name)
			return nil
		}),
	}

	cmd.AddCommand(list, create, complete, del)
	return cmd
}

func (a *app) withProject(run func(*cobra.Command, *project.Archive, *project.Project) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		archive, err := a.archive()
		if err != nil {
			return err
		}
		p, err := archive.Open(args[0])
		if err != nil {
			return err
		}
		return run(cmd, archive, p)
	}
}
