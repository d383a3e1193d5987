package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"notes-reviewer/internal/config"
	"notes-reviewer/internal/entity"
	"notes-reviewer/internal/repository/implementation"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newStateCmd() *cobra.Command {
	var status, output string

	cmd := &cobra.Command{
		Use:   "state",
		Short: "List the uploads recorded in the state file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			records, err := implementation.NewFileStateRepository(cfg.App.StateFile).Load(cmd.Context())
			if err != nil {
				return err
			}
			list := filterRecords(records, strings.ToUpper(status))

			switch output {
			case "table":
				return writeRecords(cmd.OutOrStdout(), list)
			case "yaml":
				return writeRecordsYAML(cmd.OutOrStdout(), list)
			default:
				return fmt.Errorf("unknown output format %q (want table or yaml)", output)
			}
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only show records with this status (APPROVED, NEEDS_IMPROVEMENT, ERROR)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or yaml")
	return cmd
}

var statusColors = map[string]*color.Color{
	entity.StatusApproved:         color.New(color.FgGreen),
	entity.StatusNeedsImprovement: color.New(color.FgYellow),
	entity.StatusError:            color.New(color.FgRed),
}

// filterRecords keeps records with the given status (all when empty), oldest evaluation first.
func filterRecords(records map[string]*entity.FileRecord, status string) []*entity.FileRecord {
	list := make([]*entity.FileRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		if status == "" || r.Status == status {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].EvaluatedAt != list[j].EvaluatedAt {
			return list[i].EvaluatedAt < list[j].EvaluatedAt
		}
		return list[i].Id < list[j].Id
	})
	return list
}

func writeRecords(w io.Writer, list []*entity.FileRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tUPLOADER\tSTATUS\tNOTIFIED\tEVALUATED")
	for _, r := range list {
		uploader := "-"
		if owner, err := r.Uploader(); err == nil {
			uploader = owner.Email
		}
		st := r.Status
		if c, ok := statusColors[st]; ok {
			st = c.Sprint(st)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n", r.Id, r.Name, uploader, st, r.Notified, r.EvaluatedAt)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d record(s)\n", len(list))
	return err
}

func writeRecordsYAML(w io.Writer, list []*entity.FileRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return enc.Close()
}
