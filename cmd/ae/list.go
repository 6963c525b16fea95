package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/watsonshih/nsysu-isi-ae/internal/query"
)

var (
	listText    string
	listYear    string
	listStatus  string
	listBinding string
	listSort    string
	listDir     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities or students",
}

var listActivitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Filtered, sorted activity catalog",
	RunE: withApp(func(ctx context.Context, rt *runtime, _ []string) error {
		out := query.Activities(rt.app.Cache().Activities(), query.ActivityFilter{
			Text:       listText,
			Visibility: query.Visibility(listStatus),
			Year:       listYear,
		}, query.Sort{Field: listSort, Dir: query.Direction(listDir)})

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDATE\tLOCATION\tTEACHER\tPARTICIPANTS\tVISIBLE")
		for _, a := range out {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%v\n",
				a.ID, a.Name, a.Date, a.Location, a.Teacher, len(a.Participants), a.Visible)
		}
		return w.Flush()
	}),
}

var listStudentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Filtered, sorted roster",
	RunE: withApp(func(ctx context.Context, rt *runtime, _ []string) error {
		c := rt.app.Cache()
		out := query.Students(c.Students(), c.ParticipantCount, query.StudentFilter{
			Text:          listText,
			AdmissionYear: listYear,
			Binding:       query.Binding(listBinding),
		}, query.Sort{Field: listSort, Dir: query.Direction(listDir)})

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tYEAR\tATTENDED\tACCOUNT")
		for _, st := range out {
			account := st.GoogleAccount
			if account == "" {
				account = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				st.ID, st.Name, st.AdmissionYear, c.ParticipantCount(st.ID), account)
		}
		return w.Flush()
	}),
}

func init() {
	listCmd.PersistentFlags().StringVar(&listText, "text", "", "substring match")
	listCmd.PersistentFlags().StringVar(&listYear, "year", "", "calendar year (activities) or admission year (students)")
	listCmd.PersistentFlags().StringVar(&listSort, "sort", "", "sort field")
	listCmd.PersistentFlags().StringVar(&listDir, "dir", "asc", "asc|desc")
	listActivitiesCmd.Flags().StringVar(&listStatus, "status", "", "public|private")
	listStudentsCmd.Flags().StringVar(&listBinding, "binding", "", "bound|unbound")
	listCmd.AddCommand(listActivitiesCmd, listStudentsCmd)
	rootCmd.AddCommand(listCmd)
}
