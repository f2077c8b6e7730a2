package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"preschool-finder/models"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPage(w io.Writer, format string, page models.Page[models.QueryResult]) error {
	if format == "json" {
		return writeJSON(w, page)
	}
	fmt.Fprintf(w, "\n  %d matching preschools (page %d of %d)\n\n", page.TotalCount, page.Page, page.TotalPages)
	printList(w, page.Items)
	return nil
}

func printResults(w io.Writer, format string, results []models.QueryResult) error {
	if format == "json" {
		return writeJSON(w, results)
	}
	fmt.Fprintln(w)
	printList(w, results)
	return nil
}

func printList(w io.Writer, results []models.QueryResult) {
	if len(results) == 0 {
		fmt.Fprintf(w, "  No preschools found\n\n")
		return
	}
	for i, res := range results {
		fav := ""
		if res.IsFavorite {
			fav = " \033[1;31m♥\033[0m"
		}
		fmt.Fprintf(w, "  \033[1m%2d. %s\033[0m%s  [%s]\n", i+1, res.Name, fav, res.ID)
		fmt.Fprintf(w, "      \033[1;32m%.1f ★\033[0m  %d reviews  %s\n", res.Rating, res.ReviewCount, place(res.FacilityRecord))
		if res.Distance != nil {
			fmt.Fprintf(w, "      %.1f mi away\n", *res.Distance)
		}
		for _, reason := range res.MatchReasons {
			fmt.Fprintf(w, "      - %s\n", reason)
		}
	}
	fmt.Fprintln(w)
}

func printDetail(w io.Writer, format string, res models.QueryResult) error {
	if format == "json" {
		return writeJSON(w, res)
	}

	r := res.FacilityRecord
	thin := strings.Repeat("─", 54)
	fmt.Fprintf(w, "\n  \033[1;35m%s\033[0m  [%s]\n  %s\n", r.Name, r.ID, thin)
	if r.Description != "" {
		fmt.Fprintf(w, "  %s\n\n", r.Description)
	}
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-11s: %s\n", label, value)
		}
	}
	field("Address", strings.Join(nonEmpty(r.Address, place(r)), ", "))
	field("Phone", r.Phone)
	field("Website", r.Website)
	field("Rating", fmt.Sprintf("%.1f (%d reviews)", r.Rating, r.ReviewCount))
	field("Tuition", r.Tuition)
	field("Hours", r.Hours)
	field("Ages", r.AgeRange)
	field("Curriculum", r.Curriculum)
	field("Program", r.ProgramType)
	field("License", r.LicenseNumber)
	if r.Capacity > 0 {
		field("Capacity", fmt.Sprint(r.Capacity))
	}
	field("Features", strings.Join(r.Features, ", "))

	if len(r.Reviews) > 0 {
		fmt.Fprintf(w, "\n  \033[1;33mReviews\033[0m\n  %s\n", thin)
		for _, rv := range r.Reviews {
			fmt.Fprintf(w, "  %.0f★ %s  (%s, %s)\n", rv.Rating, rv.Title, rv.AuthorName, rv.Date)
			if rv.Text != "" {
				fmt.Fprintf(w, "     %s\n", rv.Text)
			}
		}
	}
	fmt.Fprintln(w)
	return nil
}

func place(r *models.FacilityRecord) string {
	return strings.Join(nonEmpty(r.City, r.PostalCode), " ")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
