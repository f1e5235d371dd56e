package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tkarvinen/libris/googlebooks"
)

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printVolumeList writes a numbered summary of every volume in the response.
func printVolumeList(w io.Writer, response *googlebooks.VolumeResponse) {
	if len(response.Items) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	fmt.Fprintf(w, "%d result(s) of %d total:\n\n", len(response.Items), response.TotalItems)
	for i, volume := range response.Items {
		fmt.Fprintf(w, "%2d. %s\n", i+1, summaryLine(volume))
	}
}

// printVolume writes the full metadata of a single volume.
func printVolume(w io.Writer, volume googlebooks.Volume) {
	info := volume.VolumeInfo

	fmt.Fprintln(w, volume.DisplayTitle())
	if len(info.Authors) > 0 {
		fmt.Fprintf(w, "  Authors:    %s\n", strings.Join(info.Authors, ", "))
	}
	if info.Publisher != "" {
		fmt.Fprintf(w, "  Publisher:  %s (%s)\n", info.Publisher, volume.Year())
	} else {
		fmt.Fprintf(w, "  Published:  %s\n", volume.Year())
	}
	if isbn := volume.PrimaryISBN(); isbn != "" {
		fmt.Fprintf(w, "  ISBN:       %s\n", isbn)
	}
	if info.PageCount > 0 {
		fmt.Fprintf(w, "  Pages:      %d\n", info.PageCount)
	}
	if len(info.Categories) > 0 {
		fmt.Fprintf(w, "  Categories: %s\n", strings.Join(info.Categories, ", "))
	}
	fmt.Fprintf(w, "  ID:         %s\n", volume.ID)
	if info.Description != "" {
		fmt.Fprintf(w, "\n%s\n", info.Description)
	}
}

func summaryLine(volume googlebooks.Volume) string {
	var sb strings.Builder
	sb.WriteString(volume.DisplayTitle())
	if len(volume.VolumeInfo.Authors) > 0 {
		sb.WriteString(" - ")
		sb.WriteString(strings.Join(volume.VolumeInfo.Authors, ", "))
	}
	sb.WriteString(fmt.Sprintf(" (%s)", volume.Year()))
	if isbn := volume.PrimaryISBN(); isbn != "" {
		sb.WriteString(" [" + isbn + "]")
	}
	return sb.String()
}
