package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/tkarvinen/libris/googlebooks"
)

// VolumeCmd represents the volume command
type VolumeCmd struct {
	ID string `arg:"" help:"Volume ID as returned by search results"`
}

// Run executes the volume command.
func (v *VolumeCmd) Run() error {
	client := newClient()

	slog.Debug("Fetching volume", "id", v.ID)
	response, err := client.FetchVolume(context.Background(), v.ID)
	if err != nil {
		var apiErr *googlebooks.APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			slog.Warn("Volume not found", "id", v.ID)
		}
		return err
	}

	if outputJSON {
		return writeJSON(os.Stdout, response)
	}

	printVolumeList(os.Stdout, response)
	return nil
}
