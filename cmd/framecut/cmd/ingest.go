package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framecut/framecut/internal/codec"
	"github.com/framecut/framecut/internal/gallery"
	"github.com/framecut/framecut/internal/ingest"
	"github.com/framecut/framecut/internal/notice"
	"github.com/framecut/framecut/internal/resource"
	"github.com/framecut/framecut/internal/validate"
)

const (
	outputFormatJSON = "json"
	outputFormatText = "text"
)

// ingestCmd represents the ingest command.
var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Validate and admit a batch of images into a session",
	Long: `Run a batch of image files through the admission pipeline: type and
extension checks, size and dimension limits, duplicate detection and a
full decode probe. Files that pass are admitted into a session gallery
up to the configured image limit; everything rejected is reported.

Supported formats: JPEG, PNG, GIF, WebP

Examples:
  framecut ingest photo.jpg
  framecut ingest shots/*.png --format json
  framecut ingest a.jpg b.jpg --max-images 2`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()
		format, _ := cmd.Flags().GetString("format")
		if maxImages, _ := cmd.Flags().GetInt("max-images"); maxImages > 0 {
			cfg.Gallery.MaxImages = maxImages
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		files := make([]ingest.File, 0, len(args))
		for _, path := range args {
			f, err := ingest.LoadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			files = append(files, f)
		}

		tracker := resource.NewTracker()
		session := gallery.NewSession(cfg.Gallery.MaxImages, tracker)
		defer session.Close()

		validator := validate.New(codec.Std{}, codec.Std{}, cfg.Ingest.ValidateTimeout,
			cfg.Gallery.MinDimension, cfg.Gallery.MaxDimension, tracker)
		pipeline := ingest.New(session, validator, notice.LogChannel{}, cfg.Gallery, cfg.Ingest)

		notices, err := pipeline.AdmitSync(cmd.Context(), files)
		if err != nil {
			return err
		}

		return writeIngestResult(cmd, session, notices, format)
	},
}

// ingestResult is the JSON shape of an ingest run.
type ingestResult struct {
	Admitted []ingestImage   `json:"admitted"`
	Notices  []notice.Notice `json:"notices"`
}

type ingestImage struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"size_bytes"`
}

func writeIngestResult(cmd *cobra.Command, session *gallery.Session, notices []notice.Notice, format string) error {
	result := ingestResult{Admitted: []ingestImage{}, Notices: notices}
	for _, rec := range session.Images() {
		result.Admitted = append(result.Admitted, ingestImage{
			ID:        rec.ID,
			Filename:  rec.Filename,
			Format:    rec.Format,
			Width:     rec.Width,
			Height:    rec.Height,
			SizeBytes: rec.SizeBytes,
		})
	}

	out := cmd.OutOrStdout()
	if format == outputFormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for _, img := range result.Admitted {
		if _, err := fmt.Fprintf(out, "admitted %s (%s %dx%d, %d bytes)\n",
			img.Filename, img.Format, img.Width, img.Height, img.SizeBytes); err != nil {
			return err
		}
	}
	for _, n := range result.Notices {
		if _, err := fmt.Fprintf(out, "%s: %s: %s\n", n.Severity, n.Title, n.Description); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "%d image(s) in session\n", session.Len())
	return err
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().String("format", outputFormatText, "output format (text, json)")
	ingestCmd.Flags().Int("max-images", 0, "override the session image limit")
}
