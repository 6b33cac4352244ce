package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/framecut/framecut/internal/codec"
	"github.com/framecut/framecut/internal/cropper"
	"github.com/framecut/framecut/internal/export"
	"github.com/framecut/framecut/internal/gallery"
	"github.com/framecut/framecut/internal/geometry"
	"github.com/framecut/framecut/internal/ingest"
	"github.com/framecut/framecut/internal/notice"
	"github.com/framecut/framecut/internal/resource"
	"github.com/framecut/framecut/internal/validate"
)

// cropCmd represents the crop command.
var cropCmd = &cobra.Command{
	Use:   "crop [file]",
	Short: "Crop a single image and export the result",
	Long: `Load one image, apply a crop rectangle and write the cropped region
next to the original as a new file in the image's own format.

The rectangle is given in image pixels as X,Y,WxH. Without --rect the
crop defaults to a centered region covering half of each extent. An
aspect selector locks the rectangle's shape before the crop is applied.

Examples:
  framecut crop photo.png --rect 10,20,300x200 --out ./cropped
  framecut crop photo.jpg --aspect square
  framecut crop photo.gif --aspect original --prefix thumb_`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		rectFlag, _ := cmd.Flags().GetString("rect")
		aspectFlag, _ := cmd.Flags().GetString("aspect")
		if outDir, _ := cmd.Flags().GetString("out"); outDir != "" {
			cfg.Export.OutputDir = outDir
		}
		if prefix, _ := cmd.Flags().GetString("prefix"); prefix != "" {
			cfg.Export.NamePrefix = prefix
		}

		file, err := ingest.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		tracker := resource.NewTracker()
		session := gallery.NewSession(cfg.Gallery.MaxImages, tracker)
		defer session.Close()

		validator := validate.New(codec.Std{}, codec.Std{}, cfg.Ingest.ValidateTimeout,
			cfg.Gallery.MinDimension, cfg.Gallery.MaxDimension, tracker)
		pipeline := ingest.New(session, validator, notice.LogChannel{}, cfg.Gallery, cfg.Ingest)

		notices, err := pipeline.AdmitSync(cmd.Context(), []ingest.File{file})
		if err != nil {
			return err
		}
		if session.Len() == 0 {
			for _, n := range notices {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", n.Severity, n.Title, n.Description)
			}
			return fmt.Errorf("%s was rejected by validation", file.Name)
		}
		rec := session.Images()[0]

		saver := export.DirectorySaver{Dir: cfg.Export.OutputDir}
		manager := cropper.NewManager(session, &cropper.GlobalStore{}, notice.LogChannel{},
			saver, cropper.NewOffscreen, cfg.Crop, cfg.Export)

		if err := manager.Open(rec.ID); err != nil {
			return err
		}
		if aspectFlag != "" {
			manager.SetAspect(geometry.ParseSelector(aspectFlag))
		}
		if rectFlag != "" {
			rect, err := parseRect(rectFlag)
			if err != nil {
				manager.Cancel()
				return err
			}
			applyRect(manager, rect)
		}
		if err := manager.Commit(); err != nil {
			return err
		}

		artifact := filepath.Join(cfg.Export.OutputDir,
			export.ArtifactName(cfg.Export.NamePrefix, rec.Filename))
		settings := rec.CropHistory[len(rec.CropHistory)-1]
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "cropped %s to %s -> %s\n",
			rec.Filename, settings, artifact)
		return err
	},
}

// parseRect reads a rectangle in the X,Y,WxH form.
func parseRect(s string) (geometry.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Rect{}, fmt.Errorf("invalid rectangle %q, expected X,Y,WxH", s)
	}
	dims := strings.Split(parts[2], "x")
	if len(dims) != 2 {
		return geometry.Rect{}, fmt.Errorf("invalid rectangle %q, expected X,Y,WxH", s)
	}

	values := make([]int, 0, 4)
	for _, raw := range []string{parts[0], parts[1], dims[0], dims[1]} {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("invalid rectangle %q: %w", s, err)
		}
		values = append(values, v)
	}
	if values[2] < 1 || values[3] < 1 {
		return geometry.Rect{}, errors.New("rectangle width and height must be at least 1")
	}
	return geometry.Rect{X: values[0], Y: values[1], Width: values[2], Height: values[3]}, nil
}

// applyRect drives the requested rectangle through the editor's numeric
// fields, so the same conversion and clamping rules apply as for typed input.
func applyRect(manager *cropper.Manager, rect geometry.Rect) {
	steps := []struct {
		field cropper.Field
		value int
	}{
		{cropper.FieldX, rect.X},
		{cropper.FieldY, rect.Y},
		{cropper.FieldWidth, rect.Width},
		{cropper.FieldHeight, rect.Height},
	}
	for _, step := range steps {
		manager.EditField(step.field, strconv.Itoa(step.value))
		manager.CommitField(step.field)
	}
}

func init() {
	rootCmd.AddCommand(cropCmd)

	cropCmd.Flags().String("rect", "", "crop rectangle in image pixels as X,Y,WxH")
	cropCmd.Flags().String("aspect", "", "aspect selector (free, square, original)")
	cropCmd.Flags().String("out", "", "output directory for the cropped file")
	cropCmd.Flags().String("prefix", "", "filename prefix for the cropped file")
}
