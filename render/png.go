package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
)

// SavePNG writes img to baseName with a ".png" extension appended unless
// already present. An empty baseName is a no-op, mirroring a render that is
// displayed but not persisted.
func SavePNG(img image.Image, baseName string) error {
	if baseName == "" {
		return nil
	}

	name := baseName
	if !strings.HasSuffix(strings.ToLower(name), ".png") {
		name += ".png"
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("render: encode %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}
