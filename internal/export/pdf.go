package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/signintech/gopdf"
)

// fontPaths are the candidate locations of a TTF font with reasonable
// unicode coverage, covering the usual Linux layouts.
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
}

// WritePDF renders the report as a plain-text PDF snapshot at path. Markdown
// markup is kept as-is; the PDF is a snapshot of the report text, not a
// typeset rendering.
func WritePDF(path, title, report string) error {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	fontLoaded := false
	var fontErr error
	for _, p := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", p); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return fmt.Errorf("no usable TTF font found for PDF export (install dejavu fonts): %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 18); err != nil {
		return err
	}
	pdf.Cell(nil, title)
	pdf.Br(24)

	if err := pdf.SetFont("DejaVu", "", 9); err != nil {
		return err
	}
	pdf.Cell(nil, time.Now().Format("2006-01-02 15:04"))
	pdf.Br(20)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return err
	}
	for _, line := range strings.Split(report, "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Br(8)
			continue
		}
		wrapped, _ := pdf.SplitText(line, 500)
		for _, l := range wrapped {
			if pdf.GetY() > 800 {
				pdf.AddPage()
				pdf.SetY(40)
			}
			pdf.Cell(nil, l)
			pdf.Br(14)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if _, err := pdf.WriteTo(f); err != nil {
		return fmt.Errorf("writing PDF to %s: %w", path, err)
	}
	return nil
}
