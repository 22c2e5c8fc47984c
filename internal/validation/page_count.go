package validation

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// pageObjectPattern matches page objects but not the /Pages tree root
var pageObjectPattern = regexp.MustCompile(`/Type\s*/Page[^s]`)

// CountPDFPages counts the number of pages in a PDF file
// It tries pdfinfo first, then falls back to ghostscript
func CountPDFPages(pdfPath string) (int, error) {
	// Try pdfinfo first (from poppler-utils)
	if count, err := countPagesWithPdfinfo(pdfPath); err == nil {
		return count, nil
	}

	// Fallback to ghostscript
	if count, err := countPagesWithGhostscript(pdfPath); err == nil {
		return count, nil
	}

	return 0, &Error{
		Message: "failed to count PDF pages: neither pdfinfo nor ghostscript available. Please install poppler-utils (pdfinfo) or ghostscript",
	}
}

// CountPDFBytes counts the pages of an in-memory PDF. The external tools are
// tried first on a temporary copy; if neither is installed the page objects
// are counted directly.
func CountPDFBytes(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, &Error{Message: "empty PDF"}
	}

	dir, err := os.MkdirTemp("", "pagefit-*")
	if err == nil {
		defer func() { _ = os.RemoveAll(dir) }()
		pdfPath := filepath.Join(dir, "measure.pdf")
		if err := os.WriteFile(pdfPath, data, 0o600); err == nil {
			if count, err := CountPDFPages(pdfPath); err == nil {
				return count, nil
			}
		}
	}

	count := CountPageObjects(data)
	if count == 0 {
		return 0, &Error{Message: "no page objects found in PDF"}
	}
	return count, nil
}

// CountPageObjects counts /Type /Page dictionaries in raw PDF bytes
func CountPageObjects(data []byte) int {
	return len(pageObjectPattern.FindAllIndex(data, -1))
}

// countPagesWithPdfinfo uses pdfinfo to count PDF pages
func countPagesWithPdfinfo(pdfPath string) (int, error) {
	cmd := exec.Command("pdfinfo", pdfPath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}

	// Parse output looking for "Pages: N"
	for _, line := range strings.Split(string(output), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}

	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

// countPagesWithGhostscript uses ghostscript to count PDF pages
func countPagesWithGhostscript(pdfPath string) (int, error) {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", pdfPath)
	cmd := exec.Command("gs", "-q", "-dNODISPLAY", "-dNOSAFER", "-c", script)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript command failed: %w", err)
	}

	outputStr := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(outputStr)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", outputStr)
	}

	return count, nil
}
