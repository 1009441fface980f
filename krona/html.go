// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package krona

import (
	"fmt"
	"io"
)

// URL of the Krona javascript library.
const jsLib = "https://marbl.github.io/Krona/src/krona-2.0.js"

// WriteHTML writes the document as a standalone HTML page
// with the Krona XML embedded on it.
// The page loads the Krona javascript library
// from the Krona project site,
// so it requires a network connection
// the first time it is open.
func (d *Document) WriteHTML(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<html lang=\"en\">\n<head>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <script id=\"notfound\">window.onload=function(){document.body.innerHTML=\"Could not get Krona resources.\"}</script>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <script src=\"%s\"></script>\n", jsLib); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "</head>\n<body>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <img id=\"hiddenImage\" style=\"display:none\" alt=\"\">\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <noscript>Javascript must be enabled to view this page.</noscript>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <div style=\"display:none\">\n"); err != nil {
		return err
	}

	k := d.build()
	if err := k.write(w, 2); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "  </div>\n</body>\n</html>\n")
	return err
}
