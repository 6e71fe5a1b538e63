package report

import (
	"context"
	"strings"

	"testhub/internal/utils/platformerrors"
)

// Format identifies a report artifact format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	// FormatCSV is an accepted request value with no renderer behind it.
	// Requesting it fails with an unsupported-format error.
	FormatCSV Format = "csv"
)

// Ext returns the artifact file extension for the format.
func (f Format) Ext() string {
	return string(f)
}

// Renderable reports whether a renderer exists for the format.
func (f Format) Renderable() bool {
	return f == FormatPDF || f == FormatHTML
}

// ParseFormat validates a requested format string. Declared-but-unrendered
// and unknown formats both fail; nothing must ever silently fall back to a
// wrong artifact.
func ParseFormat(ctx context.Context, raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case FormatPDF, FormatHTML:
		return f, nil
	case FormatCSV:
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnsupportedFormat, "report format not implemented: csv", nil)
	default:
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnsupportedFormat, "unsupported report format: "+raw, nil)
	}
}
