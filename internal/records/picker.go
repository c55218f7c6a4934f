package records

import (
	"context"
	"errors"
	"fmt"
)

// Source is where a document is picked from
type Source string

const (
	SourceCamera   Source = "camera"
	SourceDocument Source = "document"
)

var (
	// ErrPermissionDenied is returned when camera or media access is refused
	ErrPermissionDenied = errors.New("camera and media permission denied")

	// ErrPickerFailed wraps failures of the camera or document picker
	ErrPickerFailed = errors.New("document picker failed")

	ErrUnknownSource = errors.New("unknown document source")
)

// Asset is a picked file
type Asset struct {
	URI      string `json:"uri"`
	MimeType string `json:"mime_type"`
	Name     string `json:"name,omitempty"`
}

// PickResult is the outcome of a pick. A canceled pick carries no asset.
type PickResult struct {
	Canceled bool   `json:"canceled"`
	Asset    *Asset `json:"asset,omitempty"`
}

// Picker opens the camera or the document picker
type Picker interface {
	Pick(ctx context.Context, source Source) (PickResult, error)
}

// ParseSource validates a source name
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceCamera, SourceDocument:
		return Source(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

// ResultPicker replays a pick that already happened on the client
type ResultPicker struct {
	PermissionGranted bool
	Result            PickResult
	// Failure is the client side error message, empty when the pick succeeded
	Failure string
}

// Pick implements Picker
func (p ResultPicker) Pick(ctx context.Context, source Source) (PickResult, error) {
	if !p.PermissionGranted {
		return PickResult{}, ErrPermissionDenied
	}
	if p.Failure != "" {
		return PickResult{}, errors.New(p.Failure)
	}
	if !p.Result.Canceled && p.Result.Asset == nil {
		return PickResult{}, errors.New("pick returned no asset")
	}
	return p.Result, nil
}
