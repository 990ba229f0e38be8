package model

import (
	"github.com/m-mizutani/osmload/pkg/domain/types"
)

// DownloadRequest describes one extract download. It is immutable for the
// lifetime of a Fetch call.
type DownloadRequest struct {
	BaseURL  string                 // e.g. https://download.geofabrik.de/europe/
	Country  string                 // e.g. monaco
	Suffixes [2]types.ExtractSuffix // preference order, second is the PBF suffix
	ForcePBF bool                   // only try Suffixes[1]
	WorkDir  string                 // directory receiving the local file
}

// Candidates returns the suffixes to try, in order.
func (r *DownloadRequest) Candidates() []types.ExtractSuffix {
	if r.ForcePBF {
		return []types.ExtractSuffix{r.Suffixes[1]}
	}
	return []types.ExtractSuffix{r.Suffixes[0], r.Suffixes[1]}
}

// FileName returns the local file name used for suffix.
func (r *DownloadRequest) FileName(suffix types.ExtractSuffix) string {
	return r.Country + "-latest" + suffix.String()
}

// URL builds the remote location for suffix. It never mutates the request.
func (r *DownloadRequest) URL(suffix types.ExtractSuffix) string {
	return r.BaseURL + r.FileName(suffix)
}

// DownloadResult represents a local extract ready for import
type DownloadResult struct {
	Path       string              // Local file path
	Suffix     types.ExtractSuffix // Resolved suffix
	Size       int64               // Size in bytes
	Downloaded bool                // False when an existing local file was reused
}
