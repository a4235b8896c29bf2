// Package streaming knows the third-party embed providers and how each one
// encodes a title, season and episode into its player URL.
package streaming

import (
	"errors"
	"strings"

	"freeflix/models"
)

// ErrUnknownSource is returned when a source id is not in the catalog.
var ErrUnknownSource = errors.New("unknown source")

// Source ids.
const (
	SourceVidSrcCC   = "vidsrc-cc"
	SourceVidFast    = "vidfast"
	SourceEmbedAPI   = "embed-api"
	SourceSuperEmbed = "superembed"
	SourceVidSrcXYZ  = "vidsrc-xyz"
	SourceVidSrcPro  = "vidsrc-pro"
)

// SourceTemplate describes one embed provider.
type SourceTemplate struct {
	ID          string
	DisplayName string
	Description string
	BaseURL     string
}

// Info returns the public description of the template.
func (s SourceTemplate) Info() models.SourceInfo {
	return models.SourceInfo{ID: s.ID, Name: s.DisplayName, Description: s.Description}
}

// catalog is ordered for display; the first entry is the default.
var catalog = []SourceTemplate{
	{ID: SourceVidSrcCC, DisplayName: "VidSrc 1 (Fast)", Description: "High speed streaming", BaseURL: "https://vidsrc.cc/v2/embed"},
	{ID: SourceVidFast, DisplayName: "VidFast", Description: "Standard server", BaseURL: "https://www.vidfast.pro"},
	{ID: SourceEmbedAPI, DisplayName: "Embed API", Description: "Standard server", BaseURL: "https://player.embed-api.stream"},
	{ID: SourceSuperEmbed, DisplayName: "MultiEmbed", Description: "Best for multi-language", BaseURL: "https://multiembed.mov"},
	{ID: SourceVidSrcXYZ, DisplayName: "VidSrc 2 (Backup)", Description: "Standard server", BaseURL: "https://vidsrc.xyz/embed"},
	{ID: SourceVidSrcPro, DisplayName: "VidSrc 3 (Alt)", Description: "Standard server", BaseURL: "https://vidsrc.pro/embed"},
}

// Sources returns a copy of the provider catalog in display order.
func Sources() []SourceTemplate {
	out := make([]SourceTemplate, len(catalog))
	copy(out, catalog)
	return out
}

// Default returns the provider selected when the viewer has not chosen one.
func Default() SourceTemplate {
	return catalog[0]
}

// Lookup finds a provider by id (case-insensitive).
func Lookup(id string) (SourceTemplate, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return SourceTemplate{}, false
}

// LookupOrDefault returns the provider for id, or the default when id is
// empty or unknown.
func LookupOrDefault(id string) SourceTemplate {
	if s, ok := Lookup(id); ok {
		return s
	}
	return Default()
}
