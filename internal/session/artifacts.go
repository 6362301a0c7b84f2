package session

import "github.com/MahanAzadBeast/n8n-render/internal/api"

// ArtifactIndex is the read-only view over the artifacts fetched for the
// current run. The zero value is the empty index.
type ArtifactIndex struct {
	items []api.Artifact
}

// NewArtifactIndex wraps a fetched artifact list. Server list order is
// authoritative; nothing is sorted or deduplicated here.
func NewArtifactIndex(items []api.Artifact) ArtifactIndex {
	return ArtifactIndex{items: items}
}

// FindByKind returns the first artifact of the given kind in list order,
// or false when none is loaded or none matches.
func (ix ArtifactIndex) FindByKind(kind string) (api.Artifact, bool) {
	for _, a := range ix.items {
		if a.Kind == kind {
			return a, true
		}
	}
	return api.Artifact{}, false
}

// Items returns the artifact list in server order.
func (ix ArtifactIndex) Items() []api.Artifact {
	return ix.items
}

// Empty reports whether any artifacts are loaded.
func (ix ArtifactIndex) Empty() bool {
	return len(ix.items) == 0
}
