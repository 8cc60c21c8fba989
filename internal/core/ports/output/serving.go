package ports

import "context"

// ChampionEndpoint describes the serving resource that should follow the
// champion alias.
type ChampionEndpoint struct {
	Name       string
	Namespace  string
	ModelName  string // full catalog-qualified name
	StorageURI string
	Version    int
}

type EndpointStatus struct {
	Ready bool
	URL   string
	Error string
}

// ServingClient repoints the champion serving endpoint after a promotion.
type ServingClient interface {
	IsAvailable() bool
	SyncChampion(ctx context.Context, endpoint *ChampionEndpoint) error
	GetStatus(ctx context.Context, namespace, name string) (*EndpointStatus, error)
}
