package storage

import "scenecast/internal/ports"

// Provider is the storage contract shared across the API. It is an alias to
// ports.StorageProvider to keep call-sites simple.
type Provider = ports.StorageProvider
