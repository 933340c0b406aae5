package domain

import (
	"context"

	"acdat/internal/core/detector"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Scan(ctx context.Context, in ScanRequest) (ScanResponse, error)
	Stats(ctx context.Context) (detector.Stats, error)
	ReloaderPort
}

// ReloaderPort rebuilds the loaded detector from its source
type ReloaderPort interface {
	Reload(ctx context.Context) (ReloadResult, error)
}
