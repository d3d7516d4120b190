package ports

import "context"

// PackageRegistry looks up published package versions.
//
//go:generate mockgen -source=collaborators.go -destination=mocks/mock_collaborators.go -package=mocks
type PackageRegistry interface {
	// LatestVersion returns the latest published version of the package.
	LatestVersion(ctx context.Context, packageName string) (int, error)
}

// ManifestReader reads values from the build manifest.
type ManifestReader interface {
	// OutputFolder returns the configured easy-installer output folder.
	OutputFolder(path string) (string, error)
}
