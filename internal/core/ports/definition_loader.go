// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/tasks/internal/core/domain"

// DefinitionLoader reads task and settings definitions.
//
//go:generate mockgen -source=definition_loader.go -destination=mocks/mock_definition_loader.go -package=mocks
type DefinitionLoader interface {
	// LoadTasks reads the task definition file at path.
	LoadTasks(path string) (*domain.TaskSet, error)
	// LoadSettings reads the settings file at path.
	LoadSettings(path string) (*domain.Settings, error)
}
