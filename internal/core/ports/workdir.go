package ports

// WorkDir abstracts the process working directory.
//
//go:generate mockgen -source=workdir.go -destination=mocks/mock_workdir.go -package=mocks
type WorkDir interface {
	Getwd() (string, error)
	Chdir(dir string) error
}
