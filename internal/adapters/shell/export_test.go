package shell

var (
	Argv     = argv
	LookPath = lookPath
)
