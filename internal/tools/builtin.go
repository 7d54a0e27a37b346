package tools

// Arguments of --init. The tool writes package.json in the working
// directory and takes no arguments.
type InitArgs struct{}

// Arguments of --install.
type InstallArgs struct {
	Save     bool     `short:"S" help:"Save package config to dependencies."`
	SaveDev  bool     `short:"D" help:"Save package config to devDependencies."`
	Packages []string `arg:"" optional:"" help:"Packages to install. Empty installs everything in package.json."`
}

// Arguments of --prof-process.
type ProfProcessArgs struct {
	Log string `arg:"" help:"Log file generated by profiler.start." placeholder:"LOG"`
}

// Arguments of --cov-process.
type CovProcessArgs struct {
	Coverage string `arg:"" help:"Coverage file collected with --cov." placeholder:"LCOV"`
	Output   string `arg:"" optional:"" help:"Directory for the HTML report." placeholder:"DIR"`
}

// Returns a registry holding the tools shipped with the host.
func Builtin() *Registry {
	r := NewRegistry()
	for _, t := range builtinTools() {
		// Built-in names are distinct.
		_ = r.Register(t)
	}
	return r
}

func builtinTools() []Tool {
	return []Tool{
		{
			Name:    "init",
			Help:    "Write a package.json file.",
			Grammar: func() any { return &InitArgs{} },
		},
		{
			Name:    "install",
			Help:    "Install the dependencies in the local node_modules folder.",
			Grammar: func() any { return &InstallArgs{} },
		},
		{
			Name:    "prof-process",
			Help:    "Process a log file generated by profiler.start.",
			Grammar: func() any { return &ProfProcessArgs{} },
		},
		{
			Name:    "cov-process",
			Help:    "Generate a code coverage analysis report.",
			Grammar: func() any { return &CovProcessArgs{} },
		},
	}
}
