package domain

import "slices"

// GenerationTask is one request to run the external generator: a primary
// declaration file, the fully resolved input set, ordered include paths,
// generator options, and an explicit output path. Tasks are constructed once
// per requested output and never mutated after being handed to the invoker.
type GenerationTask struct {
	// Name is the unique sub-task name derived from the group and option
	// string.
	Name string

	// Group is the generation group the task belongs to.
	Group string

	// Generator is the path of the external generator executable.
	Generator string

	// PrimaryFile is the declaration file the generator processes.
	PrimaryFile string

	// Options are passed verbatim, in declared order.
	Options []string

	// Includes are the resolved include paths, in resolver order. Order
	// matters: earlier entries shadow later ones when the generator resolves
	// unqualified includes.
	Includes []string

	// Inputs is the complete transitively resolved declaration-file set. The
	// surrounding executor uses it for staleness detection; it must be full
	// and correct for external caching to be sound.
	Inputs []InternedString

	// OutputPath is the file the generator writes.
	OutputPath string
}

// Argv assembles the generator argument list:
//
//	<options...> <primary-file> [-I <include>]... -o <output-path>
//
// Both the immediate execution mode and the emitted conformance script build
// their command lines from this one function, so the two are byte-identical
// by construction.
func (t *GenerationTask) Argv() []string {
	argv := make([]string, 0, len(t.Options)+2*len(t.Includes)+3)
	argv = append(argv, t.Options...)
	argv = append(argv, t.PrimaryFile)
	for _, inc := range t.Includes {
		argv = append(argv, "-I", inc)
	}
	argv = append(argv, "-o", t.OutputPath)
	return argv
}

// CommandLine returns the full command line including the generator itself.
func (t *GenerationTask) CommandLine() []string {
	return append([]string{t.Generator}, t.Argv()...)
}

// InputPaths returns the input set as plain strings.
func (t *GenerationTask) InputPaths() []string {
	paths := make([]string, len(t.Inputs))
	for i, f := range t.Inputs {
		paths[i] = f.String()
	}
	return paths
}

// Clone returns a deep copy of the task.
func (t *GenerationTask) Clone() *GenerationTask {
	c := *t
	c.Options = slices.Clone(t.Options)
	c.Includes = slices.Clone(t.Includes)
	c.Inputs = slices.Clone(t.Inputs)
	return &c
}
