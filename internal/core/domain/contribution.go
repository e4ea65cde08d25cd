package domain

// DependencyContribution is what one dependency adds to a dependent's
// resolution. A dependency is either a unit carrying transitive data or a
// plain file group; the resolver switches on the concrete variant instead of
// probing for optional fields.
type DependencyContribution interface {
	isDependencyContribution()
}

// WithTransitiveData is the contribution of a declared unit: its fully
// resolved declaration files and include paths.
type WithTransitiveData struct {
	Files    []InternedString
	Includes []string
}

func (WithTransitiveData) isDependencyContribution() {}

// FallbackFiles is the contribution of a file group: declaration files only,
// no include paths.
type FallbackFiles struct {
	Files []InternedString
}

func (FallbackFiles) isDependencyContribution() {}
