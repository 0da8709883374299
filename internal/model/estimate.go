package model

// ClassEstimate summarizes the mutants generated for one source file
// without executing them.
type ClassEstimate struct {
	Path    Path
	Class   string
	Methods int
	Mutants int
	Skipped int
	Types   map[MutatorType]int
}

// NewClassEstimate counts the mutants of every method of the class.
func NewClassEstimate(class *SourceClass) ClassEstimate {
	estimate := ClassEstimate{
		Path:    class.Path,
		Class:   class.FullyQualifiedName(),
		Methods: len(class.Methods),
		Types:   make(map[MutatorType]int),
	}

	for _, method := range class.Methods {
		for _, mutant := range method.Mutants {
			estimate.Mutants++
			estimate.Types[mutant.Mutation.Type]++

			if mutant.Status == Skipped {
				estimate.Skipped++
			}
		}
	}

	return estimate
}
