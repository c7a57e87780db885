package solver

import (
	"github.com/classplanner/timetable-solver/internal/catalog"
)

// Solve runs the domain builder, constraint model and search engine over a
// Problem Instance. The loader and writer stages live in internal/catalog
// and internal/repository respectively.
//
// When opts.FailFastOnDomain is set, a requirement whose domain has fewer
// cells than its required hours is reported as *DomainTooSmallError before
// any search is attempted; otherwise the same condition surfaces as
// OutcomeUnsat once the search engine reaches it.
func Solve(pi *catalog.ProblemInstance, opts Options) (Result, error) {
	if opts.TimeBudget <= 0 {
		opts.TimeBudget = DefaultOptions().TimeBudget
	}

	domains := BuildDomains(pi, opts)

	if opts.FailFastOnDomain {
		for _, req := range pi.Requirements {
			domain := domains[req.ID]
			if len(domain) < req.Hours {
				return Result{}, &DomainTooSmallError{
					RequirementID: req.ID,
					DomainSize:    len(domain),
					Hours:         req.Hours,
				}
			}
		}
	}

	model := NewModel(pi, domains)
	return Search(pi, model, opts.TimeBudget), nil
}
