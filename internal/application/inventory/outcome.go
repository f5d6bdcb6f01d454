package inventory

// ViewData is the data bag handed to the presentation layer alongside a
// view name. The pipeline never formats HTML itself.
type ViewData map[string]any

// OutcomeKind tags the terminal result of a write pipeline operation
type OutcomeKind int

const (
	// OutcomeRedirect sends the client to a canonical resource URL
	OutcomeRedirect OutcomeKind = iota
	// OutcomeRender re-renders a view with the supplied data bag
	OutcomeRender
	// OutcomeNotFound signals that the addressed entity does not exist
	OutcomeNotFound
)

// Outcome is the shared result contract of the create/update/delete
// pipeline entry points. Validation and authorization failures are
// expressed as render outcomes, never as error values; upstream failures
// propagate as plain errors to the process-wide error boundary.
type Outcome struct {
	Kind     OutcomeKind
	Location string
	View     string
	Data     ViewData
}

// Redirect builds a redirect outcome
func Redirect(location string) Outcome {
	return Outcome{Kind: OutcomeRedirect, Location: location}
}

// Render builds a render outcome
func Render(view string, data ViewData) Outcome {
	return Outcome{Kind: OutcomeRender, View: view, Data: data}
}

// NotFound builds a not-found outcome
func NotFound() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}
