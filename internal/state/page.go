package state

// Phase is the lifecycle of a page: idle until the first load, loading
// while a fetch is in flight, then loaded or error. A loaded detail page
// may enter editing. Reload is allowed from any terminal phase.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
	PhaseEditing Phase = "editing"
)

// Page is the phase machine embedded in every page state.
type Page struct {
	Phase   Phase
	ErrMsg  string
}

// NewPage returns a page in the idle phase.
func NewPage() Page {
	return Page{Phase: PhaseIdle}
}

// beginLoading moves into the loading phase, clearing a previous error.
func (p *Page) beginLoading() {
	p.Phase = PhaseLoading
	p.ErrMsg = ""
}

// finishLoaded marks the load successful.
func (p *Page) finishLoaded() {
	p.Phase = PhaseLoaded
	p.ErrMsg = ""
}

// fail records the error message and moves into the error phase.
func (p *Page) fail(err error) {
	p.Phase = PhaseError
	if err != nil {
		p.ErrMsg = err.Error()
	}
}
