package pipeline

// Step names reported in progress events.
const (
	StepOpenBrowser  = "open_browser"
	StepAuthenticate = "authenticate"
	StepOpenListing  = "open_listing"
	StepLoadListing  = "load_listing"
	StepExtract      = "extract"
	StepCloseBrowser = "close_browser"
	StepWrite        = "write_solutions"
	StepManifest     = "write_manifest"
)

// Step categories.
const (
	CategorySession    = "session"
	CategoryAuth       = "auth"
	CategoryLoading    = "loading"
	CategoryExtraction = "extraction"
	CategoryOutput     = "output"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name     string
	Category string
	// Optional steps only run when enabled by Options.
	Optional bool
}

// Steps lists every step in execution order.
var Steps = []StepDefinition{
	{Name: StepOpenBrowser, Category: CategorySession},
	{Name: StepAuthenticate, Category: CategoryAuth},
	{Name: StepOpenListing, Category: CategoryLoading},
	{Name: StepLoadListing, Category: CategoryLoading},
	{Name: StepExtract, Category: CategoryExtraction},
	{Name: StepCloseBrowser, Category: CategorySession},
	{Name: StepWrite, Category: CategoryOutput},
	{Name: StepManifest, Category: CategoryOutput, Optional: true},
}

// enabled reports whether def runs under opts. Optional steps are off
// unless their option is set.
func enabled(def StepDefinition, opts Options) bool {
	if !def.Optional {
		return true
	}
	switch def.Name {
	case StepManifest:
		return opts.WriteManifest
	}
	return false
}

// disabledSteps returns the names of optional steps that opts turns off.
func disabledSteps(opts Options) []string {
	var names []string
	for _, def := range Steps {
		if !enabled(def, opts) {
			names = append(names, def.Name)
		}
	}
	return names
}

// stepEnabled looks up a step by name.
func stepEnabled(step string, opts Options) bool {
	for _, def := range Steps {
		if def.Name == step {
			return enabled(def, opts)
		}
	}
	return false
}

// categoryOf returns the category of a named step, or "" if unknown.
func categoryOf(step string) string {
	for _, s := range Steps {
		if s.Name == step {
			return s.Category
		}
	}
	return ""
}
