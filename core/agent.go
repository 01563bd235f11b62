package core

// Policy chooses actions and learns from observed transitions. PickAction
// must not mutate the policy; all learning happens in UpdateStep and
// UpdateEpisode. Errors from either abort the episode.
type Policy interface {
	ResetEpisode(*EpisodeContext)
	UpdateEpisode(*EpisodeContext)
	PickAction(*StepContext, State, []Action) (Action, error)
	UpdateStep(*StepContext, *Transition) error
	Reset()
}

type PolicyConstructor interface {
	NewPolicy() Policy
}
