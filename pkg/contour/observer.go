package contour

import "medcontour/internal/models"

// Observer receives the level set while a run progresses. Iteration 0 is the
// initial mask; iterations 1..N follow each evolution step. The mask is a copy
// the observer may keep.
type Observer interface {
	OnIterationComplete(iteration int, mask *models.LevelSet)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(iteration int, mask *models.LevelSet)

// OnIterationComplete calls f
func (f ObserverFunc) OnIterationComplete(iteration int, mask *models.LevelSet) {
	f(iteration, mask)
}

// Observers fans a notification out to several observers in order
type Observers []Observer

// OnIterationComplete notifies every non-nil observer
func (os Observers) OnIterationComplete(iteration int, mask *models.LevelSet) {
	for _, o := range os {
		if o != nil {
			o.OnIterationComplete(iteration, mask)
		}
	}
}
