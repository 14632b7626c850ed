package models

// Clone returns a deep copy of the state. Readers outside the owning
// goroutine only ever see clones.
func (st *State) Clone() *State {
	if st == nil {
		return nil
	}
	out := &State{
		Days:      make([]Day, len(st.Days)),
		BestLifts: append([]BestLift{}, st.BestLifts...),
		History:   make([]HistoryEntry, len(st.History)),
		Profile:   st.Profile,
	}
	for i, d := range st.Days {
		out.Days[i] = Day{ID: d.ID, Name: d.Name, Exercises: append([]Exercise{}, d.Exercises...)}
	}
	if st.CurrentWorkout != nil {
		w := *st.CurrentWorkout
		w.Exercises = CloneExercises(st.CurrentWorkout.Exercises)
		out.CurrentWorkout = &w
	}
	for i, h := range st.History {
		h.Exercises = CloneExercises(h.Exercises)
		out.History[i] = h
	}
	return out
}

// CloneExercises copies exercise names and their sets.
func CloneExercises(exs []SessionExercise) []SessionExercise {
	out := make([]SessionExercise, len(exs))
	for i, ex := range exs {
		out[i] = SessionExercise{Name: ex.Name, Sets: append([]Set{}, ex.Sets...)}
	}
	return out
}
