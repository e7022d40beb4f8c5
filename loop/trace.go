package loop

// Trace is a serialisable snapshot of a session, used for debugging dumps.
type Trace struct {
	Round     int             `yaml:"round"`
	Phase     string          `yaml:"phase"`
	RoundTime float64         `yaml:"round_time"`
	Timelines []TimelineTrace `yaml:"timelines"`
	Tasks     []TaskTrace     `yaml:"tasks"`
}

type TimelineTrace struct {
	Index    int     `yaml:"index"`
	Frames   int     `yaml:"frames"`
	Duration float64 `yaml:"duration"`
}

type TaskTrace struct {
	SwitchID  int     `yaml:"switch"`
	Time      float64 `yaml:"time"`
	Owner     int     `yaml:"owner"`
	Active    bool    `yaml:"active"`
	LastFired *int    `yaml:"last_fired,omitempty"`
}

func (s *Session) Trace() Trace {
	tr := Trace{
		Round:     s.Round(),
		Phase:     s.Phase().String(),
		RoundTime: s.RoundTime(),
	}
	for _, tl := range s.pool.Timelines() {
		tr.Timelines = append(tr.Timelines, TimelineTrace{
			Index:    tl.Index,
			Frames:   len(tl.Trajectory),
			Duration: tl.Trajectory.Duration(),
		})
	}
	for _, t := range s.tasks.Tasks() {
		tt := TaskTrace{
			SwitchID: t.SwitchID(),
			Time:     t.Time(),
			Owner:    t.OwnerRound(),
			Active:   t.Active(),
		}
		if last, ok := t.LastFiredRound(); ok {
			tt.LastFired = &last
		}
		tr.Tasks = append(tr.Tasks, tt)
	}
	return tr
}
