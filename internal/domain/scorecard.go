package domain

// Snapshot is a scorecard payload covering several periods. Metrics[i]
// belongs to Dates[i].
type Snapshot struct {
	Dates   []string
	Metrics []Value
}

// Entry is one metric of a scorecard row, in payload order.
type Entry struct {
	Name  string `json:"name"`
	Value Value  `json:"-"`
}
