package viewmodel

// ResultRow is one submitted iteration as shown in the results table.
type ResultRow struct {
	Iteration   int
	Plan        int
	Actual      int
	Defects     int
	InProgress  int
	Total       int
	Delta       int
	IPoints     string
	TeamPlayers int
}

// ResultsFragment holds data for the results table.
type ResultsFragment struct {
	Rows        []ResultRow
	TotalPoints string
}

// StatusFragment holds data for the iteration status panel.
type StatusFragment struct {
	CurrentIteration int
	MaxIterations    int
	PlanNumber       int
	NumberOfPlayers  int
	IsCounting       bool
	BallCount        int
	Finished         bool
}

// Dashboard holds data for the facilitator page.
type Dashboard struct {
	Title   string
	Status  StatusFragment
	Results ResultsFragment
}
