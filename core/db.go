package core

// DBOrdering is a single ORDER BY term requested by an API client.
// Repositories validate Field against their own allowlist before use.
type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
