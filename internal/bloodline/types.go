package bloodline

const (
	MinRating   = 4.7
	MinReviews  = 10
	SacredCount = 28
)

type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Mutt is the slice of a stored mutt the evaluator needs. A parent id <= 0
// means there is no parent on that side.
type Mutt struct {
	TokenID      int64
	ParentA      int64
	ParentB      int64
	AvgRating    float64
	TotalReviews int
}

func (m Mutt) IsOrigin() bool {
	return m.ParentA <= 0 && m.ParentB <= 0
}

func (m Mutt) parent(side Side) int64 {
	if side == SideB {
		return m.ParentB
	}
	return m.ParentA
}

type Route struct {
	Path         []int64 `json:"path"`
	AvgRating    float64 `json:"avgRating"`
	TotalReviews int     `json:"totalReviews"`
	Qualified    bool    `json:"qualified"`
}

// Head returns the child-most member of the route, or 0 for an empty path.
func (r Route) Head() int64 {
	if len(r.Path) == 0 {
		return 0
	}
	return r.Path[0]
}

func (r Route) Contains(id int64) bool {
	for _, member := range r.Path {
		if member == id {
			return true
		}
	}
	return false
}

type Decision struct {
	IsPureblood bool   `json:"isPureblood"`
	Route       *Route `json:"route"`
}

// Lookup resolves a token id to a mutt. Implementations report a missing
// record with ok == false; the evaluator treats that side as absent.
type Lookup interface {
	GetMutt(id int64) (Mutt, bool)
}

type LookupFunc func(id int64) (Mutt, bool)

func (f LookupFunc) GetMutt(id int64) (Mutt, bool) {
	return f(id)
}

// Nodes is an in-memory snapshot keyed by token id.
type Nodes map[int64]Mutt

func (n Nodes) GetMutt(id int64) (Mutt, bool) {
	m, ok := n[id]
	return m, ok
}

func (n Nodes) Add(mutts ...Mutt) {
	for _, m := range mutts {
		n[m.TokenID] = m
	}
}
