package labels

import "strings"

// Roster is the ordered list of employees a batch will be split across.
// Names are kept in insertion order; additions that differ only by case or
// surrounding whitespace from an existing entry are ignored.
type Roster struct {
	names []string
	seen  map[string]struct{}
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{seen: make(map[string]struct{})}
}

// Add appends a name to the roster. It reports false, leaving the roster
// unchanged, when the name is blank or already present under
// case-insensitive trimmed comparison. The first spelling wins.
func (r *Roster) Add(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	key := strings.ToLower(trimmed)
	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	r.names = append(r.names, trimmed)
	return true
}

// Names returns the roster in insertion order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len reports the roster size.
func (r *Roster) Len() int {
	return len(r.names)
}

// ShareCounts splits count units across n recipients: everyone gets
// count/n, and the first count%n recipients get one extra. Shares for the
// same inputs are always identical.
func ShareCounts(count, n int) []int {
	if n <= 0 {
		return nil
	}
	per := count / n
	remainder := count % n
	shares := make([]int, n)
	for i := range shares {
		shares[i] = per
		if i < remainder {
			shares[i]++
		}
	}
	return shares
}

// Distribution maps sequence indexes to the employee assigned that label.
type Distribution struct {
	byIndex map[int]string
}

// Distribute partitions a label batch across employees. Labels are grouped
// by caption, each group is split with ShareCounts, and every employee
// receives a contiguous run of ascending sequence indexes within each
// group. An empty employee list yields an empty distribution.
func Distribute(batch []Label, employees []string) Distribution {
	d := Distribution{byIndex: make(map[int]string)}
	if len(employees) == 0 {
		return d
	}

	// Group in first-appearance order so repeated runs assign identically.
	var captions []string
	groups := make(map[string][]Label)
	for _, l := range batch {
		if _, ok := groups[l.Caption]; !ok {
			captions = append(captions, l.Caption)
		}
		groups[l.Caption] = append(groups[l.Caption], l)
	}

	for _, caption := range captions {
		group := groups[caption]
		shares := ShareCounts(len(group), len(employees))
		cursor := 0
		for i, share := range shares {
			for _, l := range group[cursor : cursor+share] {
				d.byIndex[l.SequenceIndex] = employees[i]
			}
			cursor += share
		}
	}

	return d
}

// EmployeeFor reports the employee assigned to a sequence index.
func (d Distribution) EmployeeFor(sequenceIndex int) (string, bool) {
	name, ok := d.byIndex[sequenceIndex]
	return name, ok
}

// Size reports how many labels the distribution covers.
func (d Distribution) Size() int {
	return len(d.byIndex)
}
