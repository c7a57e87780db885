package catalog

// Teacher is the solver-facing view of internal/models.Teacher: preference
// strings already decoded into PreferenceSet values.
type Teacher struct {
	ID               int64
	WeeklyHours      int
	PreferredDays    PreferenceSet
	PreferredPeriods PreferenceSet
}

// ClassGroup is the solver-facing view of internal/models.ClassGroup.
type ClassGroup struct {
	ID             int64
	DefaultRoomID  *int64
	AllowedPeriods PreferenceSet
}

// Room is the solver-facing view of internal/models.Room.
type Room struct {
	ID int64
}

// Period is the solver-facing view of internal/models.Period. Only the id
// is carried; the solver treats Period as an opaque label.
type Period struct {
	ID int64
}

// Requirement is the solver-facing view of a stored schedule assignment.
type Requirement struct {
	ID           int64
	ClassGroupID int64
	SubjectID    int64
	TeacherID    *int64
	Hours        int
	RoomID       *int64 // effective room: assignment.room ?? class-group.default-room
}

// TeacherSubject records a teacher's qualification to teach a subject. Not
// applied as a domain filter unless solver.Options.EnforceTeacherSubject is
// set; see DESIGN.md Open Question 3.
type TeacherSubject struct {
	TeacherID int64
	SubjectID int64
}

// ProblemInstance is the fully normalised, in-memory value the Domain
// Builder and Constraint Model operate on. It is built once per solve and
// discarded afterward; nothing about it is mutable shared state.
type ProblemInstance struct {
	TenantID        int64
	Teachers        []Teacher
	ClassGroups     []ClassGroup
	Rooms           []Room
	Periods         []Period
	Requirements    []Requirement
	TeacherSubjects []TeacherSubject

	teachersByID    map[int64]Teacher
	classGroupsByID map[int64]ClassGroup
	roomIDs         map[int64]struct{}
	periodIDs       map[int64]struct{}
}

// NewProblemInstance builds a ProblemInstance from already-normalised data
// and indexes it. Load uses it internally; tests that already have decoded
// catalog.Teacher/ClassGroup/etc. values (rather than raw models rows) use
// it directly instead of going through a fake Reader.
func NewProblemInstance(
	tenantID int64,
	teachers []Teacher,
	classGroups []ClassGroup,
	rooms []Room,
	periods []Period,
	requirements []Requirement,
	teacherSubjects []TeacherSubject,
) *ProblemInstance {
	pi := &ProblemInstance{
		TenantID:        tenantID,
		Teachers:        teachers,
		ClassGroups:     classGroups,
		Rooms:           rooms,
		Periods:         periods,
		Requirements:    requirements,
		TeacherSubjects: teacherSubjects,
	}
	pi.index()
	return pi
}

// TeacherByID looks up a teacher by id; ok is false if absent.
func (pi *ProblemInstance) TeacherByID(id int64) (Teacher, bool) {
	t, ok := pi.teachersByID[id]
	return t, ok
}

// ClassGroupByID looks up a class group by id; ok is false if absent.
func (pi *ProblemInstance) ClassGroupByID(id int64) (ClassGroup, bool) {
	g, ok := pi.classGroupsByID[id]
	return g, ok
}

// HasRoom reports whether id is a known room in this instance.
func (pi *ProblemInstance) HasRoom(id int64) bool {
	_, ok := pi.roomIDs[id]
	return ok
}

// PeriodIDs returns the full universe of period ids for this tenant, in the
// order of pi.Periods (not re-sorted).
func (pi *ProblemInstance) PeriodIDs() []int {
	ids := make([]int, 0, len(pi.Periods))
	for _, p := range pi.Periods {
		ids = append(ids, int(p.ID))
	}
	return ids
}

func (pi *ProblemInstance) index() {
	pi.teachersByID = make(map[int64]Teacher, len(pi.Teachers))
	for _, t := range pi.Teachers {
		pi.teachersByID[t.ID] = t
	}

	pi.classGroupsByID = make(map[int64]ClassGroup, len(pi.ClassGroups))
	for _, g := range pi.ClassGroups {
		pi.classGroupsByID[g.ID] = g
	}

	pi.roomIDs = make(map[int64]struct{}, len(pi.Rooms))
	for _, r := range pi.Rooms {
		pi.roomIDs[r.ID] = struct{}{}
	}

	pi.periodIDs = make(map[int64]struct{}, len(pi.Periods))
	for _, p := range pi.Periods {
		pi.periodIDs[p.ID] = struct{}{}
	}
}
