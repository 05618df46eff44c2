package model

// LessonSession is the part of the school day a lesson was taught in.
type LessonSession string

const (
	SessionMorning   LessonSession = "MORNING"
	SessionAfternoon LessonSession = "AFTERNOON"
	SessionEvening   LessonSession = "EVENING"
)

// Label returns the Vietnamese name printed in exports.
func (s LessonSession) Label() string {
	switch s {
	case SessionMorning:
		return "Sáng"
	case SessionAfternoon:
		return "Chiều"
	case SessionEvening:
		return "Tối"
	default:
		return string(s)
	}
}

// DateLayout is the layout of LessonEntry.Date. Dates in this layout compare
// correctly as plain strings.
const DateLayout = "2006-01-02"

// LessonEntry is one logbook line: a lesson taught by a teacher to a class.
type LessonEntry struct {
	ID        string `json:"id"`
	TeacherID string `json:"teacher_id"`
	// TeacherName is copied from the account when the entry is created and is
	// not kept in sync with later renames.
	TeacherName   string        `json:"teacher_name"`
	Subject       string        `json:"subject"`
	ClassName     string        `json:"class_name"`
	Session       LessonSession `json:"session"`
	PeriodSlot    int           `json:"period_slot"`
	Duration      int           `json:"duration"`
	LessonTopic   string        `json:"lesson_topic"`
	TotalStudents int           `json:"total_students"`
	AbsentCount   int           `json:"absent_count"`
	AbsentNames   string        `json:"absent_names,omitempty"`
	Comment       string        `json:"comment"`
	Date          string        `json:"date"`
	CreatedAt     int64         `json:"created_at"` // Unix milliseconds
}

// EntryRequest is the payload for creating or overwriting a lesson entry.
// Range checks live here rather than in the store.
type EntryRequest struct {
	Subject       string        `json:"subject" binding:"required,max=100"`
	ClassName     string        `json:"class_name" binding:"required,max=50"`
	Session       LessonSession `json:"session" binding:"required,oneof=MORNING AFTERNOON EVENING"`
	PeriodSlot    int           `json:"period_slot" binding:"required,min=1,max=10"`
	Duration      int           `json:"duration" binding:"required,min=1,max=5"`
	LessonTopic   string        `json:"lesson_topic" binding:"required,max=255"`
	TotalStudents int           `json:"total_students" binding:"required,min=1,max=500"`
	AbsentCount   int           `json:"absent_count" binding:"min=0,ltefield=TotalStudents"`
	AbsentNames   string        `json:"absent_names" binding:"max=1000"`
	Comment       string        `json:"comment" binding:"max=2000"`
	Date          string        `json:"date" binding:"required,datetime=2006-01-02"`
}

// ApplyTo overwrites the descriptive fields of e. Identity, ownership and
// creation time are left alone.
func (r EntryRequest) ApplyTo(e *LessonEntry) {
	e.Subject = r.Subject
	e.ClassName = r.ClassName
	e.Session = r.Session
	e.PeriodSlot = r.PeriodSlot
	e.Duration = r.Duration
	e.LessonTopic = r.LessonTopic
	e.TotalStudents = r.TotalStudents
	e.AbsentCount = r.AbsentCount
	e.AbsentNames = r.AbsentNames
	e.Comment = r.Comment
	e.Date = r.Date
}

// EntryQuery holds the optional history filters taken from the query string.
type EntryQuery struct {
	ClassName string `form:"class"`
	Subject   string `form:"subject"`
	DateFrom  string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// RewriteCommentRequest asks the assistant to polish a draft comment.
type RewriteCommentRequest struct {
	Draft     string `json:"draft" binding:"max=2000"`
	Subject   string `json:"subject" binding:"max=100"`
	ClassName string `json:"class_name" binding:"max=50"`
}
