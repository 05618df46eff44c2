package repository

import (
	"time"

	"github.com/stemsi/sodaubai-backend/internal/model"
)

// DefaultAccounts is the account list written into an empty store: two
// teachers and one administrator holding adminSecret.
func DefaultAccounts(adminSecret string) []model.Account {
	return []model.Account{
		{ID: "u1", Username: "gv01", FullName: "Nguyễn Văn A", Role: model.RoleTeacher},
		{ID: "u2", Username: "gv02", FullName: "Trần Thị B", Role: model.RoleTeacher},
		{ID: "admin", Username: "admin", FullName: "Quản Trị Viên", Role: model.RoleAdmin, Secret: adminSecret},
	}
}

// DefaultEntries is the entry list written into an empty store, dated today
// and yesterday relative to now.
func DefaultEntries(now time.Time) []model.LessonEntry {
	yesterday := now.AddDate(0, 0, -1)
	return []model.LessonEntry{
		{
			ID:            "e1",
			TeacherID:     "u1",
			TeacherName:   "Nguyễn Văn A",
			Subject:       "Toán",
			ClassName:     "10A1",
			Session:       model.SessionMorning,
			PeriodSlot:    1,
			Duration:      1,
			LessonTopic:   "Phương trình bậc hai",
			TotalStudents: 40,
			AbsentCount:   0,
			Comment:       "Lớp trật tự, chú ý nghe giảng.",
			Date:          now.Format(model.DateLayout),
			CreatedAt:     now.UnixMilli(),
		},
		{
			ID:            "e2",
			TeacherID:     "u1",
			TeacherName:   "Nguyễn Văn A",
			Subject:       "Toán",
			ClassName:     "10A2",
			Session:       model.SessionAfternoon,
			PeriodSlot:    3,
			Duration:      1,
			LessonTopic:   "Hệ phương trình",
			TotalStudents: 38,
			AbsentCount:   2,
			AbsentNames:   "Lê Thị C, Hoàng Văn D",
			Comment:       "Một số em còn nói chuyện riêng.",
			Date:          yesterday.Format(model.DateLayout),
			CreatedAt:     yesterday.UnixMilli(),
		},
	}
}

func unixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
