package records

import (
	"context"
	"net/mail"
	"text/template"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/stats"
)

var ErrNoRecipients = errors.New("no report recipients")

var reportTmpl = template.Must(template.New("dashboard").Parse(`Dashboard for {{.Date}}

Students:         {{.Stats.TotalStudents}} ({{.Stats.ActiveStudents}} active)
Classes:          {{.Stats.TotalClasses}}
Average grade:    {{printf "%.1f" .Stats.OverallAverageGrade}}%
Attendance today: {{printf "%.1f" .Stats.TodayAttendanceRate}}% ({{.Stats.TodayAttendance.Present}} present, {{.Stats.TodayAttendance.Absent}} absent, {{.Stats.TodayAttendance.Tardy}} tardy, {{.Stats.TodayAttendance.Excused}} excused)
{{if .Stats.LowPerformers}}
Students needing attention:
{{range .Stats.LowPerformers}}  - {{.Student.FullName}}: {{printf "%.1f" .GradeAverage}}%
{{end}}{{end}}{{if .Stats.RecentGrades}}
Recent grades:
{{range .Stats.RecentGrades}}  - {{.StudentName}}: {{.Score}}/{{.MaxScore}} ({{.Letter}})
{{end}}{{end}}`))

type reportData struct {
	Date  string
	Stats stats.DashboardStats
}

// DashboardReport builds the dashboard summary email.
func (svc *Service) DashboardReport(ctx context.Context, to ...mail.Address) (*core.EmailMessage, error) {
	if len(to) == 0 {
		return nil, ErrNoRecipients
	}
	dash, err := svc.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	today := svc.Today().String()
	msg := &core.EmailMessage{
		To:           to,
		Subject:      "Dashboard " + today,
		Template:     reportTmpl,
		TemplateData: reportData{Date: today, Stats: dash},
	}
	if err = msg.Render(); err != nil {
		return nil, errors.Wrap(err, "rendering report")
	}
	return msg, nil
}

// SendDashboardReport emails the dashboard summary to `to`.
func (svc *Service) SendDashboardReport(ctx context.Context, to ...mail.Address) error {
	msg, err := svc.DashboardReport(ctx, to...)
	if err != nil {
		return err
	}
	svc.mail.SendMessages(msg)
	return nil
}
