package formatting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/institute_admin_bot/internal/model"
	"github.com/Freeeeeet/institute_admin_bot/internal/stats"
)

// FormatStatsSummary строит текст дашборда из сводки занятий.
// Порядок предметов алфавитный, чтобы текст был стабильным между рендерами.
func FormatStatsSummary(summary *stats.Summary, month, year int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 <b>Статистика занятий за %02d/%d</b>\n\n", month, year))

	o := summary.Overall
	sb.WriteString(fmt.Sprintf("Всего: %d %s, %s\n",
		o.TotalLessons, PluralizeLessons(o.TotalLessons), FormatHours(stats.Round2(o.TotalHours))))
	sb.WriteString(fmt.Sprintf("👤 Индивидуальные: %d (%s)\n",
		o.IndividualLessons, FormatHours(stats.Round2(o.IndividualHours))))
	sb.WriteString(fmt.Sprintf("👥 Групповые: %d (%s)\n",
		o.GroupLessons, FormatHours(stats.Round2(o.GroupHours))))

	if len(summary.BySubject) > 0 {
		sb.WriteString("\n📚 <b>По предметам</b>\n")
		subjects := make([]string, 0, len(summary.BySubject))
		for subject := range summary.BySubject {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)

		for _, subject := range subjects {
			s := summary.BySubject[subject]
			sb.WriteString(fmt.Sprintf("• %s: %d %s, %s (инд. %s / груп. %s)\n",
				model.SubjectLabel(subject),
				s.TotalLessons, PluralizeLessons(s.TotalLessons),
				FormatHours(stats.Round2(s.TotalHours)),
				FormatHours(stats.Round2(s.Individual.Hours)),
				FormatHours(stats.Round2(s.Group.Hours)),
			))
		}
	}

	sb.WriteString("\n🎓 <b>По уровням образования</b>\n")
	sb.WriteString(formatLevelRow(summary, model.LessonTypeIndividual))
	sb.WriteString(formatLevelRow(summary, model.LessonTypeGroup))

	return sb.String()
}

func formatLevelRow(summary *stats.Summary, lessonType string) string {
	row, ok := summary.ByLevel[lessonType]
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s:\n", LessonTypeLabel(lessonType)))
	for _, level := range []string{model.LevelElementary, model.LevelMiddle, model.LevelSecondary} {
		cell := row[level]
		sb.WriteString(fmt.Sprintf("  %s — %d %s, %s\n",
			LevelLabel(level),
			cell.Lessons, PluralizeLessons(cell.Lessons),
			FormatHours(stats.Round2(cell.Hours)),
		))
	}
	return sb.String()
}
