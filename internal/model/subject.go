package model

import "sort"

// Каталог предметов платформы: английское имя для API -> подпись для экрана.
// Список совпадает с тем, что использует веб-интерфейс института.
var SubjectLabels = map[string]string{
	"Arabic":           "عربي",
	"Hebrew":           "عبراني",
	"English":          "انجليزي",
	"Math":             "رياضيات",
	"History":          "تاريخ",
	"Religion":         "دين",
	"Geography":        "جغرافيا",
	"Physics":          "فيزيا",
	"Electronics":      "موخترونيكا",
	"Civics":           "مدنيات",
	"Chemistry":        "كيميا",
	"Biology":          "بيولوجيا",
	"Environment":      "بيئه",
	"Technology":       "تكنولوجيا",
	"Computer":         "حاسوب",
	"Science":          "علوم",
	"Adapted Teaching": "הוראה מותאמת",
	"Architecture":     "אדריכלות",
	"Statistics":       "סטטיסטיקה",
}

// Цены по умолчанию для массового заполнения прайса
const (
	DefaultIndividualPrice = 50
	DefaultGroupPrice      = 50
)

// SubjectNames возвращает отсортированный список API-имён предметов
func SubjectNames() []string {
	names := make([]string, 0, len(SubjectLabels))
	for name := range SubjectLabels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SubjectLabel возвращает подпись предмета или само имя, если предмет не из каталога
func SubjectLabel(name string) string {
	if label, ok := SubjectLabels[name]; ok {
		return label
	}
	return name
}
