package formatting

// PluralizeLessons возвращает правильное склонение слова "занятие"
func PluralizeLessons(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "занятие"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "занятия"
	}
	return "занятий"
}

// PluralizeUsers возвращает правильное склонение слова "пользователь"
func PluralizeUsers(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "пользователь"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "пользователя"
	}
	return "пользователей"
}

// PluralizePayments возвращает правильное склонение слова "платёж"
func PluralizePayments(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "платёж"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "платежа"
	}
	return "платежей"
}

// PluralizeSubjects возвращает правильное склонение слова "предмет"
func PluralizeSubjects(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "предмет"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "предмета"
	}
	return "предметов"
}
