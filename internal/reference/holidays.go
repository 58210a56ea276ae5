package reference

import "time"

// Holiday is a fixed calendar entry used to seed ΕΟΡΤΗ reminders.
type Holiday struct {
	Date time.Time
	Name string
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// holidayCalendars lists the Greek public holidays per year, movable feasts
// resolved against the Orthodox Easter of each year.
var holidayCalendars = map[int][]Holiday{
	2024: {
		{day(2024, time.January, 1), "Πρωτοχρονιά"},
		{day(2024, time.January, 6), "Θεοφάνια"},
		{day(2024, time.March, 18), "Καθαρά Δευτέρα"},
		{day(2024, time.March, 25), "25η Μαρτίου - Ευαγγελισμός"},
		{day(2024, time.May, 1), "Πρωτομαγιά"},
		{day(2024, time.May, 3), "Μεγάλη Παρασκευή"},
		{day(2024, time.May, 5), "Κυριακή του Πάσχα"},
		{day(2024, time.May, 6), "Δευτέρα του Πάσχα"},
		{day(2024, time.June, 23), "Αγίου Πνεύματος"},
		{day(2024, time.August, 15), "Κοίμηση της Θεοτόκου"},
		{day(2024, time.October, 28), "28η Οκτωβρίου"},
		{day(2024, time.December, 25), "Χριστούγεννα"},
		{day(2024, time.December, 26), "Σύναξις Θεοτόκου"},
	},
	2025: {
		{day(2025, time.January, 1), "Πρωτοχρονιά"},
		{day(2025, time.January, 6), "Θεοφάνια"},
		{day(2025, time.March, 3), "Καθαρά Δευτέρα"},
		{day(2025, time.March, 25), "25η Μαρτίου - Ευαγγελισμός"},
		{day(2025, time.April, 18), "Μεγάλη Παρασκευή"},
		{day(2025, time.April, 20), "Κυριακή του Πάσχα"},
		{day(2025, time.April, 21), "Δευτέρα του Πάσχα"},
		{day(2025, time.May, 1), "Πρωτομαγιά"},
		{day(2025, time.June, 8), "Αγίου Πνεύματος"},
		{day(2025, time.August, 15), "Κοίμηση της Θεοτόκου"},
		{day(2025, time.October, 28), "28η Οκτωβρίου"},
		{day(2025, time.December, 25), "Χριστούγεννα"},
		{day(2025, time.December, 26), "Σύναξις Θεοτόκου"},
	},
	2026: {
		{day(2026, time.January, 1), "Πρωτοχρονιά"},
		{day(2026, time.January, 6), "Θεοφάνια"},
		{day(2026, time.February, 23), "Καθαρά Δευτέρα"},
		{day(2026, time.March, 25), "25η Μαρτίου - Ευαγγελισμός"},
		{day(2026, time.April, 10), "Μεγάλη Παρασκευή"},
		{day(2026, time.April, 12), "Κυριακή του Πάσχα"},
		{day(2026, time.April, 13), "Δευτέρα του Πάσχα"},
		{day(2026, time.May, 1), "Πρωτομαγιά"},
		{day(2026, time.May, 31), "Αγίου Πνεύματος"},
		{day(2026, time.August, 15), "Κοίμηση της Θεοτόκου"},
		{day(2026, time.October, 28), "28η Οκτωβρίου"},
		{day(2026, time.December, 25), "Χριστούγεννα"},
		{day(2026, time.December, 26), "Σύναξις Θεοτόκου"},
	},
}

// HolidaysForYear returns the holiday calendar for a year, or nil when no
// calendar is maintained for it.
func HolidaysForYear(year int) []Holiday {
	return holidayCalendars[year]
}
