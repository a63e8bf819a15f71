package calendar

// Static holiday tables. These cover the fixed-date holidays relevant to the
// bundled test data; exchange-published tables can be layered on top with
// AddHoliday during setup.
var holidayLists = map[CalendarID][]string{
	TARGET: {
		"2020-01-01", "2020-04-10", "2020-04-13", "2020-05-01", "2020-12-25", "2020-12-26",
		"2021-01-01", "2021-04-02", "2021-04-05", "2021-05-01", "2021-12-25", "2021-12-26",
		"2022-01-01", "2022-04-15", "2022-04-18", "2022-05-01", "2022-12-25", "2022-12-26",
		"2023-01-01", "2023-04-07", "2023-04-10", "2023-05-01", "2023-12-25", "2023-12-26",
		"2024-01-01", "2024-03-29", "2024-04-01", "2024-05-01", "2024-12-25", "2024-12-26",
		"2025-01-01", "2025-04-18", "2025-04-21", "2025-05-01", "2025-12-25", "2025-12-26",
	},
	NYC: {
		"2020-01-01", "2020-01-20", "2020-02-17", "2020-05-25", "2020-07-03", "2020-09-07",
		"2020-10-12", "2020-11-11", "2020-11-26", "2020-12-25",
		"2021-01-01", "2021-01-18", "2021-02-15", "2021-05-31", "2021-07-05", "2021-09-06",
		"2021-10-11", "2021-11-11", "2021-11-25", "2021-12-24",
		"2022-01-01", "2022-01-17", "2022-02-21", "2022-05-30", "2022-06-20", "2022-07-04",
		"2022-09-05", "2022-10-10", "2022-11-11", "2022-11-24", "2022-12-26",
		"2023-01-02", "2023-01-16", "2023-02-20", "2023-05-29", "2023-06-19", "2023-07-04",
		"2023-09-04", "2023-10-09", "2023-11-10", "2023-11-23", "2023-12-25",
		"2024-01-01", "2024-01-15", "2024-02-19", "2024-05-27", "2024-06-19", "2024-07-04",
		"2024-09-02", "2024-10-14", "2024-11-11", "2024-11-28", "2024-12-25",
		"2025-01-01", "2025-01-20", "2025-02-17", "2025-05-26", "2025-06-19", "2025-07-04",
		"2025-09-01", "2025-10-13", "2025-11-11", "2025-11-27", "2025-12-25",
	},
	TYO: {
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-08", "2024-02-12", "2024-02-23",
		"2024-03-20", "2024-04-29", "2024-05-03", "2024-05-06", "2024-07-15", "2024-08-12",
		"2024-09-16", "2024-09-23", "2024-10-14", "2024-11-04", "2024-12-31",
		"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-13", "2025-02-11", "2025-02-24",
		"2025-03-20", "2025-04-29", "2025-05-05", "2025-05-06", "2025-07-21", "2025-08-11",
		"2025-09-15", "2025-09-23", "2025-10-13", "2025-11-03", "2025-11-24", "2025-12-31",
	},
	SEL: {
		"2024-01-01", "2024-02-09", "2024-02-12", "2024-03-01", "2024-04-10", "2024-05-01",
		"2024-05-06", "2024-05-15", "2024-06-06", "2024-08-15", "2024-09-16", "2024-09-17",
		"2024-09-18", "2024-10-03", "2024-10-09", "2024-12-25",
		"2025-01-01", "2025-01-28", "2025-01-29", "2025-01-30", "2025-03-03", "2025-05-01",
		"2025-05-05", "2025-05-06", "2025-06-06", "2025-08-15", "2025-10-03", "2025-10-06",
		"2025-10-07", "2025-10-08", "2025-10-09", "2025-12-25",
	},
}
