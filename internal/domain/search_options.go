package domain

// SearchOptions represents the criteria of a task search.
// Exactly one of Keyword or Date is expected to be set.
type SearchOptions struct {
	Keyword string
	Date    string
}

// ByKeyword builds options for a name/details substring search.
func ByKeyword(keyword string) SearchOptions {
	return SearchOptions{Keyword: keyword}
}

// ByDate builds options for a yyyy/MM/dd search over createDate and updateDate.
func ByDate(date string) SearchOptions {
	return SearchOptions{Date: date}
}
