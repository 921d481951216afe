package models

// GamesPage is one page of the cursor-paginated season schedule endpoint
type GamesPage struct {
	Data []ScheduledGame `json:"data"`
	Meta PageMeta        `json:"meta"`
}

// ScheduledGame carries the only schedule field the pipeline needs
type ScheduledGame struct {
	Date string `json:"date"`
}

// PageMeta holds the pagination cursor. A nil NextCursor marks the last page.
type PageMeta struct {
	NextCursor *int64 `json:"next_cursor"`
	PerPage    int    `json:"per_page"`
}
