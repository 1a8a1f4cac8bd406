package models

// Project is immutable reference data served by the reporting service, keyed
// by its budget-topic code. JSON tags follow the service's wire names.
type Project struct {
	Code             string `json:"btCode"`
	ShortDescription string `json:"shortDescription"`
	AccountName      string `json:"btaccName"`
	SubBudgetTopic   string `json:"subBudgetTopicName"`
}

// CacheMeta records when the cached project list was last fetched, as epoch
// milliseconds. One meta record exists per identity namespace.
type CacheMeta struct {
	FetchedAt int64 `json:"fetchedAt"`
}
