package ctdf

type DataSource struct {
	OriginalFormat string `groups:"internal"`
	Dataset        string `groups:"internal"`
	Path           string `groups:"internal"`
}
