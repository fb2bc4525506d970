package output

import (
	json "github.com/goccy/go-json"
)

// JSONFormatter serializes the report as JSON.
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if j.Indent {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return json.Marshal(report)
}
