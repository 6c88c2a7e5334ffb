package types

// JSON is a decoded JSON object
type JSON = map[string]any

// JSONArray is a decoded array of JSON objects
type JSONArray = []JSON
